// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltest provides [Recorder], an in-memory implementation of
// [gl.Functions] that simulates the object and binding state of an
// OpenGL context closely enough to test code written against it
// without a GPU. It records every call, tracks buffers, vertex arrays,
// shaders and programs, runs a small GLSL checker on compile and link,
// and reflects active uniforms the way a driver does.
package gltest

import (
	"fmt"
	"slices"
	"unsafe"

	"cogentcore.org/gldraw/gl"
)

// Call is one recorded invocation of a [gl.Functions] method.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Buffer is the simulated state of a buffer object.
type Buffer struct {
	Target uint32
	Data   []byte
	Usage  uint32
}

// Attrib is the state of one vertex attribute slot of a vertex array.
type Attrib struct {
	Enabled bool
	Size    int32
	Type    uint32
	Buffer  uint32
	Offset  uintptr
}

// VertexArray is the simulated state of a vertex array object.
type VertexArray struct {
	Attribs       map[uint32]*Attrib
	ElementBuffer uint32
}

// Draw records the state at the time of a DrawElements call.
type Draw struct {
	Mode          uint32
	Count         int32
	Type          uint32
	Offset        uintptr
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32

	// Enabled is the sorted list of enabled attribute slots.
	Enabled []uint32
}

// Recorder implements [gl.Functions] in memory.
// The zero value is not usable; use [New].
type Recorder struct {
	// FailCreateShader makes CreateShader return 0.
	FailCreateShader bool

	// FailCreateProgram makes CreateProgram return 0.
	FailCreateProgram bool

	// FailAlloc makes GenBuffers and GenVertexArrays produce 0 names.
	FailAlloc bool

	// Calls is the list of all calls made, in order.
	Calls []Call

	// Draws is the list of all draw calls made, in order.
	Draws []Draw

	nextName uint32
	err      uint32

	buffers  map[uint32]*Buffer
	vaos     map[uint32]*VertexArray
	shaders  map[uint32]*shader
	programs map[uint32]*program
	deleted  map[string]map[uint32]int

	arrayBuffer uint32
	vertexArray uint32
	current     uint32
	caps        map[uint32]bool
	clearColor  [4]float32
	viewport    [4]int32
	depthFunc   uint32
}

var _ gl.Functions = (*Recorder)(nil)

// New returns a new Recorder with an empty context state.
func New() *Recorder {
	return &Recorder{
		buffers:   make(map[uint32]*Buffer),
		vaos:      make(map[uint32]*VertexArray),
		shaders:   make(map[uint32]*shader),
		programs:  make(map[uint32]*program),
		deleted:   make(map[string]map[uint32]int),
		caps:      make(map[uint32]bool),
		depthFunc: gl.LESS,
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) setError(code uint32) {
	if r.err == gl.NO_ERROR {
		r.err = code
	}
}

func (r *Recorder) genName() uint32 {
	r.nextName++
	return r.nextName
}

func (r *Recorder) markDeleted(kind string, name uint32) {
	m := r.deleted[kind]
	if m == nil {
		m = make(map[uint32]int)
		r.deleted[kind] = m
	}
	m[name]++
}

////////  Inspection

// CallCount returns the number of recorded calls with the given name.
func (r *Recorder) CallCount(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// CallsNamed returns the recorded calls with the given name.
func (r *Recorder) CallsNamed(name string) []Call {
	var cs []Call
	for _, c := range r.Calls {
		if c.Name == name {
			cs = append(cs, c)
		}
	}
	return cs
}

// ResetCalls clears the recorded calls and draws,
// leaving the object state untouched.
func (r *Recorder) ResetCalls() {
	r.Calls = nil
	r.Draws = nil
}

// DeleteCount returns how many times the named object of the given
// kind ("buffer", "vertexarray", "shader", "program") was deleted.
func (r *Recorder) DeleteCount(kind string, name uint32) int {
	return r.deleted[kind][name]
}

// LiveBuffers returns the number of buffer objects not yet deleted.
func (r *Recorder) LiveBuffers() int { return len(r.buffers) }

// LiveVertexArrays returns the number of vertex array objects not yet deleted.
func (r *Recorder) LiveVertexArrays() int { return len(r.vaos) }

// LiveShaders returns the number of shader objects not flagged for deletion.
func (r *Recorder) LiveShaders() int {
	n := 0
	for _, sh := range r.shaders {
		if !sh.deleteFlag {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (r *Recorder) LivePrograms() int { return len(r.programs) }

// Buffer returns the state of the named buffer, or nil.
func (r *Recorder) Buffer(name uint32) *Buffer { return r.buffers[name] }

// VertexArray returns the state of the named vertex array, or nil.
func (r *Recorder) VertexArray(name uint32) *VertexArray { return r.vaos[name] }

// BoundArrayBuffer returns the buffer bound to ARRAY_BUFFER.
func (r *Recorder) BoundArrayBuffer() uint32 { return r.arrayBuffer }

// BoundElementBuffer returns the buffer bound to ELEMENT_ARRAY_BUFFER
// of the current vertex array.
func (r *Recorder) BoundElementBuffer() uint32 {
	if va := r.vaos[r.vertexArray]; va != nil {
		return va.ElementBuffer
	}
	return 0
}

// BoundVertexArray returns the currently bound vertex array.
func (r *Recorder) BoundVertexArray() uint32 { return r.vertexArray }

// CurrentProgram returns the program made current by UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.current }

// Enabled reports whether the given capability is enabled.
func (r *Recorder) Enabled(cap uint32) bool { return r.caps[cap] }

// ClearColorValue returns the current clear color.
func (r *Recorder) ClearColorValue() [4]float32 { return r.clearColor }

// ViewportValue returns the current viewport.
func (r *Recorder) ViewportValue() [4]int32 { return r.viewport }

// DepthFuncValue returns the current depth function.
func (r *Recorder) DepthFuncValue() uint32 { return r.depthFunc }

// UniformValue returns the float components last uploaded to the
// given location of the given program.
func (r *Recorder) UniformValue(program uint32, location int32) []float32 {
	p := r.programs[program]
	if p == nil {
		return nil
	}
	return p.values[location]
}

// UniformUploads returns the number of uniform uploads made to the given program.
func (r *Recorder) UniformUploads(program uint32) int {
	p := r.programs[program]
	if p == nil {
		return 0
	}
	return p.uploads
}

////////  State

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask uint32) {
	r.record("Clear", mask)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	if width < 0 || height < 0 {
		r.setError(gl.INVALID_VALUE)
		return
	}
	r.viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) Enable(cap uint32) {
	r.record("Enable", cap)
	r.caps[cap] = true
}

func (r *Recorder) Disable(cap uint32) {
	r.record("Disable", cap)
	r.caps[cap] = false
}

func (r *Recorder) DepthFunc(fn uint32) {
	r.record("DepthFunc", fn)
	r.depthFunc = fn
}

func (r *Recorder) GetError() uint32 {
	r.record("GetError")
	code := r.err
	r.err = gl.NO_ERROR
	return code
}

func (r *Recorder) GetString(name uint32) string {
	r.record("GetString", name)
	switch name {
	case gl.VENDOR:
		return "gldraw"
	case gl.RENDERER:
		return "gltest"
	case gl.VERSION:
		return "4.1 gltest"
	case gl.SHADING_LANGUAGE_VERSION:
		return "4.10"
	}
	r.setError(gl.INVALID_ENUM)
	return ""
}

////////  Buffers

func (r *Recorder) GenBuffers(n int32, buffers *uint32) {
	r.record("GenBuffers", n)
	out := unsafe.Slice(buffers, n)
	for i := range out {
		if r.FailAlloc {
			out[i] = 0
			continue
		}
		name := r.genName()
		r.buffers[name] = &Buffer{}
		out[i] = name
	}
}

func (r *Recorder) DeleteBuffers(n int32, buffers *uint32) {
	names := slices.Clone(unsafe.Slice(buffers, n))
	r.record("DeleteBuffers", n, names)
	for _, name := range names {
		if name == 0 {
			continue
		}
		r.markDeleted("buffer", name)
		delete(r.buffers, name)
		if r.arrayBuffer == name {
			r.arrayBuffer = 0
		}
		for _, va := range r.vaos {
			if va.ElementBuffer == name {
				va.ElementBuffer = 0
			}
		}
	}
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer", target, buffer)
	if buffer != 0 && r.buffers[buffer] == nil {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	switch target {
	case gl.ARRAY_BUFFER:
		r.arrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		va := r.vaos[r.vertexArray]
		if va == nil {
			r.setError(gl.INVALID_OPERATION)
			return
		}
		va.ElementBuffer = buffer
	default:
		r.setError(gl.INVALID_ENUM)
		return
	}
	if b := r.buffers[buffer]; b != nil && b.Target == 0 {
		b.Target = target
	}
}

func (r *Recorder) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	r.record("BufferData", target, size, usage)
	var name uint32
	switch target {
	case gl.ARRAY_BUFFER:
		name = r.arrayBuffer
	case gl.ELEMENT_ARRAY_BUFFER:
		name = r.BoundElementBuffer()
	default:
		r.setError(gl.INVALID_ENUM)
		return
	}
	b := r.buffers[name]
	if b == nil {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	b.Usage = usage
	b.Data = make([]byte, size)
	if data != nil && size > 0 {
		copy(b.Data, unsafe.Slice((*byte)(data), size))
	}
}

////////  Vertex arrays

func (r *Recorder) GenVertexArrays(n int32, arrays *uint32) {
	r.record("GenVertexArrays", n)
	out := unsafe.Slice(arrays, n)
	for i := range out {
		if r.FailAlloc {
			out[i] = 0
			continue
		}
		name := r.genName()
		r.vaos[name] = &VertexArray{Attribs: make(map[uint32]*Attrib)}
		out[i] = name
	}
}

func (r *Recorder) DeleteVertexArrays(n int32, arrays *uint32) {
	names := slices.Clone(unsafe.Slice(arrays, n))
	r.record("DeleteVertexArrays", n, names)
	for _, name := range names {
		if name == 0 {
			continue
		}
		r.markDeleted("vertexarray", name)
		delete(r.vaos, name)
		if r.vertexArray == name {
			r.vertexArray = 0
		}
	}
}

func (r *Recorder) BindVertexArray(array uint32) {
	r.record("BindVertexArray", array)
	if array != 0 && r.vaos[array] == nil {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	r.vertexArray = array
}

func (r *Recorder) attrib(index uint32) *Attrib {
	va := r.vaos[r.vertexArray]
	if va == nil {
		r.setError(gl.INVALID_OPERATION)
		return nil
	}
	a := va.Attribs[index]
	if a == nil {
		a = &Attrib{Size: 4, Type: gl.FLOAT}
		va.Attribs[index] = a
	}
	return a
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
	if a := r.attrib(index); a != nil {
		a.Enabled = true
	}
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.record("DisableVertexAttribArray", index)
	if a := r.attrib(index); a != nil {
		a.Enabled = false
	}
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	if size < 1 || size > 4 {
		r.setError(gl.INVALID_VALUE)
		return
	}
	if r.arrayBuffer == 0 {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	if a := r.attrib(index); a != nil {
		a.Size = size
		a.Type = xtype
		a.Buffer = r.arrayBuffer
		a.Offset = offset
	}
}

func (r *Recorder) GetVertexAttribiv(index uint32, pname uint32, params *int32) {
	r.record("GetVertexAttribiv", index, pname)
	va := r.vaos[r.vertexArray]
	if va == nil {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	a := va.Attribs[index]
	if a == nil {
		a = &Attrib{Size: 4, Type: gl.FLOAT}
	}
	switch pname {
	case gl.VERTEX_ATTRIB_ARRAY_ENABLED:
		*params = boolInt(a.Enabled)
	case gl.VERTEX_ATTRIB_ARRAY_SIZE:
		*params = a.Size
	case gl.VERTEX_ATTRIB_ARRAY_TYPE:
		*params = int32(a.Type)
	default:
		r.setError(gl.INVALID_ENUM)
	}
}

////////  Drawing

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	r.record("DrawElements", mode, count, xtype, offset)
	va := r.vaos[r.vertexArray]
	if va == nil || r.programs[r.current] == nil || va.ElementBuffer == 0 {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	d := Draw{
		Mode:          mode,
		Count:         count,
		Type:          xtype,
		Offset:        offset,
		Program:       r.current,
		VertexArray:   r.vertexArray,
		ElementBuffer: va.ElementBuffer,
	}
	for i, a := range va.Attribs {
		if a.Enabled {
			d.Enabled = append(d.Enabled, i)
		}
	}
	slices.Sort(d.Enabled)
	r.Draws = append(r.Draws, d)
}

func boolInt(b bool) int32 {
	if b {
		return gl.TRUE
	}
	return gl.FALSE
}
