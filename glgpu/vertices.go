// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"unsafe"

	"cogentcore.org/gldraw/gl"
)

// Attribute is the set of per-vertex attribute record types: arrays of
// one to four float32 components. Defined types with such an underlying
// type, like mgl32.Vec3, satisfy it directly. The array length is the
// width of the stream, fixed by its type.
type Attribute interface {
	~[1]float32 | ~[2]float32 | ~[3]float32 | ~[4]float32
}

// VertexSource is a stream of vertex attributes that can be bound to an
// attribute slot of a draw call. It is implemented by [*Vertices].
type VertexSource interface {
	// bindAttribute binds the stream's buffer and configures and enables
	// the given attribute slot to read from it. The first stream of a
	// draw also binds its vertex array. It returns the vertex array
	// the slot was configured in.
	bindAttribute(slot uint32, first bool) uint32

	String() string
	Released() bool
}

// Vertices is a vertex attribute stream: a vertex buffer of records of
// type A together with the vertex array object created for it.
// Its contents are fixed at creation.
type Vertices[A Attribute] struct {
	buf   buffer
	vao   uint32
	width int32
}

// NewVertices allocates a vertex array object and a vertex buffer owned
// by ctx, and uploads data to it. It panics if the driver cannot
// allocate either object.
func NewVertices[A Attribute](ctx *Context, data []A) *Vertices[A] {
	var zero A
	rec := int(unsafe.Sizeof(zero))
	vx := &Vertices[A]{
		buf: buffer{
			ctx:    ctx,
			target: gl.ARRAY_BUFFER,
			kind:   gl.FLOAT,
			count:  len(data),
		},
		width: int32(rec / 4),
	}
	ctx.mustBeAlive("NewVertices")
	ctx.fns.GenVertexArrays(1, &vx.vao)
	if vx.vao == 0 {
		panic(fmt.Errorf("glgpu: could not allocate a vertex array"))
	}
	ctx.fns.BindVertexArray(vx.vao)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	vx.buf.init(ptr, len(data)*rec)
	ctx.track(vx)
	ctx.resume()
	ctx.debugCheck("NewVertices")
	return vx
}

// Len returns the number of vertices in the stream.
func (vx *Vertices[A]) Len() int {
	return vx.buf.count
}

// Width returns the number of float32 components per vertex.
func (vx *Vertices[A]) Width() int {
	return int(vx.width)
}

// Handle returns the GL buffer name, 0 once released.
func (vx *Vertices[A]) Handle() uint32 {
	return vx.buf.handle
}

// VertexArray returns the GL vertex array name, 0 once released.
func (vx *Vertices[A]) VertexArray() uint32 {
	return vx.vao
}

// Released returns whether [Vertices.Release] has been called.
func (vx *Vertices[A]) Released() bool {
	return vx.buf.handle == 0
}

// Release deletes the buffer and the vertex array. It is safe to call
// more than once, and whether or not the stream was ever bound.
func (vx *Vertices[A]) Release() {
	if !vx.buf.release() {
		return
	}
	vx.buf.ctx.fns.DeleteVertexArrays(1, &vx.vao)
	vx.vao = 0
	vx.buf.ctx.untrack(vx)
}

func (vx *Vertices[A]) String() string {
	return fmt.Sprintf("Vertices[%d](%d)#%d", vx.width, vx.buf.count, vx.buf.handle)
}

func (vx *Vertices[A]) bindAttribute(slot uint32, first bool) uint32 {
	fns := vx.buf.ctx.fns
	if first {
		vx.buf.ctx.mustBeAlive("bind vertex array")
		fns.BindVertexArray(vx.vao)
	}
	vx.buf.bind()
	fns.EnableVertexAttribArray(slot)
	fns.VertexAttribPointer(slot, vx.width, vx.buf.kind, false, 0, 0)
	return vx.vao
}
