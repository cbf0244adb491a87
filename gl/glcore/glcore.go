// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glcore implements [gl.Functions] on top of the
// github.com/go-gl/gl OpenGL 4.1 core profile bindings.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	"cogentcore.org/gldraw/gl"
	gogl "github.com/go-gl/gl/v4.1-core/gl"
)

// Functions is the go-gl backed function table. The zero value is not
// usable; use [New] after the context has been made current.
type Functions struct {
	version string
}

var _ gl.Functions = (*Functions)(nil)

// New loads the OpenGL entry points for the context that is current
// on the calling thread and returns a function table for it.
func New() (*Functions, error) {
	if err := gogl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: loading OpenGL functions: %w", err)
	}
	f := &Functions{}
	f.version = f.GetString(gl.VERSION)
	return f, nil
}

// Version returns the GL_VERSION string reported when the
// function table was loaded.
func (f *Functions) Version() string {
	return f.version
}

func (f *Functions) ClearColor(r, g, b, a float32) { gogl.ClearColor(r, g, b, a) }
func (f *Functions) Clear(mask uint32)             { gogl.Clear(mask) }
func (f *Functions) Viewport(x, y, width, height int32) {
	gogl.Viewport(x, y, width, height)
}
func (f *Functions) Enable(cap uint32)   { gogl.Enable(cap) }
func (f *Functions) Disable(cap uint32)  { gogl.Disable(cap) }
func (f *Functions) DepthFunc(fn uint32) { gogl.DepthFunc(fn) }
func (f *Functions) GetError() uint32    { return gogl.GetError() }
func (f *Functions) GetString(name uint32) string {
	s := gogl.GetString(name)
	if s == nil {
		return ""
	}
	return gogl.GoStr(s)
}

func (f *Functions) GenBuffers(n int32, buffers *uint32)    { gogl.GenBuffers(n, buffers) }
func (f *Functions) DeleteBuffers(n int32, buffers *uint32) { gogl.DeleteBuffers(n, buffers) }
func (f *Functions) BindBuffer(target, buffer uint32)       { gogl.BindBuffer(target, buffer) }
func (f *Functions) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gogl.BufferData(target, size, data, usage)
}

func (f *Functions) GenVertexArrays(n int32, arrays *uint32)    { gogl.GenVertexArrays(n, arrays) }
func (f *Functions) DeleteVertexArrays(n int32, arrays *uint32) { gogl.DeleteVertexArrays(n, arrays) }
func (f *Functions) BindVertexArray(array uint32)               { gogl.BindVertexArray(array) }
func (f *Functions) EnableVertexAttribArray(index uint32)       { gogl.EnableVertexAttribArray(index) }
func (f *Functions) DisableVertexAttribArray(index uint32)      { gogl.DisableVertexAttribArray(index) }
func (f *Functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gogl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}
func (f *Functions) GetVertexAttribiv(index uint32, pname uint32, params *int32) {
	gogl.GetVertexAttribiv(index, pname, params)
}

func (f *Functions) CreateShader(xtype uint32) uint32 { return gogl.CreateShader(xtype) }

// ShaderSource sets the source of shader; src does not need to be
// null terminated.
func (f *Functions) ShaderSource(shader uint32, src string) {
	csources, free := gogl.Strs(src + "\x00")
	defer free()
	gogl.ShaderSource(shader, 1, csources, nil)
}
func (f *Functions) CompileShader(shader uint32) { gogl.CompileShader(shader) }
func (f *Functions) GetShaderiv(shader uint32, pname uint32, params *int32) {
	gogl.GetShaderiv(shader, pname, params)
}
func (f *Functions) GetShaderInfoLog(shader uint32) string {
	var n int32
	gogl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gogl.GetShaderInfoLog(shader, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}
func (f *Functions) DeleteShader(shader uint32) { gogl.DeleteShader(shader) }

func (f *Functions) CreateProgram() uint32               { return gogl.CreateProgram() }
func (f *Functions) AttachShader(program, shader uint32) { gogl.AttachShader(program, shader) }
func (f *Functions) DetachShader(program, shader uint32) { gogl.DetachShader(program, shader) }
func (f *Functions) LinkProgram(program uint32)          { gogl.LinkProgram(program) }
func (f *Functions) GetProgramiv(program uint32, pname uint32, params *int32) {
	gogl.GetProgramiv(program, pname, params)
}
func (f *Functions) GetProgramInfoLog(program uint32) string {
	var n int32
	gogl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gogl.GetProgramInfoLog(program, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}
func (f *Functions) UseProgram(program uint32)    { gogl.UseProgram(program) }
func (f *Functions) DeleteProgram(program uint32) { gogl.DeleteProgram(program) }

func (f *Functions) GetActiveUniform(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8) {
	gogl.GetActiveUniform(program, index, bufSize, length, size, xtype, name)
}
func (f *Functions) GetUniformLocation(program uint32, name string) int32 {
	return gogl.GetUniformLocation(program, gogl.Str(name+"\x00"))
}
func (f *Functions) ProgramUniform1i(program uint32, location int32, v0 int32) {
	gogl.ProgramUniform1i(program, location, v0)
}
func (f *Functions) ProgramUniform1f(program uint32, location int32, v0 float32) {
	gogl.ProgramUniform1f(program, location, v0)
}
func (f *Functions) ProgramUniform2fv(program uint32, location int32, count int32, value *float32) {
	gogl.ProgramUniform2fv(program, location, count, value)
}
func (f *Functions) ProgramUniform3fv(program uint32, location int32, count int32, value *float32) {
	gogl.ProgramUniform3fv(program, location, count, value)
}
func (f *Functions) ProgramUniform4fv(program uint32, location int32, count int32, value *float32) {
	gogl.ProgramUniform4fv(program, location, count, value)
}
func (f *Functions) ProgramUniformMatrix4fv(program uint32, location int32, count int32, transpose bool, value *float32) {
	gogl.ProgramUniformMatrix4fv(program, location, count, transpose, value)
}

func (f *Functions) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gogl.DrawElementsWithOffset(mode, count, xtype, offset)
}
