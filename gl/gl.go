// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gl describes the subset of the OpenGL 4.1 core API used by
// gldraw as the [Functions] interface. Every call that reads or mutates
// the implicit binding state of a context goes through a value of this
// interface, so that state is threaded explicitly through the program.
//
// Implementations live in [cogentcore.org/gldraw/gl/glcore] (the real
// driver) and [cogentcore.org/gldraw/gl/gltest] (an in-memory simulation
// for tests).
package gl

import "unsafe"

// Functions is the graphics function table of one OpenGL context.
// All methods operate on the context that is current on the calling
// thread, and must only be called from that thread.
type Functions interface {
	// state
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Enable(cap uint32)
	Disable(cap uint32)
	DepthFunc(fn uint32)
	GetError() uint32
	GetString(name uint32) string

	// buffers
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// vertex arrays
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	GetVertexAttribiv(index uint32, pname uint32, params *int32)

	// shaders
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// uniforms
	GetActiveUniform(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8)
	GetUniformLocation(program uint32, name string) int32
	ProgramUniform1i(program uint32, location int32, v0 int32)
	ProgramUniform1f(program uint32, location int32, v0 float32)
	ProgramUniform2fv(program uint32, location int32, count int32, value *float32)
	ProgramUniform3fv(program uint32, location int32, count int32, value *float32)
	ProgramUniform4fv(program uint32, location int32, count int32, value *float32)
	ProgramUniformMatrix4fv(program uint32, location int32, count int32, transpose bool, value *float32)

	// drawing
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}
