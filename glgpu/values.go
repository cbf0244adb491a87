// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/gldraw/gl"
)

// UniformValue is a value that can be uploaded to a uniform location
// of a program. Any type implementing it can be passed to
// [Program.SetUniform].
type UniformValue interface {
	UploadUniform(fns gl.Functions, program uint32, location int32)
}

// Float is a float uniform value.
type Float float32

// Int is an int, bool or sampler uniform value.
type Int int32

// Vec2 is a vec2 uniform value.
type Vec2 mgl32.Vec2

// Vec3 is a vec3 uniform value.
type Vec3 mgl32.Vec3

// Vec4 is a vec4 uniform value.
type Vec4 mgl32.Vec4

// Mat4 is a mat4 uniform value, in the column-major order of mgl32.
type Mat4 mgl32.Mat4

// Vec3Array is the value of a vec3 array uniform, uploaded
// starting at element 0.
type Vec3Array []mgl32.Vec3

func (v Float) UploadUniform(fns gl.Functions, program uint32, location int32) {
	fns.ProgramUniform1f(program, location, float32(v))
}

func (v Int) UploadUniform(fns gl.Functions, program uint32, location int32) {
	fns.ProgramUniform1i(program, location, int32(v))
}

func (v Vec2) UploadUniform(fns gl.Functions, program uint32, location int32) {
	fns.ProgramUniform2fv(program, location, 1, &v[0])
}

func (v Vec3) UploadUniform(fns gl.Functions, program uint32, location int32) {
	fns.ProgramUniform3fv(program, location, 1, &v[0])
}

func (v Vec4) UploadUniform(fns gl.Functions, program uint32, location int32) {
	fns.ProgramUniform4fv(program, location, 1, &v[0])
}

func (v Mat4) UploadUniform(fns gl.Functions, program uint32, location int32) {
	fns.ProgramUniformMatrix4fv(program, location, 1, false, &v[0])
}

func (v Vec3Array) UploadUniform(fns gl.Functions, program uint32, location int32) {
	if len(v) == 0 {
		return
	}
	fns.ProgramUniform3fv(program, location, int32(len(v)), &v[0][0])
}
