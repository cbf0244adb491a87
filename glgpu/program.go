// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/gldraw/base/errors"
	"cogentcore.org/gldraw/gl"
)

// ShaderStages are the programmable stages a [Program] is built from.
type ShaderStages int32

const (
	VertexShader ShaderStages = iota
	FragmentShader
)

func (st ShaderStages) String() string {
	switch st {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStages(%d)", int32(st))
}

// GLType returns the GL shader type of the stage.
func (st ShaderStages) GLType() uint32 {
	if st == FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// noLog stands in for an empty driver log, so that a failed
// compile or link always carries some diagnostic text.
const noLog = "(the driver returned no diagnostic output)"

// ProgramBuilder assembles a [Program] from vertex and fragment
// shader sources. Make one with [Context.NewProgram].
type ProgramBuilder struct {
	ctx         *Context
	name        string
	vertexSrc   string
	fragmentSrc string
}

// SetName sets a name used in logs and errors for the program.
func (pb *ProgramBuilder) SetName(name string) *ProgramBuilder {
	pb.name = name
	return pb
}

// Build creates the program object, compiles the vertex and then the
// fragment shader, and links them. The shader objects are detached and
// deleted once linking has been attempted, and every object created is
// deleted again on failure. The returned error is a [*ProgramError].
// On success the uniform cache is populated exactly once.
func (pb *ProgramBuilder) Build() (*Program, error) {
	ctx := pb.ctx
	ctx.mustBeAlive("build program")
	fns := ctx.fns

	handle := fns.CreateProgram()
	if handle == 0 {
		return nil, errors.Log(&ProgramError{Kind: ProgramCreation, Program: pb.name})
	}
	vs, err := pb.compile(VertexShader, pb.vertexSrc)
	if err != nil {
		fns.DeleteProgram(handle)
		return nil, errors.Log(err)
	}
	fs, err := pb.compile(FragmentShader, pb.fragmentSrc)
	if err != nil {
		fns.DeleteShader(vs)
		fns.DeleteProgram(handle)
		return nil, errors.Log(err)
	}

	fns.AttachShader(handle, vs)
	fns.AttachShader(handle, fs)
	fns.LinkProgram(handle)
	fns.DetachShader(handle, vs)
	fns.DetachShader(handle, fs)
	fns.DeleteShader(vs)
	fns.DeleteShader(fs)

	var status int32
	fns.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		lg := fns.GetProgramInfoLog(handle)
		fns.DeleteProgram(handle)
		if strings.TrimSpace(lg) == "" {
			lg = noLog
		}
		return nil, errors.Log(&ProgramError{Kind: ProgramLinking, Program: pb.name, Log: lg})
	}

	pr := &Program{ctx: ctx, handle: handle, name: pb.name}
	ctx.track(pr)
	pr.UpdateUniforms()
	ctx.debugCheck("Build")
	slog.Debug("glgpu: program linked", "program", pr.String(), "uniforms", len(pr.uniforms))
	return pr, nil
}

// compile creates and compiles one shader object, deleting it again if
// compilation fails.
func (pb *ProgramBuilder) compile(stage ShaderStages, src string) (uint32, error) {
	fns := pb.ctx.fns
	sh := fns.CreateShader(stage.GLType())
	if sh == 0 {
		return 0, &ProgramError{Kind: ShaderCreation, Stage: stage, Program: pb.name}
	}
	fns.ShaderSource(sh, src)
	fns.CompileShader(sh)

	var status int32
	fns.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		lg := fns.GetShaderInfoLog(sh)
		fns.DeleteShader(sh)
		if strings.TrimSpace(lg) == "" {
			lg = noLog
		}
		return 0, &ProgramError{Kind: ShaderCompilation, Stage: stage, Program: pb.name, Log: lg}
	}
	return sh, nil
}

// Program is a linked shader program together with the cache of its
// active uniforms.
type Program struct {
	ctx      *Context
	handle   uint32
	name     string
	uniforms map[string]UniformInfo
}

// Handle returns the GL program name, 0 once released.
func (pr *Program) Handle() uint32 {
	return pr.handle
}

// Name returns the name set with [ProgramBuilder.SetName].
func (pr *Program) Name() string {
	return pr.name
}

// Released returns whether [Program.Release] has been called.
func (pr *Program) Released() bool {
	return pr.handle == 0
}

// Release deletes the program. It is safe to call more than once.
func (pr *Program) Release() {
	if pr.handle == 0 {
		return
	}
	pr.ctx.fns.DeleteProgram(pr.handle)
	pr.handle = 0
	pr.uniforms = nil
	pr.ctx.untrack(pr)
}

func (pr *Program) String() string {
	if pr.name == "" {
		return fmt.Sprintf("Program#%d", pr.handle)
	}
	return fmt.Sprintf("Program(%s)#%d", pr.name, pr.handle)
}

// activate makes this the current program.
func (pr *Program) activate() {
	pr.mustBeUsable("use program")
	pr.ctx.fns.UseProgram(pr.handle)
}

func (pr *Program) mustBeUsable(op string) {
	pr.ctx.mustBeAlive(op)
	if pr.handle == 0 {
		panic(fmt.Errorf("glgpu: %s: program %q has been released", op, pr.name))
	}
}
