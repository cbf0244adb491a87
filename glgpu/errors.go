// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"strings"

	"cogentcore.org/gldraw/base/errors"
)

var (
	// ErrShaderCreation is returned when the driver cannot create a shader object.
	ErrShaderCreation = errors.New("failed to create new shader")

	// ErrShaderCompilation is returned when a shader fails to compile.
	ErrShaderCompilation = errors.New("failed to compile shader")

	// ErrProgramCreation is returned when the driver cannot create a program object.
	ErrProgramCreation = errors.New("failed to create new program")

	// ErrProgramLinking is returned when a program fails to link.
	ErrProgramLinking = errors.New("failed to link program")

	// ErrNoSuchUniform is returned by [Program.Location] for a name
	// that is not an active uniform of the program.
	ErrNoSuchUniform = errors.New("no such uniform")

	// ErrLiveResources is returned by [Context.Destroy] while resources
	// created through the context have not been released.
	ErrLiveResources = errors.New("resources still alive")
)

// ProgramErrorKinds are the ways building a [Program] can fail.
type ProgramErrorKinds int32

const (
	ShaderCreation ProgramErrorKinds = iota
	ShaderCompilation
	ProgramCreation
	ProgramLinking
)

func (k ProgramErrorKinds) String() string {
	switch k {
	case ShaderCreation:
		return "ShaderCreation"
	case ShaderCompilation:
		return "ShaderCompilation"
	case ProgramCreation:
		return "ProgramCreation"
	case ProgramLinking:
		return "ProgramLinking"
	}
	return "ProgramErrorKinds(?)"
}

// ProgramError is returned by [ProgramBuilder.Build]. It unwraps to
// the sentinel error for its Kind, so errors.Is(err, ErrProgramLinking)
// and similar checks work.
type ProgramError struct {
	Kind ProgramErrorKinds

	// Stage is the shader stage that failed, for ShaderCreation
	// and ShaderCompilation.
	Stage ShaderStages

	// Program is the name set with [ProgramBuilder.SetName], if any.
	Program string

	// Log is the driver's diagnostic output for compile and link failures.
	Log string
}

func (e *ProgramError) Error() string {
	var b strings.Builder
	b.WriteString("glgpu: ")
	if e.Program != "" {
		b.WriteString("program " + e.Program + ": ")
	}
	switch e.Kind {
	case ShaderCreation:
		b.WriteString("failed to create new " + e.Stage.String() + " shader")
	case ShaderCompilation:
		b.WriteString("failed to compile " + e.Stage.String() + " shader")
	default:
		b.WriteString(e.Unwrap().Error())
	}
	if e.Log != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(e.Log))
	}
	return b.String()
}

func (e *ProgramError) Unwrap() error {
	switch e.Kind {
	case ShaderCreation:
		return ErrShaderCreation
	case ShaderCompilation:
		return ErrShaderCompilation
	case ProgramCreation:
		return ErrProgramCreation
	default:
		return ErrProgramLinking
	}
}
