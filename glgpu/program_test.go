// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/gldraw/gl"
)

func TestBuildMinimal(t *testing.T) {
	ctx, rec := newTestContext(t)
	pr := buildProgram(t, ctx, passVertex, constFragment)

	assert.NotZero(t, pr.Handle())
	assert.Empty(t, pr.Uniforms())
	harvests := 0
	for _, c := range rec.CallsNamed("GetProgramiv") {
		if c.Args[1] == uint32(gl.ACTIVE_UNIFORMS) {
			harvests++
		}
	}
	assert.Equal(t, 1, harvests)
	assert.Equal(t, 0, rec.LiveShaders())
	assert.Equal(t, 2, rec.CallCount("DetachShader"))
	assert.Equal(t, 2, rec.CallCount("DeleteShader"))

	pr.UpdateUniforms()
	assert.Empty(t, pr.Uniforms())
}

func TestBuildOrder(t *testing.T) {
	ctx, rec := newTestContext(t)
	rec.ResetCalls()
	buildProgram(t, ctx, passVertex, constFragment)

	var names []string
	for _, c := range rec.Calls {
		switch c.Name {
		case "CreateProgram", "CreateShader", "CompileShader", "AttachShader", "LinkProgram", "DetachShader", "DeleteShader":
			names = append(names, c.Name)
		}
	}
	assert.Equal(t, []string{
		"CreateProgram",
		"CreateShader", "CompileShader",
		"CreateShader", "CompileShader",
		"AttachShader", "AttachShader",
		"LinkProgram",
		"DetachShader", "DetachShader",
		"DeleteShader", "DeleteShader",
	}, names)
	creates := rec.CallsNamed("CreateShader")
	assert.Equal(t, uint32(gl.VERTEX_SHADER), creates[0].Args[0])
	assert.Equal(t, uint32(gl.FRAGMENT_SHADER), creates[1].Args[0])
}

func TestCompileErrors(t *testing.T) {
	invalid := []string{
		"#version 410 core\nvoid main() {\n\tgl_Position = vec4(0.0;\n}\n",
		"#version 410 core\nvoid main() {\n",
		"#version 410 core\nuniform vec9 bad;\nvoid main() {}\n",
		"#version 410 core\n#error not today\nvoid main() {}\n",
		"#version 410 core\n",
		"",
	}
	for _, src := range invalid {
		ctx, rec := newTestContext(t)
		var pr *Program
		var err error
		require.NotPanics(t, func() {
			pr, err = ctx.NewProgram(src, constFragment).Build()
		})
		assert.Nil(t, pr)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrShaderCompilation)

		var perr *ProgramError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, ShaderCompilation, perr.Kind)
		assert.Equal(t, VertexShader, perr.Stage)
		assert.NotEmpty(t, perr.Log)

		// the fragment shader is never compiled after the vertex shader fails
		assert.Equal(t, 1, rec.CallCount("CreateShader"))
		assert.Equal(t, 0, rec.LiveShaders())
		assert.Equal(t, 0, rec.LivePrograms())
		assert.Equal(t, 0, ctx.Live())
	}
}

func TestFragmentCompileError(t *testing.T) {
	ctx, rec := newTestContext(t)
	_, err := ctx.NewProgram(passVertex, "void main() {").SetName("broken").Build()
	var perr *ProgramError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, FragmentShader, perr.Stage)
	assert.Equal(t, "broken", perr.Program)
	assert.Contains(t, err.Error(), "program broken: failed to compile fragment shader: ")
	assert.Equal(t, 0, rec.LiveShaders())
	assert.Equal(t, 0, rec.LivePrograms())
}

func TestLinkErrors(t *testing.T) {
	mismatched := `#version 410 core
in vec3 normal;
out vec4 fragColor;
void main() {
	fragColor = vec4(normal, 1.0);
}
`
	noOutput := `#version 410 core
void main() {
}
`
	for _, fs := range []string{mismatched, noOutput} {
		ctx, rec := newTestContext(t)
		pr, err := ctx.NewProgram(passVertex, fs).Build()
		assert.Nil(t, pr)
		assert.ErrorIs(t, err, ErrProgramLinking)

		var perr *ProgramError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, ProgramLinking, perr.Kind)
		assert.NotEmpty(t, perr.Log)

		assert.Equal(t, 2, rec.CallCount("DetachShader"))
		assert.Equal(t, 0, rec.LiveShaders())
		assert.Equal(t, 0, rec.LivePrograms())
		assert.Equal(t, 0, rec.CallCount("GetActiveUniform"))
	}
}

func TestCreationErrors(t *testing.T) {
	ctx, rec := newTestContext(t)
	rec.FailCreateProgram = true
	_, err := ctx.NewProgram(passVertex, constFragment).Build()
	assert.ErrorIs(t, err, ErrProgramCreation)
	assert.Equal(t, 0, rec.CallCount("CreateShader"))

	rec.FailCreateProgram = false
	rec.FailCreateShader = true
	_, err = ctx.NewProgram(passVertex, constFragment).Build()
	assert.ErrorIs(t, err, ErrShaderCreation)
	assert.Equal(t, 0, rec.LivePrograms())
}

func TestUniformCache(t *testing.T) {
	ctx, _ := newTestContext(t)
	pr := buildProgram(t, ctx, colorVertex, colorFragment)

	assert.Equal(t, []string{"lights", "mode", "mvp", "tint"}, pr.Uniforms())

	ui, ok := pr.Uniform("lights")
	require.True(t, ok)
	assert.Equal(t, int32(4), ui.Size)
	assert.Equal(t, uint32(gl.FLOAT_VEC3), ui.Type)
	_, ok = pr.Uniform("lights[0]")
	assert.True(t, ok)

	ui, ok = pr.Uniform("mvp")
	require.True(t, ok)
	assert.Equal(t, UniformInfo{Location: 0, Size: 1, Type: gl.FLOAT_MAT4}, ui)

	loc, err := pr.Location("tint")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, loc, int32(0))

	_, err = pr.Location("unused")
	assert.ErrorIs(t, err, ErrNoSuchUniform)
	_, err = pr.Location("mode[0]")
	assert.ErrorIs(t, err, ErrNoSuchUniform)
}

func TestSetUniform(t *testing.T) {
	ctx, rec := newTestContext(t)
	pr := buildProgram(t, ctx, colorVertex, colorFragment)
	rec.ResetCalls()

	assert.False(t, pr.SetUniform("undeclared_name", Float(1)))
	assert.False(t, pr.SetUniform("unused", Float(1)))
	assert.Empty(t, rec.Calls)
	assert.Equal(t, 0, rec.UniformUploads(pr.Handle()))

	mvp := mgl32.Ident4().Mul4(mgl32.Translate3D(1, 2, 3))
	assert.True(t, pr.SetUniform("mvp", Mat4(mvp)))
	assert.True(t, pr.SetUniform("tint", Vec3{1, 0.5, 0.25}))
	assert.True(t, pr.SetUniform("mode", Int(1)))
	assert.True(t, pr.SetUniform("lights", Vec3Array{{1, 1, 1}, {0, 0, 1}}))
	assert.Equal(t, 4, rec.UniformUploads(pr.Handle()))
	assert.Equal(t, uint32(gl.NO_ERROR), rec.GetError())

	loc, err := pr.Location("mvp")
	require.NoError(t, err)
	assert.Equal(t, mvp[:], rec.UniformValue(pr.Handle(), loc))
	loc, err = pr.Location("tint")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0.5, 0.25}, rec.UniformValue(pr.Handle(), loc))
}

func TestLongUniformNameTruncated(t *testing.T) {
	long := "u"
	for len(long) < 150 {
		long += "_padding"
	}
	fs := "#version 410 core\nuniform float " + long + ";\nout vec4 c;\nvoid main() {\n\tc = vec4(" + long + ");\n}\n"
	ctx, _ := newTestContext(t)
	pr := buildProgram(t, ctx, passVertex, fs)

	names := pr.Uniforms()
	require.Len(t, names, 1)
	assert.Len(t, names[0], MaxUniformNameLength-1)
	assert.Equal(t, long[:MaxUniformNameLength-1], names[0])
	assert.False(t, pr.SetUniform(long, Float(1)))
}

func TestProgramRelease(t *testing.T) {
	ctx, rec := newTestContext(t)
	pr, err := ctx.NewProgram(passVertex, constFragment).Build()
	require.NoError(t, err)
	h := pr.Handle()
	pr.Release()
	pr.Release()
	assert.Equal(t, 1, rec.DeleteCount("program", h))
	assert.Equal(t, 0, ctx.Live())
	assert.Panics(t, func() { pr.SetUniform("x", Float(0)) })
	assert.Panics(t, func() { ctx.Renderer().RenderWith(pr) })
}
