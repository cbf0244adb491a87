// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/gldraw/gl"
	"cogentcore.org/gldraw/gl/gltest"
)

func TestNewContextState(t *testing.T) {
	rec := gltest.New()
	ctx := NewContext(rec)
	assert.True(t, rec.Enabled(gl.CULL_FACE))
	assert.True(t, rec.Enabled(gl.DEPTH_TEST))
	assert.Equal(t, uint32(gl.LESS), rec.DepthFuncValue())
	assert.Equal(t, 2, rec.LiveVertexArrays())
	assert.Equal(t, "gltest", ctx.Info().Renderer)
	require.NoError(t, ctx.Destroy())
	assert.Equal(t, 0, rec.LiveVertexArrays())
}

func TestDestroyWithLiveResources(t *testing.T) {
	rec := gltest.New()
	ctx := NewContext(rec)
	ix := NewIndices(ctx, []uint8{0, 1, 2})
	vx := NewVertices(ctx, [][2]float32{{0, 0}})

	err := ctx.Destroy()
	assert.ErrorIs(t, err, ErrLiveResources)
	assert.Contains(t, err.Error(), ix.String())
	assert.False(t, ctx.Destroyed())

	ix.Release()
	vx.Release()
	require.NoError(t, ctx.Destroy())
	assert.True(t, ctx.Destroyed())
	assert.NoError(t, ctx.Destroy())
	assert.Equal(t, 0, rec.LiveBuffers())
	assert.Equal(t, 0, rec.LiveVertexArrays())
}

func TestUseAfterDestroyPanics(t *testing.T) {
	rec := gltest.New()
	ctx := NewContext(rec)
	require.NoError(t, ctx.Destroy())

	assert.Panics(t, func() { NewIndices(ctx, []uint16{0}) })
	assert.Panics(t, func() { ctx.NewProgram(passVertex, constFragment).Build() })
	assert.Panics(t, func() { ctx.Renderer().Clear() })
}

func TestCheckError(t *testing.T) {
	rec := gltest.New()
	ctx := NewContext(rec)
	defer ctx.Destroy()

	assert.NoError(t, ctx.CheckError("idle"))
	rec.UseProgram(42)
	err := ctx.CheckError("use")
	assert.EqualError(t, err, "glgpu: use: GL error INVALID_OPERATION")
	assert.NoError(t, ctx.CheckError("again"))
}
