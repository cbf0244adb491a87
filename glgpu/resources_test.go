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

func TestIndicesLen(t *testing.T) {
	ctx, rec := newTestContext(t)

	i8 := NewIndices(ctx, []uint8{0, 1, 2})
	i16 := NewIndices(ctx, []uint16{0, 1, 2, 2, 3, 0})
	i32 := NewIndices(ctx, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6})
	empty := NewIndices(ctx, []uint16{})
	defer func() {
		i8.Release()
		i16.Release()
		i32.Release()
		empty.Release()
	}()

	assert.Equal(t, 3, i8.Len())
	assert.Equal(t, 6, i16.Len())
	assert.Equal(t, 9, i32.Len())
	assert.Equal(t, 0, empty.Len())

	assert.Equal(t, uint32(gl.UNSIGNED_BYTE), i8.Type())
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), i16.Type())
	assert.Equal(t, uint32(gl.UNSIGNED_INT), i32.Type())

	assert.Len(t, rec.Buffer(i8.Handle()).Data, 3)
	assert.Len(t, rec.Buffer(i16.Handle()).Data, 12)
	assert.Len(t, rec.Buffer(i32.Handle()).Data, 36)
	assert.Equal(t, uint32(gl.STATIC_DRAW), rec.Buffer(i32.Handle()).Usage)
	assert.Equal(t, 4, ctx.Live())
}

type vertexID uint16

func TestIndicesDefinedType(t *testing.T) {
	ctx, _ := newTestContext(t)
	ix := NewIndices(ctx, []vertexID{0, 1, 2})
	defer ix.Release()
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), ix.Type())
	assert.Equal(t, "Indices[uint16](3)#3", ix.String())
}

func TestVertices(t *testing.T) {
	ctx, rec := newTestContext(t)

	pos := NewVertices(ctx, []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}})
	uv := NewVertices(ctx, [][2]float32{{0, 0}, {1, 0}, {0.5, 1}})
	defer pos.Release()
	defer uv.Release()

	assert.Equal(t, 3, pos.Width())
	assert.Equal(t, 3, pos.Len())
	assert.Equal(t, 2, uv.Width())
	assert.NotZero(t, pos.VertexArray())
	assert.NotEqual(t, pos.VertexArray(), uv.VertexArray())

	buf := rec.Buffer(pos.Handle())
	require.NotNil(t, buf)
	assert.Equal(t, uint32(gl.ARRAY_BUFFER), buf.Target)
	assert.Len(t, buf.Data, 3*3*4)
	assert.Len(t, rec.Buffer(uv.Handle()).Data, 3*2*4)
}

func TestReleaseOnce(t *testing.T) {
	ctx, rec := newTestContext(t)

	ix := NewIndices(ctx, []uint16{0, 1, 2})
	vx := NewVertices(ctx, [][4]float32{{1, 2, 3, 4}})
	ibuf, vbuf, vao := ix.Handle(), vx.Handle(), vx.VertexArray()
	assert.Equal(t, 2, ctx.Live())

	// never bound
	for range 3 {
		ix.Release()
		vx.Release()
	}
	assert.True(t, ix.Released())
	assert.True(t, vx.Released())
	assert.Equal(t, 1, rec.DeleteCount("buffer", ibuf))
	assert.Equal(t, 1, rec.DeleteCount("buffer", vbuf))
	assert.Equal(t, 1, rec.DeleteCount("vertexarray", vao))
	assert.Equal(t, 0, rec.LiveBuffers())
	// only the context's own vertex arrays are left
	assert.Equal(t, 2, rec.LiveVertexArrays())
	assert.Equal(t, 0, ctx.Live())
}

func TestReleaseAfterDraw(t *testing.T) {
	ctx, rec := newTestContext(t)
	pr := buildProgram(t, ctx, passVertex, constFragment)
	vx := NewVertices(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	ix := NewIndices(ctx, []uint8{0, 1, 2})

	ctx.Renderer().RenderWith(pr).AddVertices(vx).WithIndices(ix).Finish()

	vbuf, vao, ibuf := vx.Handle(), vx.VertexArray(), ix.Handle()
	vx.Release()
	ix.Release()
	vx.Release()
	assert.Equal(t, 1, rec.DeleteCount("buffer", vbuf))
	assert.Equal(t, 1, rec.DeleteCount("vertexarray", vao))
	assert.Equal(t, 1, rec.DeleteCount("buffer", ibuf))
}

func TestAllocationFailurePanics(t *testing.T) {
	ctx, rec := newTestContext(t)
	rec.FailAlloc = true
	assert.PanicsWithError(t, "glgpu: could not allocate index buffer of 6 bytes", func() {
		NewIndices(ctx, []uint16{0, 1, 2})
	})
	assert.Panics(t, func() {
		NewVertices(ctx, [][2]float32{{0, 0}})
	})
	assert.Equal(t, 0, ctx.Live())

	rec.FailAlloc = false
	assert.NoError(t, ctx.Destroy())
}

func TestBindReleasedPanics(t *testing.T) {
	ctx, _ := newTestContext(t)
	pr := buildProgram(t, ctx, passVertex, constFragment)
	ix := NewIndices(ctx, []uint32{0, 1, 2})
	ix.Release()
	assert.Panics(t, func() {
		ctx.Renderer().RenderWith(pr).WithIndices(ix)
	})
}
