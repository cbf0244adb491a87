// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"

	"cogentcore.org/gldraw/gl"
)

// Renderer clears the framebuffer and issues draw calls for a [Context].
// A draw call can only be made through the stage sequence
//
//	RenderWith(program) -> AddVertices(...)* -> WithIndices(indices) -> Finish()
//
// Each stage value is valid for exactly one transition: using it again,
// or using any stage of a chain after a later RenderWith, panics.
type Renderer struct {
	ctx *Context

	// active is the chain of the draw in progress, if any.
	active *chain

	// draws counts finished draw calls.
	draws int
}

// chain is the state shared by the stages of one draw.
type chain struct {
	r    *Renderer
	step int

	// vao is the vertex array the draw is configured in.
	vao uint32

	// sources are the streams attached so far, in order.
	sources []source
}

// source is a stream that can be attached to a draw.
type source interface {
	String() string
	Released() bool
}

// attach records s as part of the draw, panicking if it has been released.
func (c *chain) attach(s source, op string) {
	if s.Released() {
		panic(fmt.Errorf("glgpu: %s of released %s", op, s))
	}
	c.sources = append(c.sources, s)
}

// advance moves the chain past step, panicking if step is stale.
func (c *chain) advance(step int, op string) {
	if c == nil {
		panic(fmt.Errorf("glgpu: %s on a zero stage", op))
	}
	if c.r.active != c || c.step != step {
		panic(fmt.Errorf("glgpu: %s on a stage that has already been used", op))
	}
	c.r.ctx.mustBeAlive(op)
	c.step++
}

// Clear clears the color and depth buffers.
func (r *Renderer) Clear() {
	r.ctx.mustBeAlive("clear")
	r.ctx.fns.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetClearColor sets the color used by [Renderer.Clear].
func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.ctx.mustBeAlive("set clear color")
	r.ctx.fns.ClearColor(red, green, blue, alpha)
}

// SetViewport sets the viewport to the given framebuffer size,
// with its origin at the lower left corner.
func (r *Renderer) SetViewport(width, height int) {
	r.ctx.mustBeAlive("set viewport")
	r.ctx.fns.Viewport(0, 0, int32(width), int32(height))
}

// Draws returns the number of draw calls finished so far.
func (r *Renderer) Draws() int {
	return r.draws
}

// RenderWith starts a draw with the given program: it makes the
// program current and returns the stage that binds vertex attribute
// streams, starting at layout location 0. Any draw left unfinished
// is abandoned.
func (r *Renderer) RenderWith(pr *Program) VertexStage {
	pr.activate()
	r.ctx.fns.BindVertexArray(r.ctx.vao)
	c := &chain{r: r, vao: r.ctx.vao}
	r.active = c
	return VertexStage{c: c}
}

// VertexStage binds vertex attribute streams to consecutive layout
// locations.
type VertexStage struct {
	c    *chain
	step int

	// slot is the layout location the next stream is bound to.
	slot uint32
}

// AddVertices binds vx to the next layout location, configured with
// the stream's width and float components.
func (vs VertexStage) AddVertices(vx VertexSource) VertexStage {
	vs.c.advance(vs.step, "AddVertices")
	vs.c.attach(vx, "AddVertices")
	vao := vx.bindAttribute(vs.slot, vs.slot == 0)
	if vs.slot == 0 {
		// later streams are configured in the first stream's vertex array
		vs.c.vao = vao
	}
	return VertexStage{c: vs.c, step: vs.step + 1, slot: vs.slot + 1}
}

// Slots returns the number of layout locations bound so far.
func (vs VertexStage) Slots() int {
	return int(vs.slot)
}

// WithIndices binds ix as the element array of the draw.
func (vs VertexStage) WithIndices(ix IndexSource) IndexStage {
	vs.c.advance(vs.step, "WithIndices")
	vs.c.attach(ix, "WithIndices")
	count, kind := ix.bindIndices()
	return IndexStage{c: vs.c, step: vs.step + 1, slots: vs.slot, count: count, kind: kind}
}

// IndexStage is the final stage of a draw.
type IndexStage struct {
	c     *chain
	step  int
	slots uint32
	count int32
	kind  uint32
}

// Finish issues one indexed triangle draw over all the indices, then
// disables the layout locations enabled by the draw. It panics if any
// stream of the draw has been released since it was attached.
func (is IndexStage) Finish() {
	is.c.advance(is.step, "Finish")
	for _, s := range is.c.sources {
		if s.Released() {
			is.c.r.active = nil
			panic(fmt.Errorf("glgpu: Finish with released %s", s))
		}
	}
	r := is.c.r
	fns := r.ctx.fns
	fns.DrawElements(gl.TRIANGLES, is.count, is.kind, 0)
	for i := uint32(0); i < is.slots; i++ {
		fns.DisableVertexAttribArray(i)
	}
	r.active = nil
	r.draws++
	r.ctx.debugCheck("Finish")
}
