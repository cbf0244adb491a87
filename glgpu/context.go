// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu manages OpenGL GPU resources (vertex and index buffers,
// vertex arrays, shader programs and their uniforms) and issues draw
// calls through a staged pipeline:
//
//	ctx.Renderer().RenderWith(prog).
//		AddVertices(positions).
//		AddVertices(colors).
//		WithIndices(indices).
//		Finish()
//
// Every resource belongs to one [Context], which must outlive it. All
// calls must be made on the thread that owns the context.
package glgpu

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"cogentcore.org/gldraw/base/errors"
	"cogentcore.org/gldraw/gl"
)

// Debug, when true, checks the GL error state after every
// resource operation and draw call, logging any errors.
var Debug = false

// resource is implemented by everything a Context owns.
type resource interface {
	String() string
}

// Context is the RenderContext: the function table of one OpenGL context
// together with the registry of live resources created through it.
// There is exactly one Context per window.
type Context struct {
	fns gl.Functions

	// vao is the vertex array bound for draws until a vertex
	// stream binds its own.
	vao uint32

	// staging holds the element array binding of index uploads.
	staging uint32

	live      map[resource]struct{}
	destroyed bool
	renderer  *Renderer
}

// ContextInfo describes the driver behind a [Context].
type ContextInfo struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

func (ci ContextInfo) String() string {
	return fmt.Sprintf("%s %s (OpenGL %s, GLSL %s)", ci.Vendor, ci.Renderer, ci.Version, ci.GLSL)
}

// NewContext returns a new Context issuing its calls through fns,
// which must belong to the context current on the calling thread.
// It sets the default pipeline state: back-face culling on, and
// depth testing on with the LESS comparison.
func NewContext(fns gl.Functions) *Context {
	ctx := &Context{
		fns:  fns,
		live: make(map[resource]struct{}),
	}
	fns.GenVertexArrays(1, &ctx.vao)
	fns.GenVertexArrays(1, &ctx.staging)
	if ctx.vao == 0 || ctx.staging == 0 {
		panic(errors.New("glgpu: NewContext: could not allocate the default vertex arrays"))
	}
	fns.Enable(gl.CULL_FACE)
	fns.Enable(gl.DEPTH_TEST)
	fns.DepthFunc(gl.LESS)
	ctx.renderer = &Renderer{ctx: ctx}
	slog.Debug("glgpu: context created", "info", ctx.Info())
	return ctx
}

// Functions returns the function table of the context.
func (ctx *Context) Functions() gl.Functions {
	return ctx.fns
}

// Info queries the vendor, renderer and version strings of the driver.
func (ctx *Context) Info() ContextInfo {
	return ContextInfo{
		Vendor:   ctx.fns.GetString(gl.VENDOR),
		Renderer: ctx.fns.GetString(gl.RENDERER),
		Version:  ctx.fns.GetString(gl.VERSION),
		GLSL:     ctx.fns.GetString(gl.SHADING_LANGUAGE_VERSION),
	}
}

// Renderer returns the renderer of this context.
func (ctx *Context) Renderer() *Renderer {
	return ctx.renderer
}

// NewProgram returns a builder for a program made of the given
// vertex and fragment shader sources.
func (ctx *Context) NewProgram(vertexSrc, fragmentSrc string) *ProgramBuilder {
	return &ProgramBuilder{ctx: ctx, vertexSrc: vertexSrc, fragmentSrc: fragmentSrc}
}

// Live returns the number of resources created through this context
// that have not yet been released.
func (ctx *Context) Live() int {
	return len(ctx.live)
}

// Destroyed returns whether [Context.Destroy] has succeeded.
func (ctx *Context) Destroyed() bool {
	return ctx.destroyed
}

// Destroy releases the GPU objects owned by the context itself.
// All resources created through it must have been released first;
// otherwise it returns an error wrapping [ErrLiveResources] and
// leaves the context usable. Destroy on a destroyed context is a no-op.
func (ctx *Context) Destroy() error {
	if ctx.destroyed {
		return nil
	}
	if len(ctx.live) > 0 {
		names := make([]string, 0, len(ctx.live))
		for r := range ctx.live {
			names = append(names, r.String())
		}
		sort.Strings(names)
		return errors.Log(fmt.Errorf("glgpu: Context.Destroy: %w: %s", ErrLiveResources, strings.Join(names, ", ")))
	}
	ctx.fns.BindVertexArray(0)
	ctx.fns.DeleteVertexArrays(1, &ctx.vao)
	ctx.fns.DeleteVertexArrays(1, &ctx.staging)
	ctx.vao, ctx.staging = 0, 0
	ctx.destroyed = true
	slog.Debug("glgpu: context destroyed")
	return nil
}

// CheckError drains the GL error queue, returning an error naming
// every pending error code, or nil if there were none.
func (ctx *Context) CheckError(op string) error {
	var codes []string
	for i := 0; i < 16; i++ {
		code := ctx.fns.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, gl.ErrorString(code))
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("glgpu: %s: GL error %s", op, strings.Join(codes, ", "))
}

// debugCheck logs GL errors after op when [Debug] is on.
func (ctx *Context) debugCheck(op string) {
	if Debug {
		errors.Log(ctx.CheckError(op))
	}
}

// mustBeAlive panics if the context has been destroyed.
func (ctx *Context) mustBeAlive(op string) {
	if ctx.destroyed {
		panic(fmt.Errorf("glgpu: %s: the owning Context has been destroyed", op))
	}
}

// resume rebinds the vertex array of the draw in progress, if any,
// after a resource upload has changed the binding.
func (ctx *Context) resume() {
	if c := ctx.renderer.active; c != nil {
		ctx.fns.BindVertexArray(c.vao)
	}
}

func (ctx *Context) track(r resource) {
	ctx.mustBeAlive("create " + r.String())
	ctx.live[r] = struct{}{}
}

func (ctx *Context) untrack(r resource) {
	delete(ctx.live, r)
}
