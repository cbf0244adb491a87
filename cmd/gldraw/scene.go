// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/gldraw/base/errors"
	"cogentcore.org/gldraw/config"
	"cogentcore.org/gldraw/glgpu"
)

//go:embed shaders/cube.vert
var cubeVertex string

//go:embed shaders/cube.frag
var cubeFragment string

// cube corners, counter-clockwise seen from outside
var cubePositions = []mgl32.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeIndices = []uint16{
	4, 5, 6, 6, 7, 4, // front
	1, 0, 3, 3, 2, 1, // back
	0, 4, 7, 7, 3, 0, // left
	5, 1, 2, 2, 6, 5, // right
	7, 6, 2, 2, 3, 7, // top
	0, 1, 5, 5, 4, 0, // bottom
}

// scene is a spinning cube with a color per corner.
type scene struct {
	ctx    *glgpu.Context
	cfg    *config.Config
	prog   *glgpu.Program
	pos    *glgpu.Vertices[mgl32.Vec3]
	colors *glgpu.Vertices[mgl32.Vec3]
	index  *glgpu.Indices[uint16]

	// angle is the current rotation about the Y axis, in radians.
	angle float32
}

func newScene(ctx *glgpu.Context, cfg *config.Config) (*scene, error) {
	sc := &scene{ctx: ctx, cfg: cfg}
	if err := sc.reload(); err != nil {
		return nil, err
	}
	colors := make([]mgl32.Vec3, len(cubePositions))
	for i, p := range cubePositions {
		colors[i] = p.Add(mgl32.Vec3{1, 1, 1}).Mul(0.5)
	}
	sc.pos = glgpu.NewVertices(ctx, cubePositions)
	sc.colors = glgpu.NewVertices(ctx, colors)
	sc.index = glgpu.NewIndices(ctx, cubeIndices)
	return sc, nil
}

// sources returns the shader sources: the configured files, or the
// built-in shaders.
func (sc *scene) sources() (vertex, fragment string, err error) {
	vertex, fragment = cubeVertex, cubeFragment
	if fn := sc.cfg.Shaders.Vertex; fn != "" {
		b, err := os.ReadFile(fn)
		if err != nil {
			return "", "", errors.Log(err)
		}
		vertex = string(b)
	}
	if fn := sc.cfg.Shaders.Fragment; fn != "" {
		b, err := os.ReadFile(fn)
		if err != nil {
			return "", "", errors.Log(err)
		}
		fragment = string(b)
	}
	return vertex, fragment, nil
}

// reload builds the program from the current shader sources. On failure
// the previous program, if any, stays in use.
func (sc *scene) reload() error {
	vs, fs, err := sc.sources()
	if err != nil {
		return err
	}
	prog, err := sc.ctx.NewProgram(vs, fs).SetName("cube").Build()
	if err != nil {
		return err
	}
	if _, err := prog.Location("mvp"); err != nil {
		prog.Release()
		return errors.Log(err)
	}
	if sc.prog != nil {
		sc.prog.Release()
	}
	sc.prog = prog
	slog.Info("gldraw: program built", "uniforms", prog.Uniforms())
	return nil
}

// update advances the animation by dt seconds.
func (sc *scene) update(dt float32) {
	sc.angle = math32.Mod(sc.angle+dt*sc.cfg.Render.SpinSpeed, 2*math32.Pi)
}

// mvp returns the model-view-projection matrix for the given aspect ratio.
func (sc *scene) mvp(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{3, 2, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	model := mgl32.HomogRotate3DY(sc.angle).Mul4(mgl32.HomogRotate3DX(0.25 * sc.angle))
	return proj.Mul4(view).Mul4(model)
}

// draw renders one frame of the scene.
func (sc *scene) draw(r *glgpu.Renderer, aspect float32) {
	sc.prog.SetUniform("mvp", glgpu.Mat4(sc.mvp(aspect)))
	sc.prog.SetUniform("brightness", glgpu.Float(0.75+0.25*math32.Sin(2*sc.angle)))
	r.RenderWith(sc.prog).
		AddVertices(sc.pos).
		AddVertices(sc.colors).
		WithIndices(sc.index).
		Finish()
}

func (sc *scene) release() {
	sc.index.Release()
	sc.colors.Release()
	sc.pos.Release()
	sc.prog.Release()
}
