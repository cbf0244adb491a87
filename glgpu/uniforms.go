// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/gldraw/gl"
	"golang.org/x/exp/maps"
)

// MaxUniformNameLength is the size of the buffer uniform names are read
// into, including the terminating NUL. Longer names are truncated.
const MaxUniformNameLength = 128

// UniformInfo describes one active uniform of a [Program].
type UniformInfo struct {

	// Location is the uniform location, -1 if the driver does not resolve it.
	Location int32

	// Size is the number of array elements, 1 for a non-array uniform.
	Size int32

	// Type is the GL type, such as FLOAT_VEC3.
	Type uint32
}

func (ui UniformInfo) String() string {
	if ui.Size > 1 {
		return fmt.Sprintf("%s[%d]@%d", gl.TypeString(ui.Type), ui.Size, ui.Location)
	}
	return fmt.Sprintf("%s@%d", gl.TypeString(ui.Type), ui.Location)
}

// UpdateUniforms queries the active uniforms of the program and
// replaces the uniform cache with them. Array uniforms are cached
// under their bare name, without the "[0]" the driver reports.
// It is called by [ProgramBuilder.Build].
func (pr *Program) UpdateUniforms() {
	pr.mustBeUsable("update uniforms")
	fns := pr.ctx.fns
	var count int32
	fns.GetProgramiv(pr.handle, gl.ACTIVE_UNIFORMS, &count)

	unis := make(map[string]UniformInfo, count)
	var buf [MaxUniformNameLength]uint8
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		fns.GetActiveUniform(pr.handle, i, MaxUniformNameLength, &length, &size, &xtype, &buf[0])
		length = min(max(length, 0), MaxUniformNameLength-1)
		name := string(buf[:length])
		loc := fns.GetUniformLocation(pr.handle, name)
		name = strings.TrimSuffix(name, "[0]")
		unis[name] = UniformInfo{Location: loc, Size: size, Type: xtype}
	}
	pr.uniforms = unis
	pr.ctx.debugCheck("UpdateUniforms")
}

// lookup finds name in the cache, also accepting "name[0]" for arrays.
func (pr *Program) lookup(name string) (UniformInfo, bool) {
	if ui, ok := pr.uniforms[name]; ok {
		return ui, true
	}
	if base, ok := strings.CutSuffix(name, "[0]"); ok {
		ui, ok := pr.uniforms[base]
		return ui, ok && ui.Size > 1
	}
	return UniformInfo{}, false
}

// Uniform returns the cached description of the named uniform.
func (pr *Program) Uniform(name string) (UniformInfo, bool) {
	return pr.lookup(name)
}

// Uniforms returns the sorted names of the cached uniforms.
func (pr *Program) Uniforms() []string {
	names := maps.Keys(pr.uniforms)
	slices.Sort(names)
	return names
}

// Location returns the location of the named uniform, or an error
// wrapping [ErrNoSuchUniform] if it is not an active uniform with a
// resolved location.
func (pr *Program) Location(name string) (int32, error) {
	ui, ok := pr.lookup(name)
	if !ok || ui.Location < 0 {
		return -1, fmt.Errorf("glgpu: %s: %w: %q", pr, ErrNoSuchUniform, name)
	}
	return ui.Location, nil
}

// SetUniform uploads value to the named uniform of the program. It
// does not need the program to be current. It returns false, without
// touching the GPU, if the name is not an active uniform of the
// program. Use [Program.Location] to require a uniform to exist.
func (pr *Program) SetUniform(name string, value UniformValue) bool {
	pr.mustBeUsable("set uniform " + name)
	ui, ok := pr.lookup(name)
	if !ok || ui.Location < 0 {
		slog.Debug("glgpu: no such uniform", "program", pr.String(), "uniform", name)
		return false
	}
	value.UploadUniform(pr.ctx.fns, pr.handle, ui.Location)
	pr.ctx.debugCheck("SetUniform " + name)
	return true
}
