// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltest

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unsafe"

	"cogentcore.org/gldraw/gl"
)

type shader struct {
	xtype      uint32
	src        string
	compiled   bool
	log        string
	deleteFlag bool
	attached   int
}

type uniform struct {
	name     string
	size     int32
	xtype    uint32
	location int32
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	uniforms []uniform
	values   map[int32][]float32
	uploads  int
}

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	mainRe         = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	errorRe        = regexp.MustCompile(`(?m)^\s*#error\b(.*)$`)
	outRe          = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?out\s+(\w+)\s+(\w+)\s*;`)
	inRe           = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+(\w+)\s+(\w+)\s*;`)
	uniformRe      = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	locationNameRe = regexp.MustCompile(`^(\w+)(?:\[(\d+)\])?$`)
)

var glslTypes = map[string]uint32{
	"float":     gl.FLOAT,
	"vec2":      gl.FLOAT_VEC2,
	"vec3":      gl.FLOAT_VEC3,
	"vec4":      gl.FLOAT_VEC4,
	"int":       gl.INT,
	"ivec2":     gl.INT_VEC2,
	"ivec3":     gl.INT_VEC3,
	"ivec4":     gl.INT_VEC4,
	"uint":      gl.UNSIGNED_INT,
	"bool":      gl.BOOL,
	"mat2":      gl.FLOAT_MAT2,
	"mat3":      gl.FLOAT_MAT3,
	"mat4":      gl.FLOAT_MAT4,
	"sampler2D": gl.SAMPLER_2D,
}

func stripComments(src string) string {
	src = blockCommentRe.ReplaceAllString(src, "")
	return lineCommentRe.ReplaceAllString(src, "")
}

// checkShader is the compile step: a structural check that reports
// errors in the style of a GLSL compiler log.
func checkShader(src string) string {
	code := stripComments(src)
	if m := errorRe.FindStringSubmatch(code); m != nil {
		return fmt.Sprintf("0:%d(1): error: #error%s\n", lineOf(code, m[0]), m[1])
	}
	if strings.Count(code, "{") != strings.Count(code, "}") || strings.Count(code, "(") != strings.Count(code, ")") {
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file\n", strings.Count(code, "\n")+1)
	}
	for _, m := range uniformRe.FindAllStringSubmatch(code, -1) {
		if _, ok := glslTypes[m[1]]; !ok {
			return fmt.Sprintf("0:%d(1): error: unknown type `%s'\n", lineOf(code, m[0]), m[1])
		}
	}
	if !mainRe.MatchString(code) {
		return "0:1(1): error: syntax error, no entry point `main' defined\n"
	}
	return ""
}

func lineOf(code, match string) int {
	i := strings.Index(code, match)
	if i < 0 {
		return 1
	}
	return strings.Count(code[:i], "\n") + 1
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	r.record("CreateShader", xtype)
	if r.FailCreateShader {
		return 0
	}
	if xtype != gl.VERTEX_SHADER && xtype != gl.FRAGMENT_SHADER {
		r.setError(gl.INVALID_ENUM)
		return 0
	}
	name := r.genName()
	r.shaders[name] = &shader{xtype: xtype}
	return name
}

func (r *Recorder) ShaderSource(sh uint32, src string) {
	r.record("ShaderSource", sh, src)
	s := r.shaders[sh]
	if s == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	s.src = src
}

func (r *Recorder) CompileShader(sh uint32) {
	r.record("CompileShader", sh)
	s := r.shaders[sh]
	if s == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	s.log = checkShader(s.src)
	s.compiled = s.log == ""
}

func (r *Recorder) GetShaderiv(sh uint32, pname uint32, params *int32) {
	r.record("GetShaderiv", sh, pname)
	s := r.shaders[sh]
	if s == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	switch pname {
	case gl.COMPILE_STATUS:
		*params = boolInt(s.compiled)
	case gl.INFO_LOG_LENGTH:
		*params = logLength(s.log)
	default:
		r.setError(gl.INVALID_ENUM)
	}
}

func (r *Recorder) GetShaderInfoLog(sh uint32) string {
	r.record("GetShaderInfoLog", sh)
	if s := r.shaders[sh]; s != nil {
		return s.log
	}
	r.setError(gl.INVALID_VALUE)
	return ""
}

func (r *Recorder) DeleteShader(sh uint32) {
	r.record("DeleteShader", sh)
	if sh == 0 {
		return
	}
	s := r.shaders[sh]
	if s == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	r.markDeleted("shader", sh)
	s.deleteFlag = true
	if s.attached == 0 {
		delete(r.shaders, sh)
	}
}

func (r *Recorder) CreateProgram() uint32 {
	r.record("CreateProgram")
	if r.FailCreateProgram {
		return 0
	}
	name := r.genName()
	r.programs[name] = &program{values: make(map[int32][]float32)}
	return name
}

func (r *Recorder) AttachShader(prog, sh uint32) {
	r.record("AttachShader", prog, sh)
	p, s := r.programs[prog], r.shaders[sh]
	if p == nil || s == nil || slices.Contains(p.attached, sh) {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	p.attached = append(p.attached, sh)
	s.attached++
}

func (r *Recorder) DetachShader(prog, sh uint32) {
	r.record("DetachShader", prog, sh)
	p, s := r.programs[prog], r.shaders[sh]
	if p == nil || s == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	i := slices.Index(p.attached, sh)
	if i < 0 {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	p.attached = slices.Delete(p.attached, i, i+1)
	r.release(sh, s)
}

func (r *Recorder) release(name uint32, s *shader) {
	s.attached--
	if s.deleteFlag && s.attached == 0 {
		delete(r.shaders, name)
	}
}

func (r *Recorder) LinkProgram(prog uint32) {
	r.record("LinkProgram", prog)
	p := r.programs[prog]
	if p == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	p.linked = false
	p.uniforms = nil
	p.values = make(map[int32][]float32)
	var vs, fs *shader
	for _, name := range p.attached {
		s := r.shaders[name]
		switch {
		case !s.compiled:
			p.log = "error: linking with uncompiled/unspecialized shader\n"
			return
		case s.xtype == gl.VERTEX_SHADER:
			vs = s
		case s.xtype == gl.FRAGMENT_SHADER:
			fs = s
		}
	}
	if vs == nil || fs == nil {
		p.log = "error: program requires both a vertex and a fragment shader\n"
		return
	}
	p.log = link(p, stripComments(vs.src), stripComments(fs.src))
	p.linked = p.log == ""
}

// link checks the interface between the two stages and reflects the
// active uniforms, returning the link log (empty on success).
func link(p *program, vsrc, fsrc string) string {
	if len(outRe.FindAllStringSubmatch(fsrc, -1)) == 0 {
		return "error: fragment shader does not write to any output\n"
	}
	vouts := map[string]string{}
	for _, m := range outRe.FindAllStringSubmatch(vsrc, -1) {
		vouts[m[2]] = m[1]
	}
	for _, m := range inRe.FindAllStringSubmatch(fsrc, -1) {
		typ, ok := vouts[m[2]]
		if !ok {
			return fmt.Sprintf("error: fragment shader input `%s' has no matching vertex shader output\n", m[2])
		}
		if typ != m[1] {
			return fmt.Sprintf("error: `%s' declared as type `%s' in the vertex shader but `%s' in the fragment shader\n", m[2], typ, m[1])
		}
	}

	all := vsrc + "\n" + fsrc
	var decls []uniform
	declCount := map[string]int{}
	for _, m := range uniformRe.FindAllStringSubmatch(all, -1) {
		size := int32(1)
		if m[3] != "" {
			n, _ := strconv.Atoi(m[3])
			size = int32(n)
		}
		u := uniform{name: m[2], size: size, xtype: glslTypes[m[1]]}
		if i := slices.IndexFunc(decls, func(d uniform) bool { return d.name == u.name }); i >= 0 {
			if decls[i].xtype != u.xtype || decls[i].size != u.size {
				return fmt.Sprintf("error: uniform `%s' declared as different types in the vertex and fragment shaders\n", u.name)
			}
		} else {
			decls = append(decls, u)
		}
		declCount[u.name]++
	}
	loc := int32(0)
	for _, u := range decls {
		uses := len(regexp.MustCompile(`\b`+u.name+`\b`).FindAllStringIndex(all, -1))
		if uses <= declCount[u.name] {
			continue // optimized out
		}
		u.location = loc
		loc += u.size
		p.uniforms = append(p.uniforms, u)
	}
	return ""
}

func (r *Recorder) GetProgramiv(prog uint32, pname uint32, params *int32) {
	r.record("GetProgramiv", prog, pname)
	p := r.programs[prog]
	if p == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	switch pname {
	case gl.LINK_STATUS:
		*params = boolInt(p.linked)
	case gl.INFO_LOG_LENGTH:
		*params = logLength(p.log)
	case gl.ACTIVE_UNIFORMS:
		*params = int32(len(p.uniforms))
	default:
		r.setError(gl.INVALID_ENUM)
	}
}

func (r *Recorder) GetProgramInfoLog(prog uint32) string {
	r.record("GetProgramInfoLog", prog)
	if p := r.programs[prog]; p != nil {
		return p.log
	}
	r.setError(gl.INVALID_VALUE)
	return ""
}

func (r *Recorder) UseProgram(prog uint32) {
	r.record("UseProgram", prog)
	if prog != 0 {
		p := r.programs[prog]
		if p == nil || !p.linked {
			r.setError(gl.INVALID_OPERATION)
			return
		}
	}
	r.current = prog
}

func (r *Recorder) DeleteProgram(prog uint32) {
	r.record("DeleteProgram", prog)
	if prog == 0 {
		return
	}
	p := r.programs[prog]
	if p == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	r.markDeleted("program", prog)
	for _, sh := range p.attached {
		r.release(sh, r.shaders[sh])
	}
	delete(r.programs, prog)
	if r.current == prog {
		r.current = 0
	}
}

////////  Uniforms

func (r *Recorder) GetActiveUniform(prog, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8) {
	r.record("GetActiveUniform", prog, index, bufSize)
	p := r.programs[prog]
	if p == nil {
		r.setError(gl.INVALID_VALUE)
		return
	}
	if int(index) >= len(p.uniforms) || bufSize < 0 {
		r.setError(gl.INVALID_VALUE)
		return
	}
	u := p.uniforms[index]
	reported := u.name
	if u.size > 1 {
		reported += "[0]"
	}
	n := 0
	if bufSize > 0 {
		buf := unsafe.Slice(name, bufSize)
		n = copy(buf[:bufSize-1], reported)
		buf[n] = 0
	}
	if length != nil {
		*length = int32(n)
	}
	*size = u.size
	*xtype = u.xtype
}

func (r *Recorder) GetUniformLocation(prog uint32, name string) int32 {
	r.record("GetUniformLocation", prog, name)
	p := r.programs[prog]
	if p == nil || !p.linked {
		r.setError(gl.INVALID_OPERATION)
		return -1
	}
	m := locationNameRe.FindStringSubmatch(name)
	if m == nil {
		return -1
	}
	for _, u := range p.uniforms {
		if u.name != m[1] {
			continue
		}
		if m[2] == "" {
			return u.location
		}
		i, _ := strconv.Atoi(m[2])
		if u.size > 1 && int32(i) < u.size {
			return u.location + int32(i)
		}
		if u.size == 1 && i == 0 {
			return u.location
		}
	}
	return -1
}

// components returns the number of float components per element of the
// uniform at loc, or 0 if no active uniform covers loc.
func (p *program) components(loc int32) (uint32, bool) {
	for _, u := range p.uniforms {
		if loc >= u.location && loc < u.location+u.size {
			return u.xtype, true
		}
	}
	return 0, false
}

func (r *Recorder) upload(prog uint32, loc int32, want []uint32, values []float32) {
	p := r.programs[prog]
	if p == nil || !p.linked {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	if loc == -1 {
		return
	}
	xtype, ok := p.components(loc)
	if !ok || !slices.Contains(want, xtype) {
		r.setError(gl.INVALID_OPERATION)
		return
	}
	p.values[loc] = values
	p.uploads++
}

func (r *Recorder) ProgramUniform1i(prog uint32, location int32, v0 int32) {
	r.record("ProgramUniform1i", prog, location, v0)
	r.upload(prog, location, []uint32{gl.INT, gl.BOOL, gl.SAMPLER_2D}, []float32{float32(v0)})
}

func (r *Recorder) ProgramUniform1f(prog uint32, location int32, v0 float32) {
	r.record("ProgramUniform1f", prog, location, v0)
	r.upload(prog, location, []uint32{gl.FLOAT}, []float32{v0})
}

func (r *Recorder) ProgramUniform2fv(prog uint32, location int32, count int32, value *float32) {
	vs := slices.Clone(unsafe.Slice(value, 2*count))
	r.record("ProgramUniform2fv", prog, location, count, vs)
	r.upload(prog, location, []uint32{gl.FLOAT_VEC2}, vs)
}

func (r *Recorder) ProgramUniform3fv(prog uint32, location int32, count int32, value *float32) {
	vs := slices.Clone(unsafe.Slice(value, 3*count))
	r.record("ProgramUniform3fv", prog, location, count, vs)
	r.upload(prog, location, []uint32{gl.FLOAT_VEC3}, vs)
}

func (r *Recorder) ProgramUniform4fv(prog uint32, location int32, count int32, value *float32) {
	vs := slices.Clone(unsafe.Slice(value, 4*count))
	r.record("ProgramUniform4fv", prog, location, count, vs)
	r.upload(prog, location, []uint32{gl.FLOAT_VEC4}, vs)
}

func (r *Recorder) ProgramUniformMatrix4fv(prog uint32, location int32, count int32, transpose bool, value *float32) {
	vs := slices.Clone(unsafe.Slice(value, 16*count))
	r.record("ProgramUniformMatrix4fv", prog, location, count, transpose, vs)
	r.upload(prog, location, []uint32{gl.FLOAT_MAT4}, vs)
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}
