// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cogentcore.org/gldraw/gl/gltest"
)

const passVertex = `#version 410 core
layout (location = 0) in vec3 position;
void main() {
	gl_Position = vec4(position, 1.0);
}
`

const constFragment = `#version 410 core
out vec4 fragColor;
void main() {
	fragColor = vec4(1.0, 0.5, 0.2, 1.0);
}
`

const colorVertex = `#version 410 core
layout (location = 0) in vec3 position;
layout (location = 1) in vec2 uv;
uniform mat4 mvp;
uniform float unused;
out vec2 texCoord;
void main() {
	texCoord = uv;
	gl_Position = mvp * vec4(position, 1.0);
}
`

const colorFragment = `#version 410 core
in vec2 texCoord;
uniform vec3 tint;
uniform vec3 lights[4];
uniform int mode;
out vec4 fragColor;
void main() {
	vec3 c = tint * lights[0];
	if (mode == 1) {
		c = vec3(texCoord, 0.0);
	}
	fragColor = vec4(c, 1.0);
}
`

func newTestContext(t *testing.T) (*Context, *gltest.Recorder) {
	t.Helper()
	rec := gltest.New()
	ctx := NewContext(rec)
	t.Cleanup(func() {
		if ctx.Live() == 0 {
			require.NoError(t, ctx.Destroy())
		}
	})
	return ctx, rec
}

func buildProgram(t *testing.T, ctx *Context, vs, fs string) *Program {
	t.Helper()
	pr, err := ctx.NewProgram(vs, fs).Build()
	require.NoError(t, err)
	t.Cleanup(pr.Release)
	return pr
}
