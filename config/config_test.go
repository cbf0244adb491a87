// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 4, cfg.Window.GLMajor)
	assert.Equal(t, 1, cfg.Window.GLMinor)
	assert.Empty(t, cfg.Shaders.Files())
}

func TestOpenTOML(t *testing.T) {
	cfg, err := Open(filepath.Join("testdata", "gldraw.toml"))
	require.NoError(t, err)
	assert.Equal(t, "spinning quad", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.False(t, cfg.Window.VSync)
	assert.True(t, cfg.Window.Resizable, "unset fields keep their defaults")
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.Render.ClearColor)
	assert.Equal(t, float32(2.5), cfg.Render.SpinSpeed)
	assert.Equal(t, filepath.Join("testdata", "shaders", "quad.vert"), cfg.Shaders.Vertex)
	assert.Equal(t, "/abs/quad.frag", cfg.Shaders.Fragment)
	assert.True(t, cfg.Shaders.Watch)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Len(t, cfg.Shaders.Files(), 2)
}

func TestOpenYAML(t *testing.T) {
	cfg, err := Open(filepath.Join("testdata", "gldraw.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.True(t, cfg.Render.Debug)
	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1}, cfg.Render.ClearColor)
	assert.Equal(t, "info", cfg.Log.Level)

	cfg, err = Open(filepath.Join("testdata", "empty.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join("testdata", "unknown.toml"))
	assert.Error(t, err)

	_, err = Open(filepath.Join("testdata", "invalid.yml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "window size -1x600 must be positive")
	assert.ErrorContains(t, err, "clear_color[0] = 2 is outside [0, 1]")
	assert.ErrorContains(t, err, `unknown log level "loud"`)

	_, err = Open(filepath.Join("testdata", "gldraw.json"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = Open(filepath.Join("testdata", "missing.toml"))
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	for _, format := range []Formats{TOML, YAML} {
		cfg := Default()
		cfg.Window.Title = "round trip"
		cfg.Shaders.Watch = true
		var b bytes.Buffer
		require.NoError(t, Write(cfg, &b, format))

		got := &Config{}
		require.NoError(t, Read(got, &b, format))
		assert.Equal(t, cfg, got)
	}
}

func TestSave(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.yml")
	cfg := Default()
	cfg.Log.Level = "error"
	require.NoError(t, Save(cfg, fn))
	got, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
