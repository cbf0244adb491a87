// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromString("debug"))
	assert.Equal(t, slog.LevelError, LevelFromString("ERROR"))
	assert.Equal(t, UserLevel, LevelFromString(""))
	assert.Equal(t, UserLevel, LevelFromString("loud"))
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelInfo, termenv.WithProfile(termenv.Ascii))
	lg := slog.New(h)

	lg.Debug("hidden")
	lg.Info("compiled", "shader", "vertex")
	lg.With("program", 3).WithGroup("uniform").Warn("missing", "name", "time")

	assert.Equal(t, "INFO compiled shader=vertex\nWARN missing program=3 uniform.name=time\n", buf.String())
}

func TestDefaultLogger(t *testing.T) {
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
	UserLevel = slog.LevelWarn
}
