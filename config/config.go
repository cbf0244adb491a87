// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs of gldraw,
// read from TOML or YAML files.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/gldraw/base/errors"
)

// Config is the main config struct that contains all of the
// configuration options for gldraw.
type Config struct {

	// the window to open
	Window Window `toml:"window" yaml:"window"`

	// the rendering state
	Render Render `toml:"render" yaml:"render"`

	// the shader sources to build the program from
	Shaders Shaders `toml:"shaders" yaml:"shaders"`

	// the logging options
	Log Log `toml:"log" yaml:"log"`
}

type Window struct {

	// [def: gldraw] the title of the window
	Title string `toml:"title" yaml:"title"`

	// [def: 800] the width of the window in screen coordinates
	Width int `toml:"width" yaml:"width"`

	// [def: 600] the height of the window in screen coordinates
	Height int `toml:"height" yaml:"height"`

	// [def: true] whether the user can resize the window
	Resizable bool `toml:"resizable" yaml:"resizable"`

	// [def: true] whether buffer swaps wait for the display refresh
	VSync bool `toml:"vsync" yaml:"vsync"`

	// [def: 4] the major OpenGL version to request
	GLMajor int `toml:"gl_major" yaml:"gl_major"`

	// [def: 1] the minor OpenGL version to request
	GLMinor int `toml:"gl_minor" yaml:"gl_minor"`
}

type Render struct {

	// [def: [0.1, 0.1, 0.12, 1]] the RGBA color the frame is cleared to
	ClearColor [4]float32 `toml:"clear_color" yaml:"clear_color"`

	// [def: 1] the rotation speed of the model, in radians per second
	SpinSpeed float32 `toml:"spin_speed" yaml:"spin_speed"`

	// check the GL error state after every GPU operation
	Debug bool `toml:"debug" yaml:"debug"`
}

type Shaders struct {

	// the vertex shader file; the built-in shader is used if empty
	Vertex string `toml:"vertex" yaml:"vertex"`

	// the fragment shader file; the built-in shader is used if empty
	Fragment string `toml:"fragment" yaml:"fragment"`

	// rebuild the program when a shader file changes
	Watch bool `toml:"watch" yaml:"watch"`
}

type Log struct {

	// [def: warn] the minimum level of messages to print: debug, info, warn or error
	Level string `toml:"level" yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:     "gldraw",
			Width:     800,
			Height:    600,
			Resizable: true,
			VSync:     true,
			GLMajor:   4,
			GLMinor:   1,
		},
		Render: Render{
			ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
			SpinSpeed:  1,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Formats are the file formats a [Config] can be read from.
type Formats int32

const (
	TOML Formats = iota
	YAML
)

// FormatFromFilename returns the format of the given file name,
// from its extension.
func FormatFromFilename(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("config: unsupported file type %q (must be .toml, .yaml or .yml)", filepath.Ext(filename))
}

// Open reads the config file at the given path on top of [Default].
// Relative shader paths in the file are resolved relative to the
// directory of the file.
func Open(filename string) (*Config, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Log(err)
	}
	defer f.Close()
	cfg := Default()
	if err := Read(cfg, f, format); err != nil {
		return nil, errors.Log(fmt.Errorf("config: %s: %w", filename, err))
	}
	cfg.Shaders.resolve(filepath.Dir(filename))
	if err := cfg.Validate(); err != nil {
		return nil, errors.Log(fmt.Errorf("config: %s: %w", filename, err))
	}
	return cfg, nil
}

// Read decodes the config in the given format from r into cfg,
// overwriting only the fields present in the input. Unknown fields
// are an error.
func Read(cfg *Config, r io.Reader, format Formats) error {
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err := dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	default:
		return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
	}
}

// Save writes cfg to the given file, in the format of its extension.
func Save(cfg *Config, filename string) error {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return errors.Log(err)
	}
	var b bytes.Buffer
	if err := Write(cfg, &b, format); err != nil {
		return errors.Log(err)
	}
	return errors.Log(os.WriteFile(filename, b.Bytes(), 0o644))
}

// Write encodes cfg to w in the given format.
func Write(cfg *Config, w io.Writer, format Formats) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return toml.NewEncoder(w).Encode(cfg)
	}
}

// Validate returns an error describing every invalid field of cfg.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height))
	}
	if cfg.Window.GLMajor < 3 || (cfg.Window.GLMajor == 3 && cfg.Window.GLMinor < 3) {
		errs = append(errs, fmt.Errorf("OpenGL %d.%d is older than the 3.3 core profile", cfg.Window.GLMajor, cfg.Window.GLMinor))
	}
	for i, c := range cfg.Render.ClearColor {
		if c < 0 || c > 1 {
			errs = append(errs, fmt.Errorf("clear_color[%d] = %g is outside [0, 1]", i, c))
		}
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", cfg.Log.Level))
	}
	return errors.Join(errs...)
}

// resolve makes relative shader paths relative to dir.
func (sh *Shaders) resolve(dir string) {
	for _, p := range []*string{&sh.Vertex, &sh.Fragment} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Files returns the shader files that are set.
func (sh *Shaders) Files() []string {
	var fs []string
	for _, p := range []string{sh.Vertex, sh.Fragment} {
		if p != "" {
			fs = append(fs, p)
		}
	}
	return fs
}
