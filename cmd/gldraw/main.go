// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gldraw opens a window and draws a spinning cube with the
// glgpu staged draw pipeline. Shaders can be loaded from files and
// rebuilt while running.
//
// Keys: Escape or Q quits, Space pauses, R rebuilds the shaders.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"cogentcore.org/gldraw/base/errors"
	"cogentcore.org/gldraw/base/logx"
	"cogentcore.org/gldraw/config"
	"cogentcore.org/gldraw/glgpu"
	"cogentcore.org/gldraw/shaderwatch"
	"cogentcore.org/gldraw/window"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

func main() {
	var (
		configFile  string
		writeConfig string
		vv, v, q    bool
		watch       bool
		debug       bool
	)
	pflag.StringVarP(&configFile, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pflag.StringVar(&writeConfig, "write-config", "", "write the effective config to this file and exit")
	pflag.BoolVar(&vv, "vv", false, "log debug messages")
	pflag.BoolVarP(&v, "verbose", "v", false, "log info messages")
	pflag.BoolVarP(&q, "quiet", "q", false, "only log errors")
	pflag.BoolVarP(&watch, "watch", "w", false, "rebuild the shaders when their files change")
	pflag.BoolVar(&debug, "debug", false, "check the GL error state after every GPU operation")
	pflag.Parse()

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Open(configFile)
		if err != nil {
			os.Exit(1)
		}
	}
	if pflag.CommandLine.Changed("watch") {
		cfg.Shaders.Watch = watch
	}
	if debug {
		cfg.Render.Debug = true
	}

	logx.UserLevel = logx.LevelFromString(cfg.Log.Level)
	if vv || v || q {
		logx.UserLevel = logx.LevelFromFlags(vv, v, q)
	}
	logx.SetDefaultLogger()

	if writeConfig != "" {
		if err := config.Save(cfg, writeConfig); err != nil {
			os.Exit(1)
		}
		return
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "gldraw:", err)
		os.Exit(1)
	}
}

func windowOptions(cfg *config.Config) window.Options {
	return window.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		GLMajor:   cfg.Window.GLMajor,
		GLMinor:   cfg.Window.GLMinor,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	}
}

func run(cfg *config.Config) error {
	glgpu.Debug = cfg.Render.Debug
	win, err := window.New(windowOptions(cfg))
	if err != nil {
		return err
	}
	ctx, err := win.CreateContext()
	if err != nil {
		errors.Log(win.Destroy())
		return err
	}
	sc, err := newScene(ctx, cfg)
	if err != nil {
		errors.Log(win.Destroy())
		return err
	}

	var changes <-chan struct{}
	if files := cfg.Shaders.Files(); cfg.Shaders.Watch && len(files) > 0 {
		sw, err := shaderwatch.New(files...)
		if err == nil {
			defer sw.Close()
			changes = sw.Changes()
		}
	}

	r := ctx.Renderer()
	cc := cfg.Render.ClearColor
	r.SetClearColor(cc[0], cc[1], cc[2], cc[3])
	fbw, fbh := win.FramebufferSize()
	r.SetViewport(fbw, fbh)
	ww, wh := win.Size()
	aspect := float32(ww) / float32(max(wh, 1))

	paused := false
	running := true
	frames := 0
	start := time.Now()
	last := start
	for running {
		for ev, ok := win.PollEvent(); ok; ev, ok = win.PollEvent() {
			slog.Debug("gldraw: event", "event", ev.String())
			switch ev := ev.(type) {
			case window.Quit:
				running = false
			case window.KeyPressed:
				switch ev.Code {
				case window.KeyEscape, window.KeyQ:
					running = false
				case window.KeySpace:
					if !ev.Repeat {
						paused = !paused
					}
				case window.KeyR:
					sc.reload()
				}
			case window.Resized:
				fbw, fbh := win.FramebufferSize()
				r.SetViewport(fbw, fbh)
				aspect = float32(ev.Width) / float32(max(ev.Height, 1))
			}
		}
		select {
		case <-changes:
			sc.reload()
		default:
		}

		now := time.Now()
		if !paused {
			sc.update(float32(now.Sub(last).Seconds()))
		}
		last = now

		r.Clear()
		sc.draw(r, aspect)
		win.SwapBuffers()

		frames++
		if dur := now.Sub(start); dur > 10*time.Second {
			slog.Info("gldraw: frame rate", "fps", fmt.Sprintf("%.0f", float64(frames)/dur.Seconds()))
			frames = 0
			start = now
		}
	}

	sc.release()
	return win.Destroy()
}
