// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window opens a desktop window with an OpenGL core profile
// context using glfw, and delivers its input events one at a time.
//
// All functions must be called from the main thread, which must be
// locked with runtime.LockOSThread before [New] is called.
package window

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/gldraw/base/errors"
	"cogentcore.org/gldraw/gl/glcore"
	"cogentcore.org/gldraw/glgpu"
)

// ErrorKinds are the ways opening a window can fail.
type ErrorKinds int32

const (
	// Initialization is a failure to initialize the window system.
	Initialization ErrorKinds = iota

	// OpenGLVersion is a failure to get the requested OpenGL version
	// and profile.
	OpenGLVersion

	// OpenGLContext is a failure to make the context current or load
	// its functions.
	OpenGLContext

	// WindowCreation is any other failure to create the window.
	WindowCreation
)

func (k ErrorKinds) String() string {
	switch k {
	case Initialization:
		return "Initialization"
	case OpenGLVersion:
		return "OpenGLVersion"
	case OpenGLContext:
		return "OpenGLContext"
	case WindowCreation:
		return "WindowCreation"
	}
	return fmt.Sprintf("ErrorKinds(%d)", int32(k))
}

// Error is returned by [New] and [Window.CreateContext].
type Error struct {
	Kind ErrorKinds

	// Reason is the message of the window system.
	Reason string

	err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Initialization:
		return "window: window system initialization failed: " + e.Reason
	case OpenGLVersion:
		return "window: failed to set OpenGL version: " + e.Reason
	case OpenGLContext:
		return "window: failed to create OpenGL context: " + e.Reason
	default:
		return "window: failed to create window: " + e.Reason
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind ErrorKinds, err error) *Error {
	return &Error{Kind: kind, Reason: err.Error(), err: err}
}

// Options are the parameters of a new window.
type Options struct {
	Title string

	// Width and Height are the size in screen coordinates.
	Width, Height int

	// GLMajor and GLMinor are the requested OpenGL version,
	// which defaults to 4.1.
	GLMajor, GLMinor int

	// Resizable makes the window resizable by the user.
	Resizable bool

	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool
}

// DefaultOptions returns the options of an 800x600 resizable window.
func DefaultOptions() Options {
	return Options{
		Title:     "gldraw",
		Width:     800,
		Height:    600,
		GLMajor:   4,
		GLMinor:   1,
		Resizable: true,
		VSync:     true,
	}
}

// Window is a desktop window with an OpenGL context.
type Window struct {
	glw    *glfw.Window
	opts   Options
	events queue
	ctx    *glgpu.Context
}

// New initializes glfw and opens a window. The returned error is
// a [*Error].
func New(opts Options) (*Window, error) {
	if opts.GLMajor == 0 {
		opts.GLMajor, opts.GLMinor = 4, 1
	}
	if err := glfw.Init(); err != nil {
		return nil, errors.Log(newError(Initialization, err))
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))

	glw, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		kind := WindowCreation
		var gerr *glfw.Error
		if errors.As(err, &gerr) && (gerr.Code == glfw.VersionUnavailable || gerr.Code == glfw.APIUnavailable) {
			kind = OpenGLVersion
		}
		return nil, errors.Log(newError(kind, err))
	}
	w := &Window{glw: glw, opts: opts}
	w.events.init()
	glw.SetKeyCallback(w.keyEvent)
	glw.SetSizeCallback(w.sizeEvent)
	glw.SetCloseCallback(w.closeEvent)
	glw.SetFocusCallback(w.focusEvent)
	slog.Debug("window: opened", "title", opts.Title, "width", opts.Width, "height", opts.Height)
	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *Window) keyEvent(gw *glfw.Window, ky glfw.Key, scancode int, action glfw.Action, mod glfw.ModifierKey) {
	w.events.send(keyEvent(ky, action))
}

func (w *Window) sizeEvent(gw *glfw.Window, width, height int) {
	w.events.send(Resized{Width: width, Height: height})
}

func (w *Window) closeEvent(gw *glfw.Window) {
	w.events.send(Quit{})
}

func (w *Window) focusEvent(gw *glfw.Window, focused bool) {
	w.events.send(Unknown{})
}

// CreateContext makes the OpenGL context of the window current on the
// calling thread, loads its functions and returns the [glgpu.Context]
// for it. There is one context per window: later calls return the same one.
func (w *Window) CreateContext() (*glgpu.Context, error) {
	if w.ctx != nil {
		return w.ctx, nil
	}
	w.glw.MakeContextCurrent()
	if w.opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	fns, err := glcore.New()
	if err != nil {
		return nil, errors.Log(newError(OpenGLContext, err))
	}
	w.ctx = glgpu.NewContext(fns)
	slog.Info("window: OpenGL context", "driver", w.ctx.Info().String())
	return w.ctx, nil
}

// PollEvent returns the next pending event without blocking. When
// no events are queued it processes the window system events once.
func (w *Window) PollEvent() (Event, bool) {
	if w.events.size() == 0 {
		glfw.PollEvents()
	}
	ev := w.events.next()
	return ev, ev != nil
}

// SwapBuffers presents the frame rendered into the back buffer.
func (w *Window) SwapBuffers() {
	w.glw.SwapBuffers()
}

// Size returns the size of the window in screen coordinates.
func (w *Window) Size() (width, height int) {
	return w.glw.GetSize()
}

// FramebufferSize returns the size of the framebuffer in pixels,
// which differs from [Window.Size] on high density displays.
func (w *Window) FramebufferSize() (width, height int) {
	return w.glw.GetFramebufferSize()
}

// ShouldClose returns whether the user has asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

// SetShouldClose sets the close flag of the window.
func (w *Window) SetShouldClose(close bool) {
	w.glw.SetShouldClose(close)
}

// Destroy destroys the context, the window and terminates glfw. It
// fails, leaving the window open, if resources of the context are
// still live.
func (w *Window) Destroy() error {
	if w.glw == nil {
		return nil
	}
	if w.ctx != nil {
		if err := w.ctx.Destroy(); err != nil {
			return err
		}
	}
	w.glw.Destroy()
	w.glw = nil
	glfw.Terminate()
	return nil
}
