// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Event is an input or window event returned by [Window.PollEvent].
// It is one of [KeyPressed], [KeyReleased], [Resized], [Quit] or [Unknown].
type Event interface {
	fmt.Stringer
	isEvent()
}

// KeyPressed is sent when a key goes down, and again while it
// is held if the platform repeats keys.
type KeyPressed struct {
	Code   Key
	Repeat bool
}

// KeyReleased is sent when a key goes up.
type KeyReleased struct {
	Code Key
}

// Resized is sent with the new size of the window,
// in screen coordinates.
type Resized struct {
	Width, Height int
}

// Quit is sent when the user asks to close the window.
type Quit struct{}

// Unknown is any other event of the window system.
type Unknown struct{}

func (KeyPressed) isEvent()  {}
func (KeyReleased) isEvent() {}
func (Resized) isEvent()     {}
func (Quit) isEvent()        {}
func (Unknown) isEvent()     {}

func (ev KeyPressed) String() string {
	if ev.Repeat {
		return "KeyPressed(" + ev.Code.String() + ", repeat)"
	}
	return "KeyPressed(" + ev.Code.String() + ")"
}

func (ev KeyReleased) String() string { return "KeyReleased(" + ev.Code.String() + ")" }
func (ev Resized) String() string     { return fmt.Sprintf("Resized(%d, %d)", ev.Width, ev.Height) }
func (Quit) String() string           { return "Quit" }
func (Unknown) String() string        { return "Unknown" }

// keyEvent returns the event for a glfw key callback.
func keyEvent(ky glfw.Key, action glfw.Action) Event {
	code := GlfwKey(ky)
	switch action {
	case glfw.Press:
		return KeyPressed{Code: code}
	case glfw.Repeat:
		return KeyPressed{Code: code, Repeat: true}
	case glfw.Release:
		return KeyReleased{Code: code}
	}
	return Unknown{}
}
