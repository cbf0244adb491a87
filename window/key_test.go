// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Unknown", KeyUnknown.String())
	assert.Equal(t, "A", KeyA.String())
	assert.Equal(t, "0", Key0.String())
	assert.Equal(t, "F12", KeyF12.String())
	assert.Equal(t, "NumpadPeriod", KeyNumpadPeriod.String())
	assert.Equal(t, "RightSuper", KeyRightSuper.String())
	assert.Equal(t, "Key(-1)", Key(-1).String())
	assert.Equal(t, "Key(1000)", Key(1000).String())
}

func TestGlfwKey(t *testing.T) {
	assert.Equal(t, KeyW, GlfwKey(glfw.KeyW))
	assert.Equal(t, Key7, GlfwKey(glfw.Key7))
	assert.Equal(t, KeyReturn, GlfwKey(glfw.KeyEnter))
	assert.Equal(t, KeyGrave, GlfwKey(glfw.KeyGraveAccent))
	assert.Equal(t, KeyNumpadMinus, GlfwKey(glfw.KeyKPSubtract))
	assert.Equal(t, KeyLeftSuper, GlfwKey(glfw.KeyLeftSuper))
	assert.Equal(t, KeyUnknown, GlfwKey(glfw.KeyWorld1))
	assert.Equal(t, KeyUnknown, GlfwKey(glfw.KeyUnknown))

	// every named key is reachable from exactly one glfw code
	seen := map[Key]int{}
	for _, k := range glfwKeys {
		seen[k]++
	}
	for _, k := range KeyValues() {
		assert.Equal(t, 1, seen[k], k.String())
	}
}

func TestKeyEvent(t *testing.T) {
	assert.Equal(t, KeyPressed{Code: KeyEscape}, keyEvent(glfw.KeyEscape, glfw.Press))
	assert.Equal(t, KeyPressed{Code: KeySpace, Repeat: true}, keyEvent(glfw.KeySpace, glfw.Repeat))
	assert.Equal(t, KeyReleased{Code: KeyUp}, keyEvent(glfw.KeyUp, glfw.Release))
	assert.Equal(t, "KeyPressed(Space, repeat)", keyEvent(glfw.KeySpace, glfw.Repeat).String())
}

func TestErrorMessages(t *testing.T) {
	err := &Error{Kind: OpenGLVersion, Reason: "4.1 unavailable"}
	assert.EqualError(t, err, "window: failed to set OpenGL version: 4.1 unavailable")
	assert.Equal(t, "WindowCreation", WindowCreation.String())
}
