// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import "github.com/go-gl/glfw/v3.3/glfw"

var glfwKeys = map[glfw.Key]Key{
	glfw.KeyA:            KeyA,
	glfw.KeyB:            KeyB,
	glfw.KeyC:            KeyC,
	glfw.KeyD:            KeyD,
	glfw.KeyE:            KeyE,
	glfw.KeyF:            KeyF,
	glfw.KeyG:            KeyG,
	glfw.KeyH:            KeyH,
	glfw.KeyI:            KeyI,
	glfw.KeyJ:            KeyJ,
	glfw.KeyK:            KeyK,
	glfw.KeyL:            KeyL,
	glfw.KeyM:            KeyM,
	glfw.KeyN:            KeyN,
	glfw.KeyO:            KeyO,
	glfw.KeyP:            KeyP,
	glfw.KeyQ:            KeyQ,
	glfw.KeyR:            KeyR,
	glfw.KeyS:            KeyS,
	glfw.KeyT:            KeyT,
	glfw.KeyU:            KeyU,
	glfw.KeyV:            KeyV,
	glfw.KeyW:            KeyW,
	glfw.KeyX:            KeyX,
	glfw.KeyY:            KeyY,
	glfw.KeyZ:            KeyZ,
	glfw.Key0:            Key0,
	glfw.Key1:            Key1,
	glfw.Key2:            Key2,
	glfw.Key3:            Key3,
	glfw.Key4:            Key4,
	glfw.Key5:            Key5,
	glfw.Key6:            Key6,
	glfw.Key7:            Key7,
	glfw.Key8:            Key8,
	glfw.Key9:            Key9,
	glfw.KeyEnter:        KeyReturn,
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeyTab:          KeyTab,
	glfw.KeySpace:        KeySpace,
	glfw.KeyMinus:        KeyMinus,
	glfw.KeyEqual:        KeyEquals,
	glfw.KeyLeftBracket:  KeyLeftBracket,
	glfw.KeyRightBracket: KeyRightBracket,
	glfw.KeyBackslash:    KeyBackslash,
	glfw.KeyGraveAccent:  KeyGrave,
	glfw.KeyComma:        KeyComma,
	glfw.KeyPeriod:       KeyPeriod,
	glfw.KeySlash:        KeySlash,
	glfw.KeyCapsLock:     KeyCapsLock,
	glfw.KeyF1:           KeyF1,
	glfw.KeyF2:           KeyF2,
	glfw.KeyF3:           KeyF3,
	glfw.KeyF4:           KeyF4,
	glfw.KeyF5:           KeyF5,
	glfw.KeyF6:           KeyF6,
	glfw.KeyF7:           KeyF7,
	glfw.KeyF8:           KeyF8,
	glfw.KeyF9:           KeyF9,
	glfw.KeyF10:          KeyF10,
	glfw.KeyF11:          KeyF11,
	glfw.KeyF12:          KeyF12,
	glfw.KeyPrintScreen:  KeyPrintScreen,
	glfw.KeyScrollLock:   KeyScrollLock,
	glfw.KeyPause:        KeyPause,
	glfw.KeyInsert:       KeyInsert,
	glfw.KeyHome:         KeyHome,
	glfw.KeyPageUp:       KeyPageUp,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyPageDown:     KeyPageDown,
	glfw.KeyRight:        KeyRight,
	glfw.KeyLeft:         KeyLeft,
	glfw.KeyDown:         KeyDown,
	glfw.KeyUp:           KeyUp,
	glfw.KeyNumLock:      KeyNumLock,
	glfw.KeyKPDivide:     KeyNumpadDivide,
	glfw.KeyKPMultiply:   KeyNumpadMultiply,
	glfw.KeyKPSubtract:   KeyNumpadMinus,
	glfw.KeyKPAdd:        KeyNumpadPlus,
	glfw.KeyKPEnter:      KeyNumpadEnter,
	glfw.KeyKP0:          KeyNumpad0,
	glfw.KeyKP1:          KeyNumpad1,
	glfw.KeyKP2:          KeyNumpad2,
	glfw.KeyKP3:          KeyNumpad3,
	glfw.KeyKP4:          KeyNumpad4,
	glfw.KeyKP5:          KeyNumpad5,
	glfw.KeyKP6:          KeyNumpad6,
	glfw.KeyKP7:          KeyNumpad7,
	glfw.KeyKP8:          KeyNumpad8,
	glfw.KeyKP9:          KeyNumpad9,
	glfw.KeyKPDecimal:    KeyNumpadPeriod,
	glfw.KeyLeftControl:  KeyLeftControl,
	glfw.KeyLeftShift:    KeyLeftShift,
	glfw.KeyLeftAlt:      KeyLeftAlt,
	glfw.KeyLeftSuper:    KeyLeftSuper,
	glfw.KeyRightControl: KeyRightControl,
	glfw.KeyRightShift:   KeyRightShift,
	glfw.KeyRightAlt:     KeyRightAlt,
	glfw.KeyRightSuper:   KeyRightSuper,
}

// GlfwKey returns the [Key] for a glfw key code,
// or [KeyUnknown] if it has no name here.
func GlfwKey(kcode glfw.Key) Key {
	if k, ok := glfwKeys[kcode]; ok {
		return k
	}
	return KeyUnknown
}
