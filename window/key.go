// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import "strconv"

// Key is a physical key on the keyboard, named by its position
// on a US layout.
type Key int32

const (
	// KeyUnknown is any key without a name here.
	KeyUnknown Key = iota

	// letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// digits
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyReturn
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyGrave
	KeyComma
	KeyPeriod
	KeySlash
	KeyCapsLock

	// function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// navigation and editing
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyNumLock

	// numeric keypad
	KeyNumpadDivide
	KeyNumpadMultiply
	KeyNumpadMinus
	KeyNumpadPlus
	KeyNumpadEnter
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadPeriod

	// modifiers
	KeyLeftControl
	KeyLeftShift
	KeyLeftAlt
	KeyLeftSuper
	KeyRightControl
	KeyRightShift
	KeyRightAlt
	KeyRightSuper

	// KeysN is the number of keys.
	KeysN
)

var keyNames = [...]string{
	"Unknown",
	"A",
	"B",
	"C",
	"D",
	"E",
	"F",
	"G",
	"H",
	"I",
	"J",
	"K",
	"L",
	"M",
	"N",
	"O",
	"P",
	"Q",
	"R",
	"S",
	"T",
	"U",
	"V",
	"W",
	"X",
	"Y",
	"Z",
	"0",
	"1",
	"2",
	"3",
	"4",
	"5",
	"6",
	"7",
	"8",
	"9",
	"Return",
	"Escape",
	"Backspace",
	"Tab",
	"Space",
	"Minus",
	"Equals",
	"LeftBracket",
	"RightBracket",
	"Backslash",
	"Grave",
	"Comma",
	"Period",
	"Slash",
	"CapsLock",
	"F1",
	"F2",
	"F3",
	"F4",
	"F5",
	"F6",
	"F7",
	"F8",
	"F9",
	"F10",
	"F11",
	"F12",
	"PrintScreen",
	"ScrollLock",
	"Pause",
	"Insert",
	"Home",
	"PageUp",
	"Delete",
	"End",
	"PageDown",
	"Right",
	"Left",
	"Down",
	"Up",
	"NumLock",
	"NumpadDivide",
	"NumpadMultiply",
	"NumpadMinus",
	"NumpadPlus",
	"NumpadEnter",
	"Numpad0",
	"Numpad1",
	"Numpad2",
	"Numpad3",
	"Numpad4",
	"Numpad5",
	"Numpad6",
	"Numpad7",
	"Numpad8",
	"Numpad9",
	"NumpadPeriod",
	"LeftControl",
	"LeftShift",
	"LeftAlt",
	"LeftSuper",
	"RightControl",
	"RightShift",
	"RightAlt",
	"RightSuper",
}

func (k Key) String() string {
	if k >= 0 && k < KeysN {
		return keyNames[k]
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// KeyValues returns all named keys, excluding [KeyUnknown].
func KeyValues() []Key {
	ks := make([]Key, 0, KeysN-1)
	for k := KeyUnknown + 1; k < KeysN; k++ {
		ks = append(ks, k)
	}
	return ks
}
