// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"unsafe"

	"cogentcore.org/gldraw/gl"
)

// buffer is one GL buffer object holding count elements of a single
// numeric kind, bound to a fixed target (ARRAY_BUFFER or ELEMENT_ARRAY_BUFFER).
type buffer struct {
	ctx    *Context
	handle uint32
	target uint32
	kind   uint32
	count  int
}

// init generates the buffer object, binds it and uploads size bytes from
// data with the STATIC_DRAW usage hint. A zero name from the driver is an
// unrecoverable allocation failure and panics.
func (b *buffer) init(data unsafe.Pointer, size int) {
	fns := b.ctx.fns
	fns.GenBuffers(1, &b.handle)
	if b.handle == 0 {
		panic(fmt.Errorf("glgpu: could not allocate %s buffer of %d bytes", targetName(b.target), size))
	}
	fns.BindBuffer(b.target, b.handle)
	fns.BufferData(b.target, size, data, gl.STATIC_DRAW)
}

// bind makes this the active buffer of its target. Any buffer
// previously bound to the target is no longer bound afterward.
func (b *buffer) bind() {
	b.ctx.mustBeAlive("bind buffer")
	if b.handle == 0 {
		panic(fmt.Errorf("glgpu: bind of released %s buffer", targetName(b.target)))
	}
	b.ctx.fns.BindBuffer(b.target, b.handle)
}

// release deletes the buffer object. It returns false if the buffer
// was already released.
func (b *buffer) release() bool {
	if b.handle == 0 {
		return false
	}
	b.ctx.fns.DeleteBuffers(1, &b.handle)
	b.handle = 0
	return true
}

func targetName(target uint32) string {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		return "index"
	}
	return "vertex"
}
