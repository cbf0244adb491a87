// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"unsafe"

	"cogentcore.org/gldraw/gl"
)

// IndexType is the set of element types an index buffer can hold:
// 8, 16 or 32 bit unsigned integers.
type IndexType interface {
	~uint8 | ~uint16 | ~uint32
}

// indexKind returns the GL type of I, from its size.
func indexKind[I IndexType]() uint32 {
	var zero I
	switch unsafe.Sizeof(zero) {
	case 1:
		return gl.UNSIGNED_BYTE
	case 2:
		return gl.UNSIGNED_SHORT
	default:
		return gl.UNSIGNED_INT
	}
}

// IndexSource is a stream of indices that can be bound as the
// element array of a draw call. It is implemented by [*Indices].
type IndexSource interface {
	// bindIndices binds the buffer, returning the number of
	// indices and their GL type.
	bindIndices() (count int32, kind uint32)

	String() string
	Released() bool
}

// Indices is an index buffer (ELEMENT_ARRAY_BUFFER) of type I.
// Its contents are fixed at creation.
type Indices[I IndexType] struct {
	buf buffer
}

// NewIndices uploads indices to a new index buffer owned by ctx.
// It panics if the driver cannot allocate the buffer.
func NewIndices[I IndexType](ctx *Context, indices []I) *Indices[I] {
	ix := &Indices[I]{buf: buffer{
		ctx:    ctx,
		target: gl.ELEMENT_ARRAY_BUFFER,
		kind:   indexKind[I](),
		count:  len(indices),
	}}
	ctx.mustBeAlive("NewIndices")
	// the element array binding is vertex array state
	ctx.fns.BindVertexArray(ctx.staging)
	var data unsafe.Pointer
	if len(indices) > 0 {
		data = unsafe.Pointer(&indices[0])
	}
	var zero I
	ix.buf.init(data, len(indices)*int(unsafe.Sizeof(zero)))
	ctx.track(ix)
	ctx.resume()
	ctx.debugCheck("NewIndices")
	return ix
}

// Len returns the number of indices in the buffer.
func (ix *Indices[I]) Len() int {
	return ix.buf.count
}

// Type returns the GL type of the indices
// (UNSIGNED_BYTE, UNSIGNED_SHORT or UNSIGNED_INT).
func (ix *Indices[I]) Type() uint32 {
	return ix.buf.kind
}

// Handle returns the GL buffer name, 0 once released.
func (ix *Indices[I]) Handle() uint32 {
	return ix.buf.handle
}

// Released returns whether [Indices.Release] has been called.
func (ix *Indices[I]) Released() bool {
	return ix.buf.handle == 0
}

// Release deletes the buffer. It is safe to call more than once,
// and whether or not the buffer was ever bound.
func (ix *Indices[I]) Release() {
	if ix.buf.release() {
		ix.buf.ctx.untrack(ix)
	}
}

func (ix *Indices[I]) String() string {
	var zero I
	return fmt.Sprintf("Indices[uint%d](%d)#%d", 8*unsafe.Sizeof(zero), ix.buf.count, ix.buf.handle)
}

func (ix *Indices[I]) bindIndices() (int32, uint32) {
	ix.buf.bind()
	return int32(ix.buf.count), ix.buf.kind
}
