// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrder(t *testing.T) {
	var q queue
	q.init()
	assert.Nil(t, q.next())

	q.send(KeyPressed{Code: KeyA})
	q.send(Resized{Width: 640, Height: 480})
	q.send(Quit{})
	assert.Equal(t, 3, q.size())

	assert.Equal(t, KeyPressed{Code: KeyA}, q.next())
	assert.Equal(t, Resized{Width: 640, Height: 480}, q.next())
	assert.Equal(t, Quit{}, q.next())
	assert.Nil(t, q.next())
	assert.Equal(t, 0, q.size())
}

func TestQueueGrowWrapped(t *testing.T) {
	var q queue
	q.init()
	// move the head off zero so that growing copies a wrapped ring
	for i := range 10 {
		q.send(Resized{Width: i})
	}
	for range 10 {
		q.next()
	}

	const total = 3*minQueue + 5
	for i := range total {
		q.send(Resized{Width: i})
	}
	assert.Equal(t, total, q.size())
	for i := range total {
		assert.Equal(t, Resized{Width: i}, q.next())
	}
	assert.Nil(t, q.next())
}

func TestQueueZeroValue(t *testing.T) {
	var q queue
	assert.Nil(t, q.next())
	q.send(Quit{})
	assert.Equal(t, Quit{}, q.next())
}
