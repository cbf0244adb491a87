// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

// queue is a FIFO of pending events backed by a growable ring.
// It is filled by the glfw callbacks and drained by [Window.PollEvent],
// both of which run on the thread that polls the window system,
// so it is not safe for concurrent use.
type queue struct {
	buf  []Event
	head int
	n    int
}

// minQueue is the initial capacity of a queue.
const minQueue = 16

func (q *queue) init() {
	q.buf = make([]Event, minQueue)
	q.head, q.n = 0, 0
}

// next removes and returns the next event in the queue.
// It returns nil if the queue is empty.
func (q *queue) next() Event {
	if q.n == 0 {
		return nil
	}
	ev := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return ev
}

// send adds an event to the end of the queue.
func (q *queue) send(ev Event) {
	if q.n == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.n)%len(q.buf)] = ev
	q.n++
}

// grow doubles the capacity, moving the events to the start of the ring.
func (q *queue) grow() {
	nb := make([]Event, max(2*len(q.buf), minQueue))
	for i := range q.n {
		nb[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf, q.head = nb, 0
}

// size returns the number of queued events.
func (q *queue) size() int {
	return q.n
}
