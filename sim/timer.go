/*
   gpsim - Cycle-delta timer event list.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package sim

import "github.com/rcornwell/gpsim/core"

// timerEvent delivers code to warp once the delta cycle list advances
// time cycles past it. The list is a time-ordered delta chain: each event's time
// is relative to the one before it, keyed on the warp and interrupt
// code it will deliver into the SIMT core.
type timerEvent struct {
	time int
	warp *core.Warp
	code int
	prev *timerEvent
	next *timerEvent
}

// timerList is a per-scheduler queue of pending warp interrupts, used
// to model a periodic timer tick or a one-shot watchdog deadline
// without needing a wall-clock goroutine per warp.
type timerList struct {
	head *timerEvent
	tail *timerEvent
}

// schedule arms an interrupt of code on warp, cycles ticks from now.
func (el *timerList) schedule(warp *core.Warp, cycles int, code int) {
	if cycles <= 0 {
		warp.Interrupt(code)
		return
	}

	ev := &timerEvent{time: cycles, warp: warp, code: code}

	cur := el.head
	if cur == nil {
		el.head = ev
		el.tail = ev
		return
	}

	for cur != nil {
		if ev.time <= cur.time {
			cur.time -= ev.time
			ev.prev = cur.prev
			ev.next = cur
			cur.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				el.head = ev
			}
			return
		}
		ev.time -= cur.time
		cur = cur.next
	}

	ev.prev = el.tail
	el.tail.next = ev
	el.tail = ev
}

// cancel removes every pending event for warp.
func (el *timerList) cancel(warp *core.Warp) {
	cur := el.head
	for cur != nil {
		nxt := cur.next
		if cur.warp == warp {
			if nxt != nil {
				nxt.time += cur.time
			}
			if cur.prev != nil {
				cur.prev.next = nxt
			} else {
				el.head = nxt
			}
			if nxt != nil {
				nxt.prev = cur.prev
			} else {
				el.tail = cur.prev
			}
		}
		cur = nxt
	}
}

// advance moves the queue forward by t cycles, delivering every
// interrupt that falls due.
func (el *timerList) advance(t int) {
	cur := el.head
	if cur == nil {
		return
	}
	cur.time -= t
	for cur != nil && cur.time <= 0 {
		cur.warp.Interrupt(cur.code)
		el.head = cur.next
		if el.head != nil {
			el.head.prev = nil
		} else {
			el.tail = nil
		}
		cur = el.head
	}
}
