// Copyright 2024 the resolvd authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cbqueue implements the pending-callback queue of a promise.
//
// The queue is unbounded and safe for concurrent use. Any number of
// goroutines may push, and any number may drain at the same time; the pop is
// the sole dispatch point of a callback, so each pushed callback runs exactly
// once no matter how many drainers race over it. Which drainer runs a given
// callback, and the relative order of independently pushed callbacks, is
// unspecified.
package cbqueue

import "sync"

// Queue is a multi-producer queue of pending zero-argument callbacks.
//
// The zero value is empty and ready for use.
type Queue struct {
	mu  sync.Mutex
	cbs []func()
}

// Push appends a callback to the queue.
// The queue owns the callback until some drainer pops and runs it.
func (q *Queue) Push(cb func()) {
	q.mu.Lock()
	q.cbs = append(q.cbs, cb)
	q.mu.Unlock()
}

// pop removes and returns the oldest callback, if any.
func (q *Queue) pop() (cb func(), ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.cbs) == 0 {
		return nil, false
	}
	cb = q.cbs[0]
	q.cbs[0] = nil
	q.cbs = q.cbs[1:]
	return cb, true
}

// Drain pops and runs callbacks, one at a time, until the queue is observed
// empty. The callbacks run outside the queue's lock, so they may push further
// callbacks, or trigger drains of other queues, freely.
//
// A callback that panics is contained: the recovered value is handed to
// onPanic and the drain moves on to the next callback. A misbehaving
// callback can't corrupt the queue or starve the callbacks behind it.
func (q *Queue) Drain(onPanic func(v any)) {
	for {
		cb, ok := q.pop()
		if !ok {
			return
		}
		run(cb, onPanic)
	}
}

func run(cb func(), onPanic func(v any)) {
	defer func() {
		if v := recover(); v != nil {
			if onPanic != nil {
				onPanic(v)
			}
		}
	}()
	cb()
}
