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

// Package cell implements the single-assignment result cell behind a promise.
//
// A Cell holds the eventual outcome of a promise, a value or a failure, and
// the resolution state tracking it. It owns its synchronization: writers go
// through Resolve, readers through Done, Wait and Result, and no external
// locking is needed.
package cell

import (
	"context"

	"github.com/resolvd/promise/internal/status"
)

// Cell is a concurrent-safe container that is written exactly once and read
// any number of times.
//
// The zero value is not usable; use New or NewResolved.
type Cell[T any] struct {
	// closed when this cell is resolved.
	// it has one writer, the resolver that wins st.TryResolving, and any
	// number of readers blocked in Wait.
	resolved chan struct{}

	// the outcome slots. written once, between TryResolving and SetResolved.
	//
	// don't read them unless st.IsResolved() is known to be true.
	value   T
	failure error

	st status.Status
}

// New returns an unresolved cell.
func New[T any]() *Cell[T] {
	return &Cell[T]{resolved: make(chan struct{})}
}

// NewResolved returns a cell that is already resolved with the given outcome.
// Resolve on the returned cell always reports false.
func NewResolved[T any](value T, failure error) *Cell[T] {
	c := &Cell[T]{
		resolved: make(chan struct{}),
		value:    value,
		failure:  failure,
	}
	c.st.TryResolving()
	c.st.SetResolved()
	close(c.resolved)
	return c
}

// Resolve writes the outcome of the cell and publishes it.
// It returns true for exactly one caller; later (or concurrently losing)
// callers get false and their outcome is discarded unread.
//
// The slot writes precede the state's release-store and the channel close,
// so any reader that observes Done()==true, or returns from Wait, also
// observes the outcome.
func (c *Cell[T]) Resolve(value T, failure error) bool {
	if !c.st.TryResolving() {
		return false
	}
	c.value = value
	c.failure = failure
	c.st.SetResolved()
	close(c.resolved)
	return true
}

// Done reports whether the cell is resolved, without blocking.
func (c *Cell[T]) Done() bool {
	return c.st.IsResolved()
}

// Wait blocks the calling goroutine until the cell is resolved, or until ctx
// is cancelled, whichever comes first.
//
// On cancellation it returns ctx.Err() and leaves the cell untouched; other
// waiters are unaffected. A nil return means the cell is resolved and Result
// can be called.
func (c *Cell[T]) Wait(ctx context.Context) error {
	if c.st.IsResolved() {
		return nil
	}

	select {
	case <-c.resolved:
		return nil
	case <-ctx.Done():
		// the cell may have been resolved while the cancellation was being
		// delivered. prefer reporting the resolution.
		select {
		case <-c.resolved:
			return nil
		default:
		}
		return ctx.Err()
	}
}

// Result returns the outcome slots.
//
// It must be called only after Done returned true or Wait returned nil.
func (c *Cell[T]) Result() (value T, failure error) {
	return c.value, c.failure
}
