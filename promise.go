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

package promise

import (
	"context"

	"github.com/brickingsoft/errors"
	"github.com/resolvd/promise/internal/cbqueue"
	"github.com/resolvd/promise/internal/cell"
)

// genericPromise is the default implementation of the Promise interface.
//
// It composes the single-assignment result cell with the pending-callback
// queue. Both own their synchronization, so the promise itself carries no
// lock; every shared state lives in one of the two.
type genericPromise[T any] struct {
	// holds the outcome of the promise and the resolution state.
	//
	// resolved exactly once, through resolve, by the writer side.
	cell *cell.Cell[T]

	// the callbacks pending resolution.
	// popping a callback out of the queue is its sole dispatch point, so a
	// callback runs exactly once even when the resolver and late registrars
	// drain concurrently.
	callbacks cbqueue.Queue
}

func newPromise[T any]() *genericPromise[T] {
	return &genericPromise[T]{cell: cell.New[T]()}
}

func newResolvedPromise[T any](value T, failure error) *genericPromise[T] {
	return &genericPromise[T]{cell: cell.NewResolved(value, failure)}
}

// resolve is the writer-side entry point. It's reachable only through a
// Deferred or through an internal chain stage, never through the Promise
// interface.
//
// Exactly one call succeeds; later calls get an ErrAlreadyResolved error and
// their outcome is discarded without ever becoming observable. Writing the
// outcome happens-before the resolved state is published, which in turn
// happens-before any pending callback runs.
func (p *genericPromise[T]) resolve(value T, failure error) error {
	if !p.cell.Resolve(value, failure) {
		return errors.From(ErrAlreadyResolved)
	}
	p.notify()
	return nil
}

// notify drains the pending callbacks if the promise is resolved.
//
// Multiple goroutines may be in here at once, one coming from resolve and
// others from OnResolve registrations racing with it. The queue guarantees
// each callback still runs exactly once; the order across drainers is
// unspecified.
func (p *genericPromise[T]) notify() {
	if !p.cell.Done() {
		return
	}
	p.callbacks.Drain(reportUncaughtPanic)
}

func (p *genericPromise[T]) IsDone() bool {
	return p.cell.Done()
}

func (p *genericPromise[T]) Value(ctx context.Context) (T, error) {
	if err := p.cell.Wait(ctx); err != nil {
		var zero T
		return zero, errors.From(ErrWaitCancelled, errors.WithWrap(err))
	}

	value, failure := p.cell.Result()
	if failure != nil {
		var zero T
		return zero, &InvocationError{Cause: failure}
	}
	return value, nil
}

func (p *genericPromise[T]) Err(ctx context.Context) (failure error, err error) {
	if err := p.cell.Wait(ctx); err != nil {
		return nil, errors.From(ErrWaitCancelled, errors.WithWrap(err))
	}

	_, failure = p.cell.Result()
	return failure, nil
}

func (p *genericPromise[T]) OnResolve(callback func()) {
	if callback == nil {
		panic(ErrNilCallback)
	}

	// always enqueue first, then attempt a drain. if the promise was
	// resolved before the push, the drain below runs the callback; if it
	// resolves after, the resolver's own drain finds it. either way a
	// registration is never lost.
	p.callbacks.Push(callback)
	p.notify()
}

func (p *genericPromise[T]) Then(success Success[T, T], failure Failure[T]) Promise[T] {
	return Then[T, T](p, success, failure)
}
