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

import "context"

// Promise is a read-only handle to a value of type T that becomes available
// at most once.
//
// A Promise starts unresolved and is resolved exactly once by its writer
// side (see Deferred), with either a value or a failure, never both.
// Resolution is monotonic: once resolved, the outcome never changes.
//
// All methods are safe for concurrent use. Only the accessors taking a
// context may block; every other operation returns immediately.
type Promise[T any] interface {
	// IsDone reports whether this promise has been resolved, either with a
	// value or with a failure. It never blocks.
	IsDone() bool

	// Value returns the value of this promise.
	//
	// If the promise is resolved with a value, it returns immediately.
	// If the promise is resolved with a failure, it returns the zero value
	// and an *InvocationError whose Cause is that failure.
	// If the promise is unresolved, it blocks until resolution, or until ctx
	// is cancelled, in which case it returns an ErrWaitCancelled error
	// wrapping ctx.Err() and the promise is left exactly as it was.
	Value(ctx context.Context) (T, error)

	// Err returns the failure of this promise, blocking until it's resolved.
	//
	// Unlike Value, a failure outcome is not an error here: failure is the
	// promise's failure, or nil if the promise was resolved with a value.
	// The err return reports only the wait itself, and is non-nil exactly
	// when ctx was cancelled before resolution (an ErrWaitCancelled error
	// wrapping ctx.Err()).
	Err(ctx context.Context) (failure error, err error)

	// OnResolve registers a callback to run once this promise is resolved,
	// with either a value or a failure.
	//
	// It may be called at any time, before or after resolution; a callback
	// registered on an already resolved promise still runs. Resolving the
	// promise happens-before any registered callback runs: inside a
	// callback, IsDone reports true and the accessors never block.
	//
	// The callback may run on the resolving goroutine, on a registering
	// goroutine, or on whichever goroutine happens to drain the pending
	// callbacks, so it must be safe to run anywhere. No order is guaranteed
	// among callbacks registered on the same promise. A callback that
	// panics is contained and reported to the handler set with
	// SetUncaughtPanicHandler; it never affects this promise, its result,
	// or the remaining callbacks.
	//
	// It panics with ErrNilCallback if callback is nil.
	OnResolve(callback func())

	// Then chains a new promise to this promise, with the same value type.
	// It behaves exactly like the package-level Then; see its documentation
	// for the chaining semantics.
	Then(success Success[T, T], failure Failure[T]) Promise[T]
}

// Success is the success handler of a chain call. It runs after the source
// promise is resolved with a value, receiving the resolved source so it can
// read the value without blocking.
//
// Its return drives the downstream promise: returning a non-nil error fails
// it with that error; returning a nil Promise resolves it with the zero
// value of R; returning a non-nil Promise defers it to that promise's own
// outcome (the chain flattens).
type Success[T, R any] func(resolved Promise[T]) (Promise[R], error)

// Failure is the failure handler of a chain call. It runs, for its side
// effect only, after the source promise is resolved with a failure,
// receiving the resolved source so it can read the failure without blocking.
//
// Returning a non-nil error replaces the source's failure as the failure of
// the downstream promise; returning nil keeps the original.
type Failure[T any] func(failed Promise[T]) error
