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

// Deferred is the writer side of a promise: the unique capability to resolve
// it. The readers hold the associated Promise, obtained from the Promise
// method, and can never resolve it themselves.
//
// A Deferred is safe for concurrent use, but only one of its Resolve and
// Fail calls ever succeeds; the rest report ErrAlreadyResolved.
type Deferred[T any] struct {
	p *genericPromise[T]
}

// NewDeferred returns a Deferred paired with a new unresolved promise.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{p: newPromise[T]()}
}

// Promise returns the read-only promise associated with this Deferred.
// It returns the same promise on every call.
func (d *Deferred[T]) Promise() Promise[T] {
	return d.p
}

// Resolve resolves the associated promise with value.
//
// If the promise was already resolved, it returns an ErrAlreadyResolved
// error and value is discarded without becoming observable.
func (d *Deferred[T]) Resolve(value T) error {
	return d.p.resolve(value, nil)
}

// Fail resolves the associated promise with the given failure.
//
// It panics with ErrNilFailure if failure is nil. If the promise was already
// resolved, it returns an ErrAlreadyResolved error.
func (d *Deferred[T]) Fail(failure error) error {
	if failure == nil {
		panic(ErrNilFailure)
	}
	var zero T
	return d.p.resolve(zero, failure)
}

// Resolved returns a promise that is already resolved with value.
func Resolved[T any](value T) Promise[T] {
	return newResolvedPromise(value, nil)
}

// Failed returns a promise that is already resolved with the given failure.
// It panics with ErrNilFailure if failure is nil.
func Failed[T any](failure error) Promise[T] {
	if failure == nil {
		panic(ErrNilFailure)
	}
	var zero T
	return newResolvedPromise(zero, failure)
}
