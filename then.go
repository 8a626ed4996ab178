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

// Then chains a new promise of type R to the source promise p.
//
// It returns the new, unresolved downstream promise immediately, whether or
// not p is resolved yet. The downstream promise is resolved after p is,
// according to p's outcome and the two handlers, either of which may be nil:
//
// If p is resolved with a failure, the failure handler (if any) runs for its
// side effect; an error it returns, or a panic it raises (as *PanicError),
// replaces the original failure. The downstream promise is then resolved
// with the resulting failure.
//
// If p is resolved with a value, the success handler (if any) runs. An error
// or panic fails the downstream promise immediately. A nil inner promise
// resolves it with the zero value of R. A non-nil inner promise defers it:
// the downstream promise adopts the inner promise's eventual outcome,
// verbatim, once that promise resolves. With no success handler, the
// downstream promise is resolved with the zero value of R; values are never
// forwarded without an explicit handler, only failures propagate on their
// own.
//
// Resolving p happens-before either handler runs, so the handlers can use
// p's accessors without blocking. Handlers may run on any goroutine and must
// be safe to run there.
func Then[T, R any](p Promise[T], success Success[T, R], failure Failure[T]) Promise[R] {
	chained := newPromise[R]()
	l := &link[T, R]{
		source:  p,
		chained: chained,
		success: success,
		failure: failure,
	}
	p.OnResolve(l.run)
	return chained
}

// link is the continuation registered on the source promise by a Then call.
// It runs exactly once, after the source is resolved, and is responsible for
// eventually resolving the chained promise, directly or through a second
// chain stage when the success handler returns an inner promise.
type link[T, R any] struct {
	source  Promise[T]
	chained *genericPromise[R]
	success Success[T, R]
	failure Failure[T]
}

func (l *link[T, R]) run() {
	// the source is resolved before this callback runs, so Err can't block.
	failure, _ := l.source.Err(context.Background())

	if failure != nil {
		if l.failure != nil {
			if err := invokeFailure(l.failure, l.source); err != nil {
				// an error raised by the handler replaces the original failure
				failure = err
			}
		}
		var zero R
		_ = l.chained.resolve(zero, failure)
		return
	}

	switch out := invokeSuccess(l.success, l.source); out.kind {
	case outcomeFailed:
		var zero R
		_ = l.chained.resolve(zero, out.err)
	case outcomeEmpty:
		var zero R
		_ = l.chained.resolve(zero, nil)
	case outcomeInner:
		// don't resolve yet: the chained promise adopts the inner promise's
		// outcome once it's known.
		c := &chainStage[R]{chained: l.chained, inner: out.inner}
		out.inner.OnResolve(c.run)
	}
}

// the possible outcomes of a success handler invocation.
type outcomeKind uint8

const (
	// no inner promise: resolve the chained promise with the zero value.
	outcomeEmpty outcomeKind = iota
	// the handler failed: fail the chained promise with err.
	outcomeFailed
	// an inner promise: the chained promise adopts its eventual outcome.
	outcomeInner
)

// outcome is the tagged result of a success handler invocation, so that the
// dispatch in link.run stays exhaustive instead of hiding behind nil checks.
type outcome[R any] struct {
	kind  outcomeKind
	err   error
	inner Promise[R]
}

func invokeSuccess[T, R any](success Success[T, R], source Promise[T]) (out outcome[R]) {
	if success == nil {
		return outcome[R]{kind: outcomeEmpty}
	}

	defer func() {
		if v := recover(); v != nil {
			out = outcome[R]{kind: outcomeFailed, err: newPanicError(v)}
		}
	}()

	inner, err := success(source)
	switch {
	case err != nil:
		return outcome[R]{kind: outcomeFailed, err: err}
	case inner == nil:
		return outcome[R]{kind: outcomeEmpty}
	default:
		return outcome[R]{kind: outcomeInner, inner: inner}
	}
}

func invokeFailure[T any](failure Failure[T], source Promise[T]) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()

	return failure(source)
}

// chainStage is the second-stage continuation registered on the inner
// promise returned by a success handler. Once the inner promise resolves,
// it copies that outcome, value or failure, into the chained promise.
type chainStage[R any] struct {
	chained *genericPromise[R]
	inner   Promise[R]
}

func (c *chainStage[R]) run() {
	// the inner promise is resolved before this callback runs.
	failure, _ := c.inner.Err(context.Background())
	if failure != nil {
		var zero R
		_ = c.chained.resolve(zero, failure)
		return
	}

	value, _ := c.inner.Value(context.Background())
	_ = c.chained.resolve(value, nil)
}
