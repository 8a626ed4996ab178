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

// Package promise provides a thread-safe, single-assignment asynchronous
// result container, with blocking retrieval, non-blocking callback
// registration, and chaining into derived promises.
//
// A Promise is a read-only handle to a value that becomes available at most
// once. The matching writer side is a Deferred, which holds the unique
// capability to resolve the promise, exactly once, with either a value or a
// failure. Already-resolved promises are available directly through Resolved
// and Failed.
//
//	d := promise.NewDeferred[int]()
//	p := d.Promise()
//	go func() { _ = d.Resolve(42) }()
//	v, err := p.Value(ctx) // blocks until the Resolve call above
//
// Readers can block for the outcome (Value, Err), poll it (IsDone), or
// register callbacks against it (OnResolve). Resolving a promise
// happens-before any registered callback runs, so inside a callback the
// accessors never block. Beyond that, nothing is guaranteed about callbacks:
// not which goroutine runs them, and not their order relative to each other.
//
// Then chains a new promise to an existing one, optionally transformed by a
// success or failure handler:
//
//	doubled := promise.Then(p, func(resolved promise.Promise[int]) (promise.Promise[int], error) {
//		v, _ := resolved.Value(ctx)
//		return promise.Resolved(v * 2), nil
//	}, nil)
//
// A success handler returning an inner promise makes the chain flatten: the
// downstream promise resolves with the inner promise's eventual outcome, not
// with the inner promise as a value. Failures propagate through chains on
// their own; values don't, a success handler has to forward them explicitly.
//
// No promise depends on itself: promises and their chain links form a DAG of
// deferred computations, each resolution draining its own callback queue and
// possibly resolving promises downstream.
//
// The package spawns no goroutines and runs callbacks on whichever goroutine
// triggers or performs a drain; any executor policy is the caller's to
// layer on top.
package promise
