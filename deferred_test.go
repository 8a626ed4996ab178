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
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredPromiseIdentity(t *testing.T) {
	d := NewDeferred[int]()

	assert.Same(t, d.Promise(), d.Promise())
}

func TestDeferredResolve(t *testing.T) {
	d := NewDeferred[int]()

	require.NoError(t, d.Resolve(1))

	v, err := d.Promise().Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDeferredFail(t *testing.T) {
	d := NewDeferred[int]()

	require.NoError(t, d.Fail(errBoom))

	failure, err := d.Promise().Err(context.Background())
	require.NoError(t, err)
	assert.Equal(t, errBoom, failure)
}

func TestDeferredFailNil(t *testing.T) {
	d := NewDeferred[int]()

	defer func() {
		v := recover()
		require.NotNil(t, v, "expected a panic")
		err, ok := v.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrNilFailure))
	}()
	_ = d.Fail(nil)
}

func TestFailedNil(t *testing.T) {
	assert.Panics(t, func() {
		_ = Failed[int](nil)
	})
}

func TestDeferredConcurrentResolvers(t *testing.T) {
	const resolvers = 32

	d := NewDeferred[int]()
	var succeeded atomic.Int32

	var wg sync.WaitGroup
	wg.Add(resolvers)
	for i := 0; i < resolvers; i++ {
		go func(i int) {
			defer wg.Done()
			if err := d.Resolve(i); err == nil {
				succeeded.Add(1)
			} else if !IsAlreadyResolved(err) {
				t.Errorf("unexpected resolve error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.True(t, d.Promise().IsDone())
}

func TestResolvedConstructor(t *testing.T) {
	p := Resolved(4)

	assert.True(t, p.IsDone())

	v, err := p.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestFailedConstructor(t *testing.T) {
	p := Failed[int](errBoom)

	assert.True(t, p.IsDone())

	_, err := p.Value(context.Background())
	_, ok := AsInvocationError(err)
	assert.True(t, ok)
}

func TestDeferredCancelledKind(t *testing.T) {
	d := NewDeferred[int]()

	require.NoError(t, d.Fail(ErrPromiseCancelled))

	failure, err := d.Promise().Err(context.Background())
	require.NoError(t, err)
	assert.True(t, IsPromiseCancelled(failure))
}
