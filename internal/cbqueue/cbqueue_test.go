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

package cbqueue

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueDrainEmpty(t *testing.T) {
	q := new(Queue)

	// must return immediately without invoking anything
	q.Drain(func(v any) {
		t.Fatalf("unexpected panic report: %v", v)
	})
}

func TestQueueRunsEachCallbackOnce(t *testing.T) {
	const n = 100

	q := new(Queue)
	counts := make([]atomic.Int32, n)

	for i := 0; i < n; i++ {
		i := i
		q.Push(func() { counts[i].Add(1) })
	}
	q.Drain(nil)

	for i := range counts {
		assert.Equal(t, int32(1), counts[i].Load(), "callback %d", i)
	}
}

func TestQueueConcurrentPushAndDrain(t *testing.T) {
	const (
		pushers   = 8
		drainers  = 4
		perPusher = 250
		total     = pushers * perPusher
	)

	q := new(Queue)
	var ran atomic.Int32
	var wg sync.WaitGroup

	wg.Add(pushers)
	for i := 0; i < pushers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perPusher; j++ {
				q.Push(func() { ran.Add(1) })
				q.Drain(nil)
			}
		}()
	}

	wg.Add(drainers)
	for i := 0; i < drainers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perPusher; j++ {
				q.Drain(nil)
			}
		}()
	}

	wg.Wait()
	q.Drain(nil)

	assert.Equal(t, int32(total), ran.Load())
}

func TestQueuePanicContainment(t *testing.T) {
	q := new(Queue)
	var ran, reported atomic.Int32

	q.Push(func() { ran.Add(1) })
	q.Push(func() { panic("bad callback") })
	q.Push(func() { ran.Add(1) })

	q.Drain(func(v any) {
		reported.Add(1)
		assert.Equal(t, "bad callback", v)
	})

	// the panic is recorded and the drain continues past it
	assert.Equal(t, int32(1), reported.Load())
	assert.Equal(t, int32(2), ran.Load())
}

func TestQueuePanicWithNilHandler(t *testing.T) {
	q := new(Queue)
	var ran atomic.Int32

	q.Push(func() { panic("ignored") })
	q.Push(func() { ran.Add(1) })

	assert.NotPanics(t, func() { q.Drain(nil) })
	assert.Equal(t, int32(1), ran.Load())
}
