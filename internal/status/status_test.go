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

package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusZeroValue(t *testing.T) {
	s := new(Status)

	assert.Equal(t, Unresolved, s.Load())
	assert.False(t, s.IsResolved())
}

func TestStatusTransitions(t *testing.T) {
	s := new(Status)

	assert.True(t, s.TryResolving())
	assert.Equal(t, Resolving, s.Load())
	assert.False(t, s.IsResolved())

	s.SetResolved()
	assert.Equal(t, Resolved, s.Load())
	assert.True(t, s.IsResolved())

	// no going back
	assert.False(t, s.TryResolving())
	assert.True(t, s.IsResolved())
}

func TestStatusTryResolvingOnce(t *testing.T) {
	s := new(Status)

	assert.True(t, s.TryResolving())
	assert.False(t, s.TryResolving())
	assert.False(t, s.TryResolving())
}

func TestStatusConcurrentResolvers(t *testing.T) {
	const resolvers = 64

	s := new(Status)
	wins := make(chan struct{}, resolvers)

	var wg sync.WaitGroup
	wg.Add(resolvers)
	for i := 0; i < resolvers; i++ {
		go func() {
			defer wg.Done()
			if s.TryResolving() {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	assert.Equal(t, 1, won)
}
