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

// Package status implements the resolution state of a promise's result cell.
//
// The state moves forward-only, through the following values:
//
//	Unresolved -> Resolving -> Resolved
//
// Unresolved means no resolver has arrived yet. Resolving means a resolver
// won the right to write the result and is doing so now. Resolved means the
// result is written and published.
//
// The result slots guarded by a Status must be written only between a
// successful TryResolving call and the SetResolved call, and must be read
// only after Resolved has been observed. SetResolved is an atomic store, so
// the slot writes happen-before any load that observes Resolved.
package status

import "sync/atomic"

// the resolution states, in transition order.
const (
	Unresolved uint32 = iota
	Resolving
	Resolved
)

// Status holds the resolution state of a single result cell.
// It's read and updated atomically.
//
// The zero value is Unresolved and ready for use.
type Status struct {
	v atomic.Uint32
}

// Load returns the current state value.
func (s *Status) Load() uint32 {
	return s.v.Load()
}

// IsResolved reports whether the state is Resolved.
//
// Once it returns true, it returns true forever, and the result slots
// guarded by this Status are safe to read.
func (s *Status) IsResolved() bool {
	return s.v.Load() == Resolved
}

// TryResolving attempts the Unresolved -> Resolving transition.
// It returns true for exactly one caller over the lifetime of the Status.
// The losing callers must not touch the result slots.
func (s *Status) TryResolving() bool {
	return s.v.CompareAndSwap(Unresolved, Resolving)
}

// SetResolved completes the Resolving -> Resolved transition, publishing
// the result slots written since TryResolving returned true.
// It must be called only by the caller that won TryResolving.
func (s *Status) SetResolved() {
	s.v.Store(Resolved)
}
