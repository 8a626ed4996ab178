package promise

import (
	"fmt"

	"github.com/brickingsoft/errors"
)

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "promise"
)

var (
	// ErrAlreadyResolved is reported to a resolver that arrives after the
	// promise has already been resolved. It's returned to that caller only;
	// readers of the promise never see it.
	ErrAlreadyResolved = errors.Define("promise already resolved", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))

	// ErrNilCallback is the panic value used when a nil callback is registered.
	ErrNilCallback = errors.Define("callback is nil", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))

	// ErrNilFailure is the panic value used when a promise is failed with a
	// nil error.
	ErrNilFailure = errors.Define("failure is nil", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))

	// ErrWaitCancelled is returned by the blocking accessors when the passed
	// context is cancelled while waiting. The promise itself is untouched:
	// it stays unresolved and other waiters are unaffected.
	ErrWaitCancelled = errors.Define("wait cancelled", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))

	// ErrPromiseCancelled is a pre-defined failure kind that producers can
	// fail a promise with to mark it as cancelled. The library never resolves
	// a promise with it on its own.
	ErrPromiseCancelled = errors.Define("promise cancelled", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
)

// IsAlreadyResolved reports whether err is an ErrAlreadyResolved error.
func IsAlreadyResolved(err error) bool {
	return errors.Is(err, ErrAlreadyResolved)
}

// IsWaitCancelled reports whether err is an ErrWaitCancelled error.
func IsWaitCancelled(err error) bool {
	return errors.Is(err, ErrWaitCancelled)
}

// IsPromiseCancelled reports whether err is an ErrPromiseCancelled error.
func IsPromiseCancelled(err error) bool {
	return errors.Is(err, ErrPromiseCancelled)
}

// InvocationError is returned by the value accessor of a promise that was
// resolved with a failure. The original failure is the Cause.
type InvocationError struct {
	Cause error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("promise resolved with failure: %s", e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// AsInvocationError extracts an *InvocationError from err's tree, if there is one.
func AsInvocationError(err error) (*InvocationError, bool) {
	var v *InvocationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// PanicError wraps a value recovered from a panicking callback or handler.
// A handler that panics during chaining fails the downstream promise with a
// *PanicError; a plain registered callback that panics is only reported to
// the uncaught-panic handler.
type PanicError struct {
	v any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.v)
}

// V returns the recovered panic value.
func (e *PanicError) V() any {
	return e.v
}

func newPanicError(v any) *PanicError {
	return &PanicError{v: v}
}

// AsPanicError extracts a *PanicError from err's tree, if there is one.
func AsPanicError(err error) (*PanicError, bool) {
	var v *PanicError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
