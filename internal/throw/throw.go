// Package throw implements a panic/recover error boundary: Throw panics
// with a wrapped error and Recover turns it back into the original cause.
// The public Triangulate entry point installs Recover around the pipeline;
// the pipeline stages themselves (Delaunay legalization, Sloan tunneling,
// refinement) return a Status directly and do not call Throw.
package throw

import "github.com/pkg/errors"

// statusError marks a panic value as one thrown by Throw, as opposed to a
// genuine bug; only a statusError is recovered by Recover, anything else
// is re-panicked.
type statusError struct {
	cause error
}

func (e statusError) Error() string { return e.cause.Error() }

// Cause exposes the wrapped error for github.com/pkg/errors.Cause.
func (e statusError) Cause() error { return e.cause }

// Throw panics with cause (normally a cdt.Status), stamped with a stack
// trace via pkg/errors so a recovered failure still carries where it fired.
func Throw(cause error) {
	panic(statusError{cause: errors.WithStack(cause)})
}

// Recover converts a panic value produced by Throw back into the original
// cause. If r is nil, ok is false. If r is a non-statusError panic, it is
// re-panicked, since that indicates a genuine bug rather than a controlled
// abort.
func Recover(r interface{}) (cause error, ok bool) {
	if r == nil {
		return nil, false
	}
	if se, isStatusError := r.(statusError); isStatusError {
		return errors.Cause(se.cause), true
	}
	panic(r)
}
