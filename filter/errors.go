package filter

import "errors"

var (
	// ErrSuspended is returned by Result.Value when the result is only available after Await.
	ErrSuspended = errors.New("filter: result is suspended")

	// ErrSignatureMismatch is returned when call arguments do not match a dynamic function's parameters.
	ErrSignatureMismatch = errors.New("filter: signature mismatch")

	// ErrNotPredicate is returned when a value cannot be adapted into a predicate function.
	ErrNotPredicate = errors.New("filter: not a predicate function")

	// ErrNilFunc is returned when a zero Func or a nil Future is invoked.
	ErrNilFunc = errors.New("filter: nil function")

	// ErrNilFilter is returned when a nil Filter is evaluated.
	ErrNilFilter = errors.New("filter: nil filter")
)
