package filter

import (
	"context"
	"strconv"
)

// Mode tells whether a Result carries its boolean already or only after a wait.
type Mode uint8

const (
	ModeImmediate Mode = iota
	ModeSuspended
)

var modeNames = map[Mode]string{
	ModeImmediate: "immediate",
	ModeSuspended: "suspended",
}

// String returns the string representation of a mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Future is a suspended boolean computation. It runs when awaited and is not
// memoized: awaiting the same Future twice runs it twice, unless it was built by Start.
type Future func(ctx context.Context) (bool, error)

// Resolved returns a Future that yields v without waiting.
func Resolved(v bool) Future {
	return func(context.Context) (bool, error) {
		return v, nil
	}
}

// Rejected returns a Future that fails with err.
func Rejected(err error) Future {
	return func(context.Context) (bool, error) {
		return false, err
	}
}

// Start runs fn on its own goroutine right away and returns a Future that
// waits for its outcome. The outcome is computed once and may be awaited any
// number of times. Waiting honours the awaiting context, but fn itself is only
// cancelled through ctx.
func Start(ctx context.Context, fn func(ctx context.Context) (bool, error)) Future {
	if fn == nil {
		return Rejected(ErrNilFunc)
	}

	done := make(chan struct{})
	var (
		value bool
		err   error
	)

	go func() {
		defer close(done)
		value, err = fn(ctx)
	}()

	return func(waitCtx context.Context) (bool, error) {
		select {
		case <-done:
			return value, err
		case <-waitCtx.Done():
			return false, waitCtx.Err()
		}
	}
}

// Result is what evaluating a filter produces: either an immediate boolean
// (possibly failed) or a suspended Future.
type Result struct {
	value  bool
	err    error
	future Future
}

// Immediate returns a result whose value is available right away.
func Immediate(v bool) Result {
	return Result{value: v}
}

// Suspended returns a result whose value is available only after awaiting f.
func Suspended(f Future) Result {
	if f == nil {
		return Fail(ErrNilFunc)
	}
	return Result{future: f}
}

// Fail returns an immediate result carrying err.
func Fail(err error) Result {
	return Result{err: err}
}

// Mode classifies the result by its own runtime nature.
func (r Result) Mode() Mode {
	if r.future != nil {
		return ModeSuspended
	}
	return ModeImmediate
}

// IsSuspended reports whether the result must be awaited.
func (r Result) IsSuspended() bool {
	return r.future != nil
}

// Value returns an immediate value. Suspended results return ErrSuspended.
func (r Result) Value() (bool, error) {
	if r.future != nil {
		return false, ErrSuspended
	}
	return r.value, r.err
}

// Await resolves the result in either mode.
func (r Result) Await(ctx context.Context) (bool, error) {
	if r.future == nil {
		return r.value, r.err
	}
	return r.future(ctx)
}

// Future returns the result as a Future, wrapping immediate values.
func (r Result) Future() Future {
	if r.future != nil {
		return r.future
	}
	if r.err != nil {
		return Rejected(r.err)
	}
	return Resolved(r.value)
}

func (r Result) String() string {
	switch {
	case r.future != nil:
		return "<suspended>"
	case r.err != nil:
		return "<error: " + r.err.Error() + ">"
	default:
		return strconv.FormatBool(r.value)
	}
}
