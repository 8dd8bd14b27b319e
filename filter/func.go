package filter

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Func is a predicate body over arguments of type A, paired with an optional
// display name. The name only affects rendering.
type Func[A any] struct {
	name   string
	body   func(A) Result
	origin any
}

// Wrap attaches a display name to fn.
func Wrap[A any](fn func(A) Result, name string) Func[A] {
	if fn == nil {
		return Func[A]{name: name}
	}
	return Func[A]{name: name, body: fn, origin: fn}
}

// Sync adapts a plain boolean function. Its results are always immediate.
func Sync[A any](fn func(A) bool) Func[A] {
	if fn == nil {
		return Func[A]{}
	}
	return Func[A]{
		body: func(args A) Result {
			return Immediate(fn(args))
		},
		origin: fn,
	}
}

// Fallible adapts a boolean function that may fail. Its results are always immediate.
func Fallible[A any](fn func(A) (bool, error)) Func[A] {
	if fn == nil {
		return Func[A]{}
	}
	return Func[A]{
		body: func(args A) Result {
			ok, err := fn(args)
			if err != nil {
				return Fail(err)
			}
			return Immediate(ok)
		},
		origin: fn,
	}
}

// Async adapts a blocking function. Calling the Func does not run fn; it
// returns a suspended result that runs fn when awaited.
func Async[A any](fn func(ctx context.Context, args A) (bool, error)) Func[A] {
	if fn == nil {
		return Func[A]{}
	}
	return Func[A]{
		body: func(args A) Result {
			return Suspended(func(ctx context.Context) (bool, error) {
				return fn(ctx, args)
			})
		},
		origin: fn,
	}
}

// Named returns a copy of f with a new display name.
func (f Func[A]) Named(name string) Func[A] {
	f.name = name
	return f
}

// Name returns the attached display name, or "" when none was attached.
func (f Func[A]) Name() string {
	return f.name
}

// IsZero reports whether f has no body.
func (f Func[A]) IsZero() bool {
	return f.body == nil
}

// Call invokes the body and returns its result verbatim.
func (f Func[A]) Call(args A) Result {
	if f.body == nil {
		return Fail(ErrNilFunc)
	}
	return f.body(args)
}

func (f Func[A]) String() string {
	return NameOrRepr(f)
}

// NameOrRepr returns the display name of f, or a fallback derived from the
// underlying Go function. It never calls f.
func NameOrRepr[A any](f Func[A]) string {
	if f.name != "" {
		return f.name
	}
	return funcRepr(f.origin)
}

// funcRepr names a Go function the way its declaration does: "nonzero" for a
// top-level function, "TestAnd.func1" for a closure.
func funcRepr(fn any) string {
	if fn == nil {
		return "<nil>"
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Sprintf("<%T>", fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return fmt.Sprintf("<func %#x>", v.Pointer())
	}

	name := rf.Name()
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	// method values carry a "-fm" suffix
	return strings.TrimSuffix(name, "-fm")
}
