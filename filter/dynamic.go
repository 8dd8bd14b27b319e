package filter

import (
	"fmt"
	"reflect"
)

// Args is a dynamically typed argument list.
type Args []any

var (
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
	resultType = reflect.TypeOf(Result{})
	futureType = reflect.TypeOf(Future(nil))
)

// Dynamic adapts an arbitrary Go function into a Func over Args. Supported
// return types are bool, (bool, error), Result and Future.
//
// Arguments are checked before every call: a wrong count, or a value not
// assignable to its parameter, fails with an error wrapping
// ErrSignatureMismatch and the function is not invoked.
func Dynamic(fn any) (Func[Args], error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Func[Args]{}, fmt.Errorf("%w: %T", ErrNotPredicate, fn)
	}

	t := v.Type()
	convert, err := resultConverter(t)
	if err != nil {
		return Func[Args]{}, err
	}

	return Func[Args]{
		body: func(args Args) Result {
			in, err := callArgs(t, args)
			if err != nil {
				return Fail(err)
			}
			return convert(v.Call(in))
		},
		origin: fn,
	}, nil
}

// MustDynamic is like Dynamic but panics on error.
func MustDynamic(fn any) Func[Args] {
	f, err := Dynamic(fn)
	if err != nil {
		panic(err)
	}
	return f
}

func resultConverter(t reflect.Type) (func([]reflect.Value) Result, error) {
	switch {
	case t.NumOut() == 1 && t.Out(0).Kind() == reflect.Bool:
		return func(out []reflect.Value) Result {
			return Immediate(out[0].Bool())
		}, nil

	case t.NumOut() == 1 && t.Out(0) == resultType:
		return func(out []reflect.Value) Result {
			return out[0].Interface().(Result)
		}, nil

	case t.NumOut() == 1 && t.Out(0) == futureType:
		return func(out []reflect.Value) Result {
			return Suspended(out[0].Interface().(Future))
		}, nil

	case t.NumOut() == 2 && t.Out(0).Kind() == reflect.Bool && t.Out(1) == errorType:
		return func(out []reflect.Value) Result {
			if err, _ := out[1].Interface().(error); err != nil {
				return Fail(err)
			}
			return Immediate(out[0].Bool())
		}, nil
	}

	return nil, fmt.Errorf("%w: unsupported signature %s", ErrNotPredicate, t)
}

func callArgs(t reflect.Type, args Args) ([]reflect.Value, error) {
	if t.IsVariadic() {
		if len(args) < t.NumIn()-1 {
			return nil, fmt.Errorf("%w: %s wants at least %d arguments, got %d", ErrSignatureMismatch, t, t.NumIn()-1, len(args))
		}
	} else if len(args) != t.NumIn() {
		return nil, fmt.Errorf("%w: %s wants %d arguments, got %d", ErrSignatureMismatch, t, t.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := paramType(t, i)

		if arg == nil {
			if !nillable(want) {
				return nil, fmt.Errorf("%w: argument %d is nil, want %s", ErrSignatureMismatch, i, want)
			}
			in[i] = reflect.Zero(want)
			continue
		}

		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(want) {
			return nil, fmt.Errorf("%w: argument %d is %s, want %s", ErrSignatureMismatch, i, v.Type(), want)
		}
		in[i] = v
	}

	return in, nil
}

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}
