package filter

import (
	"context"
	"strings"
)

// Lifter rewrites a leaf function, possibly changing its argument type. It
// must keep the meaning of the function as a predicate.
type Lifter[A, B any] func(Func[A]) Func[B]

// Lift returns a tree with the same shape and node types as f in which every
// leaf function fn is replaced by lifter(fn). f itself is left untouched.
func Lift[A, B any](f Filter[A], lifter Lifter[A, B]) Filter[B] {
	switch n := f.(type) {
	case *Predicate[A]:
		return &Predicate[B]{fn: lifter(n.fn)}
	case *Conjunction[A]:
		return &Conjunction[B]{
			left:  Lift(n.left, lifter),
			right: Lift(n.right, lifter),
		}
	case *Disjunction[A]:
		return &Disjunction[B]{
			left:      Lift(n.left, lifter),
			right:     Lift(n.right, lifter),
			exclusive: n.exclusive,
		}
	case *Negation[A]:
		return &Negation[B]{inner: Lift(n.inner, lifter)}
	}
	return nil
}

// Contramap adapts leaves to a new argument type B by projecting B onto the
// arguments the leaves already accept. Leaf names are kept.
func Contramap[A, B any](project func(B) A) Lifter[A, B] {
	return func(fn Func[A]) Func[B] {
		return Func[B]{
			name: fn.name,
			body: func(args B) Result {
				return fn.Call(project(args))
			},
			origin: fn.origin,
		}
	}
}

// redSuffix marks leaves painted asynchronous ("red" in function colouring terms).
const redSuffix = ":red"

// Paint makes every leaf answer in suspended mode. Immediate leaf results are
// wrapped into resolved futures; already suspended ones pass through.
func Paint[A any]() Lifter[A, A] {
	return func(fn Func[A]) Func[A] {
		if fn.body == nil {
			return fn
		}
		return Func[A]{
			name: NameOrRepr(fn) + redSuffix,
			body: func(args A) Result {
				r := fn.Call(args)
				if r.IsSuspended() {
					return r
				}
				return Suspended(r.Future())
			},
			origin: fn.origin,
		}
	}
}

// Erase makes every leaf answer in immediate mode by awaiting suspended leaf
// results with ctx at call time. It undoes the name change made by Paint.
func Erase[A any](ctx context.Context) Lifter[A, A] {
	return func(fn Func[A]) Func[A] {
		if fn.body == nil {
			return fn
		}
		return Func[A]{
			name: strings.TrimSuffix(fn.name, redSuffix),
			body: func(args A) Result {
				r := fn.Call(args)
				if !r.IsSuspended() {
					return r
				}
				ok, err := r.Await(ctx)
				if err != nil {
					return Fail(err)
				}
				return Immediate(ok)
			},
			origin: fn.origin,
		}
	}
}
