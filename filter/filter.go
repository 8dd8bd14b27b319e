// Package filter implements a composable predicate algebra.
//
// Leaf predicates are combined with And, Or, Xor and Not into immutable
// expression trees. A tree evaluates left to right with short-circuiting, and
// works the same whether the leaves answer immediately or only after a
// suspension point:
//
//   - Immediate results carry their boolean right away.
//   - Suspended results carry a Future that yields the boolean when awaited.
//
// Trees render as readable expressions (a & b, (a * b), (a ^ b), ~(a)) and can
// be lifted: Lift rewrites the argument type of every leaf while keeping the
// shape of the tree.
//
// Example:
//
//	even := filter.Named("even", func(x int) bool { return x%2 == 0 })
//	small := filter.Named("small", func(x int) bool { return x < 10 })
//
//	f := filter.And(even, filter.Not(small))
//	fmt.Println(f) // even & ~(small)
//
//	ok, err := filter.Check(context.Background(), f, 12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ok) // true
package filter

import (
	"context"
)

// Filter is a node of a predicate expression tree. The set of node types is
// closed: *Predicate, *Conjunction, *Disjunction and *Negation.
type Filter[A any] interface {
	String() string

	// node ties a node type to its argument type and seals the interface.
	node(A)
}

// Predicate is a leaf calling a single function.
type Predicate[A any] struct {
	fn Func[A]
}

// Conjunction is a logical AND. The right operand is never evaluated when
// the left one is false.
type Conjunction[A any] struct {
	left  Filter[A]
	right Filter[A]
}

// Disjunction is a logical OR, or exclusive OR when Exclusive reports true.
// An inclusive disjunction never evaluates its right operand when the left
// one is true; an exclusive one always evaluates both.
type Disjunction[A any] struct {
	left      Filter[A]
	right     Filter[A]
	exclusive bool
}

// Negation is a logical NOT.
type Negation[A any] struct {
	inner Filter[A]
}

func (*Predicate[A]) node(A)   {}
func (*Conjunction[A]) node(A) {}
func (*Disjunction[A]) node(A) {}
func (*Negation[A]) node(A)    {}

// Func returns the leaf function.
func (p *Predicate[A]) Func() Func[A] { return p.fn }

// Left returns the left operand.
func (c *Conjunction[A]) Left() Filter[A] { return c.left }

// Right returns the right operand.
func (c *Conjunction[A]) Right() Filter[A] { return c.right }

// Left returns the left operand.
func (d *Disjunction[A]) Left() Filter[A] { return d.left }

// Right returns the right operand.
func (d *Disjunction[A]) Right() Filter[A] { return d.right }

// Exclusive reports whether the disjunction is an exclusive OR.
func (d *Disjunction[A]) Exclusive() bool { return d.exclusive }

// Inner returns the negated operand.
func (n *Negation[A]) Inner() Filter[A] { return n.inner }

func (p *Predicate[A]) String() string   { return Render[A](p) }
func (c *Conjunction[A]) String() string { return Render[A](c) }
func (d *Disjunction[A]) String() string { return Render[A](d) }
func (n *Negation[A]) String() string    { return Render[A](n) }

// Leaf wraps a function as a predicate node.
func Leaf[A any](fn Func[A]) Filter[A] {
	return &Predicate[A]{fn: fn}
}

// Pred wraps a plain boolean function as an unnamed predicate node.
func Pred[A any](fn func(A) bool) Filter[A] {
	return Leaf(Sync(fn))
}

// Named wraps a plain boolean function as a predicate node rendered as name.
func Named[A any](name string, fn func(A) bool) Filter[A] {
	return Leaf(Sync(fn).Named(name))
}

// And combines filters with logical AND, folding extra operands to the left:
// And(a, b, c) is And(And(a, b), c).
func And[A any](left, right Filter[A], rest ...Filter[A]) Filter[A] {
	var f Filter[A] = &Conjunction[A]{left: left, right: right}
	for _, next := range rest {
		f = &Conjunction[A]{left: f, right: next}
	}
	return f
}

// Or combines filters with logical OR, folding extra operands to the left.
func Or[A any](left, right Filter[A], rest ...Filter[A]) Filter[A] {
	return disjunction(false, left, right, rest)
}

// Xor combines filters with exclusive OR, folding extra operands to the left.
func Xor[A any](left, right Filter[A], rest ...Filter[A]) Filter[A] {
	return disjunction(true, left, right, rest)
}

func disjunction[A any](exclusive bool, left, right Filter[A], rest []Filter[A]) Filter[A] {
	var f Filter[A] = &Disjunction[A]{left: left, right: right, exclusive: exclusive}
	for _, next := range rest {
		f = &Disjunction[A]{left: f, right: next, exclusive: exclusive}
	}
	return f
}

// Not negates a filter.
func Not[A any](inner Filter[A]) Filter[A] {
	return &Negation[A]{inner: inner}
}

// Call evaluates f against args. The result is immediate unless a suspended
// operand was met, in which case the remaining evaluation is deferred into
// the returned Future.
func Call[A any](f Filter[A], args A) Result {
	switch n := f.(type) {
	case *Predicate[A]:
		return n.fn.Call(args)

	case *Conjunction[A]:
		left := Call(n.left, args)
		if left.IsSuspended() {
			return Suspended(awaitAnd(left, n.right, args))
		}
		ok, err := left.Value()
		if err != nil {
			return Fail(err)
		}
		if !ok {
			return Immediate(false)
		}
		return Call(n.right, args)

	case *Disjunction[A]:
		left := Call(n.left, args)
		if n.exclusive {
			return callXor(left, n.right, args)
		}
		if left.IsSuspended() {
			return Suspended(awaitOr(left, n.right, args))
		}
		ok, err := left.Value()
		if err != nil {
			return Fail(err)
		}
		if ok {
			return Immediate(true)
		}
		return Call(n.right, args)

	case *Negation[A]:
		inner := Call(n.inner, args)
		if inner.IsSuspended() {
			return Suspended(awaitNot(inner))
		}
		ok, err := inner.Value()
		if err != nil {
			return Fail(err)
		}
		return Immediate(!ok)
	}

	return Fail(ErrNilFilter)
}

func callXor[A any](left Result, right Filter[A], args A) Result {
	if left.IsSuspended() {
		return Suspended(awaitXor(left, right, args))
	}

	l, err := left.Value()
	if err != nil {
		return Fail(err)
	}

	rightResult := Call(right, args)
	if rightResult.IsSuspended() {
		return Suspended(awaitXorRight(l, rightResult))
	}

	r, err := rightResult.Value()
	if err != nil {
		return Fail(err)
	}
	return Immediate(l != r)
}

// Check evaluates f against args and waits for the outcome.
func Check[A any](ctx context.Context, f Filter[A], args A) (bool, error) {
	return Call(f, args).Await(ctx)
}

// Render returns the expression form of f. It reads names only and never
// calls the leaf functions.
func Render[A any](f Filter[A]) string {
	switch n := f.(type) {
	case *Predicate[A]:
		return NameOrRepr(n.fn)
	case *Conjunction[A]:
		return Render(n.left) + " & " + Render(n.right)
	case *Disjunction[A]:
		op := " * "
		if n.exclusive {
			op = " ^ "
		}
		return "(" + Render(n.left) + op + Render(n.right) + ")"
	case *Negation[A]:
		return "~(" + Render(n.inner) + ")"
	}
	return "<nil>"
}

// Walk visits f and its descendants in pre-order, left to right. Returning
// false from visit skips the children of that node.
func Walk[A any](f Filter[A], visit func(Filter[A]) bool) {
	if f == nil || !visit(f) {
		return
	}

	switch n := f.(type) {
	case *Conjunction[A]:
		Walk(n.left, visit)
		Walk(n.right, visit)
	case *Disjunction[A]:
		Walk(n.left, visit)
		Walk(n.right, visit)
	case *Negation[A]:
		Walk(n.inner, visit)
	}
}

// Leaves returns the leaf functions of f from left to right.
func Leaves[A any](f Filter[A]) []Func[A] {
	var leaves []Func[A]
	Walk(f, func(node Filter[A]) bool {
		if p, ok := node.(*Predicate[A]); ok {
			leaves = append(leaves, p.fn)
		}
		return true
	})
	return leaves
}
