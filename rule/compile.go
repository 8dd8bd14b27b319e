// Package rule implements a textual language for filter trees.
//
// The language supports:
//   - Logical operators: & && and, * | || or, ^ ^^ xor, ~ ! not
//   - Named predicates: nonzero, is_even
//   - Factory calls with literal arguments: divisible_by(3), expr("it > 10")
//
// Precedence from lowest to highest is OR, XOR, AND, NOT. The output of
// filter.Render is valid input, so rendered trees can be stored and compiled
// back:
//
//	reg := rule.NewRegistry[int]().
//	    AddFunc("positive", func(x int) bool { return x > 0 }).
//	    AddExprFactory("expr")
//
//	f, err := rule.Compile(`positive & ~expr("it % 5 == 0")`, reg)
package rule

import (
	"fmt"

	"github.com/vitalvas/sena/filter"
)

// Compile parses a rule expression and builds a filter tree from the
// predicates and factories in reg.
//
// Rendering a compiled filter yields an expression that compiles back into
// an equivalent tree.
func Compile[A any](input string, reg *Registry[A]) (filter.Filter[A], error) {
	expr, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Build(expr, reg)
}

// MustCompile is like Compile but panics on error.
func MustCompile[A any](input string, reg *Registry[A]) filter.Filter[A] {
	f, err := Compile(input, reg)
	if err != nil {
		panic(err)
	}
	return f
}

// Build converts a parsed expression into a filter tree.
func Build[A any](expr Expression, reg *Registry[A]) (filter.Filter[A], error) {
	if err := reg.Validate(expr); err != nil {
		return nil, err
	}
	return build(expr, reg)
}

func build[A any](expr Expression, reg *Registry[A]) (filter.Filter[A], error) {
	switch e := expr.(type) {
	case *BinaryExpr:
		left, err := build(e.Left, reg)
		if err != nil {
			return nil, err
		}
		right, err := build(e.Right, reg)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case TokenAnd:
			return filter.And(left, right), nil
		case TokenOr:
			return filter.Or(left, right), nil
		case TokenXor:
			return filter.Xor(left, right), nil
		default:
			return nil, fmt.Errorf("%w: unsupported operator %s", ErrSyntax, e.Operator)
		}
	case *UnaryExpr:
		inner, err := build(e.Operand, reg)
		if err != nil {
			return nil, err
		}
		return filter.Not(inner), nil
	case *IdentExpr:
		fn, _ := reg.Lookup(e.Name)
		return filter.Leaf(fn), nil
	case *CallExpr:
		fn, err := reg.instantiate(e)
		if err != nil {
			return nil, err
		}
		return filter.Leaf(fn), nil
	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}
