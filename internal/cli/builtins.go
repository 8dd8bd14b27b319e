package cli

import (
	"errors"
	"fmt"

	"github.com/vitalvas/sena/filter"
	"github.com/vitalvas/sena/rule"
)

// Builtins returns the registry the CLI compiles rules against. Inputs are
// tuples of int64.
//
//	nonzero, positive, even   every element satisfies the property
//	less                      a pair (a, b) with a < b
//	divisible_by(n)           every element is a multiple of n
//	sum("expr")               expr holds for the 1-tuple of the element sum
//	expr("it[0] > 3")         expr-lang program over the tuple
func Builtins() *rule.Registry[filter.Args] {
	reg := rule.NewRegistry(
		filter.MustDynamic(func(xs ...int64) bool {
			return all(xs, func(x int64) bool { return x != 0 })
		}).Named("nonzero"),
		filter.MustDynamic(func(xs ...int64) bool {
			return all(xs, func(x int64) bool { return x > 0 })
		}).Named("positive"),
		filter.MustDynamic(func(xs ...int64) bool {
			return all(xs, func(x int64) bool { return x%2 == 0 })
		}).Named("even"),
		filter.MustDynamic(func(a, b int64) bool {
			return a < b
		}).Named("less"),
	)

	reg.AddFactory("divisible_by", divisibleBy)
	reg.AddFactory("sum", sumOf(reg))
	reg.AddExprFactory("expr")

	return reg
}

func all(xs []int64, pred func(int64) bool) bool {
	for _, x := range xs {
		if !pred(x) {
			return false
		}
	}
	return true
}

func divisibleBy(args ...any) (filter.Func[filter.Args], error) {
	if len(args) != 1 {
		return filter.Func[filter.Args]{}, fmt.Errorf("want 1 argument, got %d", len(args))
	}
	by, ok := args[0].(int64)
	if !ok {
		return filter.Func[filter.Args]{}, fmt.Errorf("want integer, got %T", args[0])
	}
	if by == 0 {
		return filter.Func[filter.Args]{}, errors.New("divisor is zero")
	}

	return filter.Dynamic(func(xs ...int64) bool {
		return all(xs, func(x int64) bool { return x%by == 0 })
	})
}

// sumOf compiles its argument against reg and evaluates it on the sum of
// the input tuple.
func sumOf(reg *rule.Registry[filter.Args]) rule.Factory[filter.Args] {
	return func(args ...any) (filter.Func[filter.Args], error) {
		if len(args) != 1 {
			return filter.Func[filter.Args]{}, fmt.Errorf("want 1 argument, got %d", len(args))
		}
		source, ok := args[0].(string)
		if !ok {
			return filter.Func[filter.Args]{}, fmt.Errorf("want string, got %T", args[0])
		}

		inner, err := rule.Compile(source, reg)
		if err != nil {
			return filter.Func[filter.Args]{}, err
		}

		lifted := filter.Lift(inner, filter.Contramap(func(total int64) filter.Args {
			return filter.Args{total}
		}))
		return filter.Wrap(func(in filter.Args) filter.Result {
			total, err := sumArgs(in)
			if err != nil {
				return filter.Fail(err)
			}
			return filter.Call(lifted, total)
		}, ""), nil
	}
}

func sumArgs(in filter.Args) (int64, error) {
	var total int64
	for i, v := range in {
		x, ok := v.(int64)
		if !ok {
			return 0, fmt.Errorf("%w: sum argument %d is %T, want int64", filter.ErrSignatureMismatch, i, v)
		}
		total += x
	}
	return total, nil
}
