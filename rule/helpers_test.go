package rule

import (
	"errors"
	"fmt"

	"github.com/vitalvas/sena/filter"
)

var errBoom = errors.New("boom")

func isOdd(x int) bool {
	return x%2 != 0
}

func divisibleBy(args ...any) (filter.Func[int], error) {
	if len(args) != 1 {
		return filter.Func[int]{}, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	by, ok := args[0].(int64)
	if !ok {
		return filter.Func[int]{}, fmt.Errorf("expected integer, got %T", args[0])
	}
	if by == 0 {
		return filter.Func[int]{}, errors.New("division by zero")
	}
	return filter.Sync(func(x int) bool {
		return int64(x)%by == 0
	}), nil
}

func testRegistry() *Registry[int] {
	return NewRegistry[int]().
		AddFunc("even", func(x int) bool { return x%2 == 0 }).
		AddFunc("positive", func(x int) bool { return x > 0 }).
		Add(filter.Fallible(func(x int) (bool, error) {
			if x == 13 {
				return false, errBoom
			}
			return true, nil
		}).Named("lucky")).
		AddFactory("divisible_by", divisibleBy).
		AddExprFactory("expr")
}
