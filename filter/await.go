package filter

import "context"

// The await* helpers continue an evaluation once an operand turned out to be
// suspended. Operands are awaited in the same order the immediate path
// evaluates them, and a right operand is only called after its left sibling
// has been resolved.

func awaitAnd[A any](left Result, right Filter[A], args A) Future {
	return func(ctx context.Context) (bool, error) {
		ok, err := left.Await(ctx)
		if err != nil || !ok {
			return false, err
		}
		return Call(right, args).Await(ctx)
	}
}

func awaitOr[A any](left Result, right Filter[A], args A) Future {
	return func(ctx context.Context) (bool, error) {
		ok, err := left.Await(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		return Call(right, args).Await(ctx)
	}
}

func awaitXor[A any](left Result, right Filter[A], args A) Future {
	return func(ctx context.Context) (bool, error) {
		l, err := left.Await(ctx)
		if err != nil {
			return false, err
		}
		return awaitXorRight(l, Call(right, args))(ctx)
	}
}

func awaitXorRight(left bool, right Result) Future {
	return func(ctx context.Context) (bool, error) {
		r, err := right.Await(ctx)
		if err != nil {
			return false, err
		}
		return left != r, nil
	}
}

func awaitNot(inner Result) Future {
	return func(ctx context.Context) (bool, error) {
		ok, err := inner.Await(ctx)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}
