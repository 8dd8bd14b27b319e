package rule

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/vitalvas/sena/filter"
)

// Expr compiles an expr-lang boolean program into a predicate. The argument
// value is available to the program as "it":
//
//	fn, err := rule.Expr[filter.Args](`it[0] % 3 == 0`)
//
// The predicate is named after source. Runtime failures of the program are
// returned as evaluation errors.
func Expr[A any](source string, opts ...expr.Option) (filter.Func[A], error) {
	options := append([]expr.Option{expr.AllowUndefinedVariables(), expr.AsBool()}, opts...)

	program, err := expr.Compile(source, options...)
	if err != nil {
		return filter.Func[A]{}, fmt.Errorf("rule: compile %q: %w", source, err)
	}

	return filter.Fallible(func(args A) (bool, error) {
		return runProgram(program, args)
	}).Named(source), nil
}

func runProgram(program *vm.Program, args any) (bool, error) {
	out, err := expr.Run(program, map[string]any{"it": args})
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("rule: expression returned %T, not bool", out)
	}
	return result, nil
}
