package rule

import "errors"

var (
	// ErrSyntax is returned when a rule expression cannot be parsed.
	ErrSyntax = errors.New("rule: syntax error")

	// ErrUnknownPredicate is returned when an expression names a predicate
	// or factory that is not registered.
	ErrUnknownPredicate = errors.New("rule: unknown predicate")

	// ErrUnnamedPredicate is the panic value of Registry.Add for a predicate
	// without an explicit name.
	ErrUnnamedPredicate = errors.New("rule: predicate has no name")

	// ErrDuplicateRule is returned when two rules of a set share a name.
	ErrDuplicateRule = errors.New("rule: duplicate rule")

	// ErrInvalidConfig is returned when a rule configuration fails validation.
	ErrInvalidConfig = errors.New("rule: invalid config")
)
