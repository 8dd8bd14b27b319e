package rule

import (
	"context"
	"fmt"
	"slices"

	"github.com/vitalvas/sena/filter"
)

// Set is a compiled rule set. Rules keep the order of the Config they were
// built from.
type Set[A any] struct {
	names []string
	rules map[string]filter.Filter[A]
	limit int
}

// SetOption configures a Set.
type SetOption func(*setOptions)

type setOptions struct {
	limit int
}

// WithConcurrency bounds the number of inputs MatchAll evaluates at once.
// Zero or a negative value means no bound.
func WithConcurrency(n int) SetOption {
	return func(o *setOptions) {
		o.limit = n
	}
}

// NewSet compiles every rule of cfg against reg.
func NewSet[A any](cfg *Config, reg *Registry[A], options ...SetOption) (*Set[A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &setOptions{}
	for _, option := range options {
		option(opts)
	}

	s := &Set[A]{
		names: make([]string, 0, len(cfg.Rules)),
		rules: make(map[string]filter.Filter[A], len(cfg.Rules)),
		limit: opts.limit,
	}

	for _, r := range cfg.Rules {
		f, err := Compile(r.Expr, reg)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		s.names = append(s.names, r.Name)
		s.rules[r.Name] = f
	}
	return s, nil
}

// Names returns rule names in configuration order.
func (s *Set[A]) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of rules.
func (s *Set[A]) Len() int {
	return len(s.names)
}

// Get returns the compiled filter of a rule.
func (s *Set[A]) Get(name string) (filter.Filter[A], bool) {
	f, ok := s.rules[name]
	return f, ok
}

// Lift returns a copy of s with lifter applied to every rule. Use it to
// attach instrumentation such as trace.Leaves.
func (s *Set[A]) Lift(lifter filter.Lifter[A, A]) *Set[A] {
	lifted := &Set[A]{
		names: s.names,
		rules: make(map[string]filter.Filter[A], len(s.rules)),
		limit: s.limit,
	}
	for name, f := range s.rules {
		lifted.rules[name] = filter.Lift(f, lifter)
	}
	return lifted
}

// Match evaluates every rule against args in order and returns the names of
// the rules that hold. Evaluation stops at the first error.
func (s *Set[A]) Match(ctx context.Context, args A) ([]string, error) {
	matched := []string{}
	for _, name := range s.names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := filter.Check(ctx, s.rules[name], args)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// MatchAll runs Match for each input concurrently. Results are indexed like
// inputs. The first error cancels the remaining evaluations and is returned.
func (s *Set[A]) MatchAll(ctx context.Context, inputs []A) ([][]string, error) {
	results := make([][]string, len(inputs))

	g, _ := newGroup(ctx, s.limit)
	for i, args := range inputs {
		g.run(func(ctx context.Context) error {
			matched, err := s.Match(ctx, args)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = matched
			return nil
		})
	}

	if err := g.wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
