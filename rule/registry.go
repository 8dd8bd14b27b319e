package rule

import (
	"fmt"
	"slices"

	"github.com/vitalvas/sena/filter"
)

// Factory builds a predicate from the literal arguments of a call such as
// divisible_by(3). Arguments are int64, string or bool.
type Factory[A any] func(args ...any) (filter.Func[A], error)

// Registry maps the names used in rule expressions to predicates and
// factories. A Registry is not safe for concurrent modification; populate
// it before compiling.
type Registry[A any] struct {
	preds     map[string]filter.Func[A]
	factories map[string]Factory[A]
}

// NewRegistry creates an empty registry.
// If predicates are provided, they are added as by Add.
func NewRegistry[A any](preds ...filter.Func[A]) *Registry[A] {
	r := &Registry[A]{
		preds:     make(map[string]filter.Func[A]),
		factories: make(map[string]Factory[A]),
	}
	for _, fn := range preds {
		r.Add(fn)
	}
	return r
}

// Add registers fn under its name. Add panics with ErrUnnamedPredicate if
// fn has no explicit name: closures from one function literal share a
// fallback representation and would replace each other.
// Returns the registry to allow method chaining.
func (r *Registry[A]) Add(fn filter.Func[A]) *Registry[A] {
	name := fn.Name()
	if name == "" {
		panic(ErrUnnamedPredicate)
	}
	r.preds[name] = fn
	return r
}

// AddFunc registers a plain boolean function under name.
func (r *Registry[A]) AddFunc(name string, fn func(A) bool) *Registry[A] {
	r.preds[name] = filter.Sync(fn).Named(name)
	return r
}

// AddFactory registers a factory invoked by name(arg, ...) calls.
func (r *Registry[A]) AddFactory(name string, factory Factory[A]) *Registry[A] {
	r.factories[name] = factory
	return r
}

// AddExprFactory registers a factory under name that takes a single string
// argument and compiles it with Expr.
func (r *Registry[A]) AddExprFactory(name string) *Registry[A] {
	return r.AddFactory(name, func(args ...any) (filter.Func[A], error) {
		if len(args) != 1 {
			return filter.Func[A]{}, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		source, ok := args[0].(string)
		if !ok {
			return filter.Func[A]{}, fmt.Errorf("%s expects a string argument, got %T", name, args[0])
		}
		return Expr[A](source)
	})
}

// Lookup returns the predicate registered under name.
func (r *Registry[A]) Lookup(name string) (filter.Func[A], bool) {
	fn, ok := r.preds[name]
	return fn, ok
}

// LookupFactory returns the factory registered under name.
func (r *Registry[A]) LookupFactory(name string) (Factory[A], bool) {
	factory, ok := r.factories[name]
	return factory, ok
}

// Names returns the sorted names of all registered predicates and factories.
func (r *Registry[A]) Names() []string {
	names := make([]string, 0, len(r.preds)+len(r.factories))
	for name := range r.preds {
		names = append(names, name)
	}
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Validate checks that every name referenced in the expression is registered.
func (r *Registry[A]) Validate(expr Expression) error {
	switch e := expr.(type) {
	case *BinaryExpr:
		if err := r.Validate(e.Left); err != nil {
			return err
		}
		return r.Validate(e.Right)
	case *UnaryExpr:
		return r.Validate(e.Operand)
	case *IdentExpr:
		if _, ok := r.preds[e.Name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPredicate, e.Name)
		}
	case *CallExpr:
		if _, ok := r.factories[e.Name]; !ok {
			return fmt.Errorf("%w: %s()", ErrUnknownPredicate, e.Name)
		}
	case nil:
		return fmt.Errorf("%w: nil expression", ErrSyntax)
	default:
		return fmt.Errorf("unsupported expression %T", expr)
	}
	return nil
}

// instantiate calls the factory for a call expression. The resulting
// predicate is named after the canonical call so that rendering reproduces it.
func (r *Registry[A]) instantiate(call *CallExpr) (filter.Func[A], error) {
	factory, ok := r.factories[call.Name]
	if !ok {
		return filter.Func[A]{}, fmt.Errorf("%w: %s()", ErrUnknownPredicate, call.Name)
	}

	fn, err := factory(call.Arguments...)
	if err != nil {
		return filter.Func[A]{}, fmt.Errorf("rule: %s: %w", call, err)
	}
	if fn.IsZero() {
		return filter.Func[A]{}, fmt.Errorf("rule: %s: %w", call, filter.ErrNilFunc)
	}
	return fn.Named(call.String()), nil
}
