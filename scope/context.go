package scope

import "github.com/vitalvas/sena/filter"

// Context pairs an event with the scope its handlers resolve dependencies from.
type Context[E any] struct {
	Event E
	Scope *Scope
}

// NewContext creates a context for event.
func NewContext[E any](event E, s *Scope) Context[E] {
	return Context[E]{Event: event, Scope: s}
}

// Provide lifts filters written against Context[E] into filters over bare
// events, injecting s into every leaf call. Leaf names are kept.
func Provide[E any](s *Scope) filter.Lifter[Context[E], E] {
	return filter.Contramap(func(event E) Context[E] {
		return NewContext(event, s)
	})
}
