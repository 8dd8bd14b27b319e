// Package scope provides an immutable keyed container for dependency lookup.
//
// Every operation that changes a Scope returns a new Scope; existing values
// are never modified, so a Scope can be shared between goroutines without
// locking. Values are usually keyed by their type:
//
//	s := scope.Use(scope.New("app"), log.Default())
//	logger, err := scope.Get[*log.Logger](s)
package scope

import (
	"errors"
	"fmt"
	"maps"
	"reflect"

	"github.com/google/uuid"
)

// ErrMissingKey is returned when a key is not bound in a scope.
var ErrMissingKey = errors.New("scope: missing key")

// Scope is a named, immutable mapping of keys to values.
type Scope struct {
	name string
	deps map[any]any
}

// New creates an empty scope. An empty name is replaced by a random UUID.
func New(name string) *Scope {
	if name == "" {
		name = uuid.NewString()
	}
	return &Scope{
		name: name,
		deps: make(map[any]any),
	}
}

// Name returns the scope name.
func (s *Scope) Name() string {
	return s.name
}

// Len returns the number of bound keys.
func (s *Scope) Len() int {
	return len(s.deps)
}

// Has reports whether key is bound.
func (s *Scope) Has(key any) bool {
	_, ok := s.deps[key]
	return ok
}

// Lookup returns the value bound to key.
// Returns an error wrapping ErrMissingKey if key is not bound.
func (s *Scope) Lookup(key any) (any, error) {
	value, ok := s.deps[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v in %s", ErrMissingKey, key, s)
	}
	return value, nil
}

// Bind returns a copy of s with key bound to value, replacing any previous binding.
func (s *Scope) Bind(key, value any) *Scope {
	deps := s.clone()
	deps[key] = value
	return &Scope{name: s.name, deps: deps}
}

// Merge returns a scope named after s holding every binding of other, with
// bindings of s filling in keys other lacks. A nil other is treated as empty.
func (s *Scope) Merge(other *Scope) *Scope {
	deps := s.clone()
	if other != nil {
		maps.Copy(deps, other.deps)
	}
	return &Scope{name: s.name, deps: deps}
}

// Rename returns a copy of s with a different name and the same bindings.
func (s *Scope) Rename(name string) *Scope {
	return &Scope{name: name, deps: s.clone()}
}

func (s *Scope) clone() map[any]any {
	deps := make(map[any]any, len(s.deps)+1)
	maps.Copy(deps, s.deps)
	return deps
}

func (s *Scope) String() string {
	return "<Scope " + s.name + ">"
}

// TypeKey returns the key under which Use and Get store values of type T.
func TypeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Use returns a copy of s with value bound under its type T.
func Use[T any](s *Scope, value T) *Scope {
	return s.Bind(TypeKey[T](), value)
}

// Get returns the value bound under type T.
// Returns an error wrapping ErrMissingKey if nothing is bound.
func Get[T any](s *Scope) (T, error) {
	var zero T

	value, err := s.Lookup(TypeKey[T]())
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("scope: value for %s has type %T", TypeKey[T](), value)
	}
	return typed, nil
}

// MustGet is like Get but panics if nothing is bound.
func MustGet[T any](s *Scope) T {
	value, err := Get[T](s)
	if err != nil {
		panic(err)
	}
	return value
}
