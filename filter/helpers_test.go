package filter

import (
	"context"
	"errors"
)

var errBoom = errors.New("boom")

// spy is a leaf that records every invocation of its body.
type spy struct {
	name  string
	value bool
	calls int
	log   *[]string
}

func (p *spy) record() {
	p.calls++
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
}

// sync returns an immediate leaf.
func (p *spy) sync() Filter[int] {
	return Leaf(Wrap(func(int) Result {
		p.record()
		return Immediate(p.value)
	}, p.name))
}

// async returns a leaf whose body answers with a suspended result.
func (p *spy) async() Filter[int] {
	return Leaf(Wrap(func(int) Result {
		p.record()
		value := p.value
		return Suspended(func(context.Context) (bool, error) {
			return value, nil
		})
	}, p.name))
}

func (p *spy) in(mode Mode) Filter[int] {
	if mode == ModeSuspended {
		return p.async()
	}
	return p.sync()
}

func newSpy(name string, value bool, log *[]string) *spy {
	return &spy{name: name, value: value, log: log}
}

var modes = []Mode{ModeImmediate, ModeSuspended}

func failing(name string) Filter[int] {
	return Leaf(Fallible(func(int) (bool, error) {
		return false, errBoom
	}).Named(name))
}
