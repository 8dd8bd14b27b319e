package rule

import (
	"context"
	"sync"
)

// group runs tasks concurrently and cancels the shared context as soon as
// one of them fails. At most limit tasks run at once when limit > 0.
type group struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	sem     chan struct{}
	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

func newGroup(ctx context.Context, limit int) (*group, context.Context) {
	ctx, cancel := context.WithCancelCause(ctx)
	g := &group{ctx: ctx, cancel: cancel}
	if limit > 0 {
		g.sem = make(chan struct{}, limit)
	}
	return g, ctx
}

// run starts f in a new goroutine. Tasks queued behind the limit are
// skipped once the group is canceled.
func (g *group) run(f func(ctx context.Context) error) {
	g.wg.Add(1)

	go func() {
		defer g.wg.Done()

		if g.sem != nil {
			if g.ctx.Err() != nil {
				return
			}
			select {
			case g.sem <- struct{}{}:
				defer func() { <-g.sem }()
			case <-g.ctx.Done():
				return
			}
		}

		if err := f(g.ctx); err != nil {
			g.fail(err)
		}
	}()
}

func (g *group) fail(err error) {
	g.errOnce.Do(func() {
		g.err = err
		g.cancel(err)
	})
}

// wait blocks until every task has returned and reports the first error.
func (g *group) wait() error {
	g.wg.Wait()
	g.cancel(nil)
	return g.err
}
