package trace

import (
	"context"
	"log/slog"

	"github.com/vitalvas/sena/filter"
)

// Leaves returns a lifter that logs every leaf invocation at debug level
// with the leaf name, its mode and its outcome. Suspended leaves are logged
// when their future is awaited. Results pass through unchanged.
//
//	traced := filter.Lift(f, trace.Leaves[int](logger))
func Leaves[A any](logger *slog.Logger) filter.Lifter[A, A] {
	return func(fn filter.Func[A]) filter.Func[A] {
		if fn.IsZero() || logger == nil {
			return fn
		}

		name := filter.NameOrRepr(fn)

		return filter.Wrap(func(args A) filter.Result {
			result := fn.Call(args)
			if !result.IsSuspended() {
				value, err := result.Value()
				logLeaf(context.Background(), logger, name, filter.ModeImmediate, value, err)
				return result
			}

			future := result.Future()
			return filter.Suspended(func(ctx context.Context) (bool, error) {
				value, err := future(ctx)
				logLeaf(ctx, logger, name, filter.ModeSuspended, value, err)
				return value, err
			})
		}, name)
	}
}

func logLeaf(ctx context.Context, logger *slog.Logger, name string, mode filter.Mode, value bool, err error) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{
		slog.String("leaf", name),
		slog.String("mode", mode.String()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	} else {
		attrs = append(attrs, slog.Bool("result", value))
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "leaf evaluated", attrs...)
}

type filterValue[A any] struct {
	f filter.Filter[A]
}

func (v filterValue[A]) LogValue() slog.Value {
	return slog.StringValue(filter.Render(v.f))
}

// Filter wraps f so that it is rendered only when a log record is emitted.
//
//	logger.Info("compiled", "rule", trace.Filter(f))
func Filter[A any](f filter.Filter[A]) slog.LogValuer {
	return filterValue[A]{f: f}
}
