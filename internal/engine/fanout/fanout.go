// Package fanout runs the same operation over a set of independent items with bounded concurrency.
package fanout

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit returns the default number of concurrent workers.
func DefaultLimit() int {
	return runtime.NumCPU()
}

// ForEach runs worker for every item with at most limit workers in flight and blocks until all
// of them return. A limit below one uses DefaultLimit.
//
// Every failure is kept: the result joins them in item order, each annotated with the item's
// name under the "item" key. A failing worker does not cancel its siblings.
func ForEach[T any](
	ctx context.Context,
	items []T,
	limit int,
	name func(T) string,
	worker func(context.Context, T) error,
) error {
	if len(items) == 0 {
		return nil
	}
	if limit < 1 {
		limit = DefaultLimit()
	}

	errs := make([]error, len(items))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = worker(ctx, item)
			}
			if err != nil {
				errs[i] = annotate(err, name(item))
			}
			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}

func annotate(err error, item string) error {
	if _, ok := err.(*zerr.Error); !ok {
		err = zerr.Wrap(err, "worker failed")
	}
	return zerr.With(err, "item", item)
}
