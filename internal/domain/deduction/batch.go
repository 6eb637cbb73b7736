package deduction

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type BatchItem struct {
	Index  int
	Result Result
	Err    error
}

// ComputeBatch computes every input with at most workers running at once.
// Per-item failures such as ErrMissingSalary are reported on the item; the
// returned error is only set when ctx is done before the batch finishes.
func (c *Calculator) ComputeBatch(ctx context.Context, inputs []Input, workers int) ([]BatchItem, error) {
	if workers <= 0 {
		workers = 1
	}
	items := make([]BatchItem, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Compute(in)
			items[i] = BatchItem{Index: i, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
