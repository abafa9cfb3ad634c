package verify

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// VerifyBatch verifies independent games concurrently, bounded by the
// configured worker count. Items keep request order. A request that fails
// validation is reported on its item and does not stop the batch; only
// context cancellation aborts it.
func (v *Verifier) VerifyBatch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	start := time.Now()
	items := make([]BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for i := range reqs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := v.Verify(reqs[i])
			items[i] = BatchItem{Index: i, Result: res, Err: err}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	v.logger.Printf("verify_batch total=%d failed=%d duration=%v", len(reqs), failed, time.Since(start))
	if v.audit != nil {
		v.audit.LogBatch(len(reqs), failed, time.Since(start), err)
	}

	if err != nil {
		return nil, err
	}
	return items, nil
}
