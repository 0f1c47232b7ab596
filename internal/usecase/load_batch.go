package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

// BatchResult is the outcome of loading one document of a batch.
type BatchResult struct {
	Path  string
	Model *domain.Model
	Err   error
}

// LoadBatch loads several documents concurrently. Each document gets its
// own Model, so no state is shared between workers.
type LoadBatch struct {
	load    *LoadModel
	workers int
}

// NewLoadBatch limits concurrency to workers; 0 or less means no limit.
func NewLoadBatch(load *LoadModel, workers int) *LoadBatch {
	return &LoadBatch{load: load, workers: workers}
}

// Execute returns one result per path, in input order. A document that
// cannot be read is reported in its result; the batch itself only fails
// when ctx is cancelled.
func (uc *LoadBatch) Execute(ctx context.Context, paths []string) ([]BatchResult, error) {
	results := make([]BatchResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if uc.workers > 0 {
		g.SetLimit(uc.workers)
	}

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := uc.load.Execute(gctx, p)
			results[i] = BatchResult{Path: p, Model: m, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
