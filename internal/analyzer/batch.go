package analyzer

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/morph"
)

// GatewayFactory creates a fresh gateway for one worker. If the gateway
// implements io.Closer it is closed when the worker finishes.
type GatewayFactory func() (gateway.Gateway, error)

// DefaultWorkers is the batch parallelism when BatchOptions.Workers is unset.
const DefaultWorkers = 4

// BatchOptions controls AnalyzeBatch.
type BatchOptions struct {
	// Workers is the number of parallel analyzers, each with its own gateway.
	Workers int
	// Options are applied to every worker's Analyzer.
	Options []Option
}

// AnalyzeBatch analyzes sentences in parallel. Results are index-aligned with
// sentences. The first failure cancels the remaining work and is returned.
func AnalyzeBatch(ctx context.Context, factory GatewayFactory, sentences [][]string, opts BatchOptions) ([][]morph.WordAnalysis, error) {
	results := make([][]morph.WordAnalysis, len(sentences))
	if len(sentences) == 0 {
		return results, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, len(sentences))

	g, ctx := errgroup.WithContext(ctx)

	next := make(chan int)
	g.Go(func() error {
		defer close(next)
		for i := range sentences {
			select {
			case next <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			gw, err := factory()
			if err != nil {
				return fmt.Errorf("create gateway: %w", err)
			}
			if c, ok := gw.(io.Closer); ok {
				defer c.Close()
			}

			a := New(gw, opts.Options...)
			for i := range next {
				res, err := a.Analyze(ctx, sentences[i])
				if err != nil {
					return fmt.Errorf("sentence %d: %w", i, err)
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
