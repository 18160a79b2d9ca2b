package storage

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scanner measures many download directories concurrently.
type Scanner struct {
	concurrency int
}

func NewScanner(concurrency int) *Scanner {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Scanner{concurrency: concurrency}
}

// Sizes returns FolderSize for every path, in input order. Empty paths are 0.
func (s *Scanner) Sizes(ctx context.Context, paths []string) ([]int64, error) {
	sizes := make([]int64, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, path := range paths {
		if path == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sizes[i] = FolderSize(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sizes, nil
}
