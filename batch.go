package calc

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Result struct {
	Line  string
	Value int32
	Err   error
}

// EvalLines evaluates every line with at most workers goroutines.
// Results are returned in input order; per-line failures are stored in
// Result.Err. The returned error is non-nil only if ctx is done.
func EvalLines(ctx context.Context, lines []string, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := ParseAndEvaluate(line)
			results[i] = Result{Line: line, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
