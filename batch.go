package regexplain

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
)

// Input is one pattern to explain with ExplainAll.
type Input struct {
	Pattern string
	Flags   Flags
}

// Result pairs an explanation with its error. Exp is set even when Err
// is a *MalformedPatternError.
type Result struct {
	Exp *Explanation
	Err error
}

// ExplainAll explains many patterns in parallel. Results are returned in
// input order. Each pattern is explained independently, exactly as
// ExplainPattern would; a malformed pattern only affects its own Result.
// If ctx is cancelled the returned error is ctx.Err() and unfinished
// entries are left zero.
func ExplainAll(ctx context.Context, inputs []Input, opts ...Option) ([]Result, error) {
	cfg := newConfig(opts)
	logger := cfg.logger
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	workers := cfg.workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if logger != nil && logger.Enabled(ctx, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel explain",
			slog.Int("patterns", len(inputs)),
			slog.Int("workers", workers))
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			exp, err := explainPattern(in.Pattern, in.Flags, cfg)
			results[i] = Result{Exp: exp, Err: err}
		}(i, in)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	if logger != nil && logger.Enabled(ctx, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel explain complete",
			slog.Int("patterns", len(inputs)))
	}
	return results, nil
}
