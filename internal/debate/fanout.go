package debate

import (
	"context"
	"sync"
	"time"
)

// callResult is the outcome of one oracle call within a stage.
type callResult struct {
	text string
	err  error
}

// fanOut issues n independent oracle calls with at most workers running
// concurrently and a per-call timeout. Results are returned at their
// declaration index so the next stage sees them in declaration order, which
// signature comparison and display depend on.
//
// fanOut never returns early: every stage is a synchronization barrier, and
// a failed or timed-out call surfaces as an error in its slot for the caller
// to degrade to the documented fallback.
func fanOut(ctx context.Context, n, workers int, timeout time.Duration, call func(context.Context, int) (string, error)) []callResult {
	results := make([]callResult, n)
	if n == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			text, err := call(callCtx, i)
			results[i] = callResult{text: text, err: err}
		}(i)
	}
	wg.Wait()

	return results
}
