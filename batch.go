package coinflip

import (
	"context"
	"sync"
)

// flipTask runs fn over n indices spread across workerCount goroutines
// in contiguous chunks. Adapted from the chunked worker-pool pattern
// used for rigid-body batches elsewhere in this codebase's lineage;
// here each unit of work is an independent flip, so chunking carries no
// cross-item ordering requirement.
func flipTask(workerCount, n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > n {
		workerCount = n
	}

	var wg sync.WaitGroup
	chunkSize := (n + workerCount - 1) / workerCount

	for w := 0; w < workerCount; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// FlipMany runs n independent flips concurrently across workers
// goroutines and returns one result/error pair per flip, in input
// order. Each flip owns its own RigidBody exclusively — per §5 of the
// kernel's concurrency model, there is no process-wide mutable state
// to contend over, so flips never block each other except for
// scheduling.
func FlipMany(ctx context.Context, options FlipOptions, n, workers int) ([]FlipResult, []error) {
	results := make([]FlipResult, n)
	errs := make([]error, n)

	flipTask(workers, n, func(i int) {
		results[i], errs[i] = FlipCoin(ctx, options)
	})

	return results, errs
}
