package pipeline

import (
	"context"
	"sync"
	"time"
)

// Result records one successful worker invocation. Index is the item's
// position in the input slice, preserved so callers can correlate results
// back to input order even though completion order within a window is
// unspecified.
type Result[T, R any] struct {
	Item  T
	Value R
	Index int
}

// Failure records one failed worker invocation.
type Failure[T any] struct {
	Item  T
	Err   error
	Index int
}

// Outcome is the complete account of an executor run. Every input item
// appears exactly once, in either Successful or Failed.
type Outcome[T, R any] struct {
	Successful []Result[T, R]
	Failed     []Failure[T]
	Duration   time.Duration
}

// ExecutorOptions configures a Run call.
type ExecutorOptions[T any] struct {
	// Concurrency is the maximum number of worker invocations in flight
	// at once. Values below 1 are treated as 1.
	Concurrency int

	// InterBatchDelay, when positive, suspends the executor between
	// windows (never after the last one). This paces request initiation
	// against externally rate-limited collaborators, independent of any
	// retry behavior inside the worker.
	InterBatchDelay time.Duration

	// OnProgress, if set, fires after every single item settles, success
	// or failure. completed is monotonically non-decreasing and reaches
	// total when the run finishes.
	OnProgress func(completed, total int, item T)

	// OnError, if set, fires for every failure in addition to the item
	// being recorded in Failed.
	OnError func(err error, item T, index int)
}

// Run executes worker over every item with bounded concurrency. Items are
// partitioned into sequential windows of Concurrency; a window's
// invocations all start together and the executor waits for the whole
// window to settle before opening the next. One item's failure never
// aborts or skips the others.
//
// If the context is cancelled, items not yet started are recorded as
// failed with the context's error; in-flight items settle normally. The
// completeness guarantee holds regardless:
// len(Successful) + len(Failed) == len(items).
func Run[T, R any](
	ctx context.Context,
	items []T,
	worker func(ctx context.Context, item T, index int) (R, error),
	opts ExecutorOptions[T],
) Outcome[T, R] {
	start := time.Now()

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	outcome := Outcome[T, R]{
		Successful: make([]Result[T, R], 0, len(items)),
		Failed:     make([]Failure[T], 0),
	}

	total := len(items)
	completed := 0
	var mu sync.Mutex

	// settle records one item's outcome and fires the callbacks. The
	// mutex also serializes OnProgress so completed counts are reported
	// in order.
	settle := func(index int, item T, value R, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			outcome.Failed = append(outcome.Failed, Failure[T]{
				Item:  item,
				Err:   err,
				Index: index,
			})
			if opts.OnError != nil {
				opts.OnError(err, item, index)
			}
		} else {
			outcome.Successful = append(outcome.Successful, Result[T, R]{
				Item:  item,
				Value: value,
				Index: index,
			})
		}

		completed++
		if opts.OnProgress != nil {
			opts.OnProgress(completed, total, item)
		}
	}

	for windowStart := 0; windowStart < len(items); windowStart += concurrency {
		if err := ctx.Err(); err != nil {
			// Cancelled: account for everything not yet started.
			for i := windowStart; i < len(items); i++ {
				var zero R
				settle(i, items[i], zero, err)
			}
			break
		}

		windowEnd := windowStart + concurrency
		if windowEnd > len(items) {
			windowEnd = len(items)
		}

		var wg sync.WaitGroup
		for i := windowStart; i < windowEnd; i++ {
			wg.Add(1)
			go func(index int, item T) {
				defer wg.Done()
				value, err := worker(ctx, item, index)
				settle(index, item, value, err)
			}(i, items[i])
		}
		wg.Wait()

		if opts.InterBatchDelay > 0 && windowEnd < len(items) {
			select {
			case <-time.After(opts.InterBatchDelay):
			case <-ctx.Done():
			}
		}
	}

	outcome.Duration = time.Since(start)
	return outcome
}

// RunSequential is Run with a concurrency of one, for callers that need
// strict serialization of worker invocations.
func RunSequential[T, R any](
	ctx context.Context,
	items []T,
	worker func(ctx context.Context, item T, index int) (R, error),
	opts ExecutorOptions[T],
) Outcome[T, R] {
	opts.Concurrency = 1
	return Run(ctx, items, worker, opts)
}
