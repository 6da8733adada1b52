// Package batch runs one morphology operation across a collection of
// neurons. Per-neuron work is independent, so it fans out over a worker
// pool; results always come back in the input order, whatever order the
// workers finished in.
package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/arborlabs/arbor/pkg/observability"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// Op is one operation applied to a single neuron. Ops must not mutate
// the given skeleton unless the caller arranged in-place semantics for
// the whole batch; concurrent workers read their own neurons only.
type Op[T any] func(ctx context.Context, sk *skeleton.Skeleton) (T, error)

// Result pairs one neuron's output with the neuron it came from.
type Result[T any] struct {
	SkeletonID int64
	Value      T
	Err        error
}

// Options controls pool size and failure policy.
type Options struct {
	// Workers is the pool size. Values below 1 mean runtime.NumCPU().
	Workers int
	// BestEffort records per-neuron failures in the results instead of
	// aborting the whole batch on the first one.
	BestEffort bool
	// Logger receives batch progress. Nil means log.Default().
	Logger *log.Logger
}

// Run applies op to every neuron in the collection and returns the
// results in input order. In strict mode (the default) the first failure
// cancels the remaining work and is returned; in best-effort mode every
// neuron is attempted and failures live in the per-neuron results.
func Run[T any](ctx context.Context, neurons skeleton.List, name string, op Op[T], opts Options) ([]Result[T], error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(neurons) {
		workers = len(neurons)
	}

	jobID := uuid.NewString()
	logger.Info("starting batch", "job", jobID, "op", name, "neurons", len(neurons), "workers", workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result[T], len(neurons))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sk := neurons[i]
				observability.Transform().OnTransformStart(ctx, name, sk.ID)
				start := time.Now()
				value, err := op(ctx, sk)
				observability.Transform().OnTransformComplete(ctx, name, sk.ID, time.Since(start), err)

				results[i] = Result[T]{SkeletonID: sk.ID, Value: value, Err: err}
				if err != nil && !opts.BestEffort {
					cancel()
					return
				}
			}
		}()
	}

feed:
	for i := range neurons {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if !opts.BestEffort {
				logger.Error("batch aborted", "job", jobID, "op", name, "skeleton", r.SkeletonID, "error", r.Err)
				return nil, r.Err
			}
		}
	}

	logger.Info("batch finished", "job", jobID, "op", name, "neurons", len(neurons), "failed", failed)
	return results, nil
}
