// Package batch serializes many objects with bounded concurrency.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// SerializeFunc renders a single object.
type SerializeFunc func(ctx context.Context, object any) (string, error)

// Options configures a batch run.
type Options struct {
	// MaxConcurrency limits the number of concurrent serializations (0 = number of CPUs)
	MaxConcurrency int

	// StopOnFirstError cancels the remaining items after the first failure
	StopOnFirstError bool

	// ProgressCallback is called after each item is serialized
	ProgressCallback func(done, total, index int, err error)
}

// Result contains the outcome of a batch run.
type Result struct {
	// Outputs holds one document per input, empty where the item failed or was skipped
	Outputs []string

	Succeeded int
	Failed    int
	// Skipped counts items never started because the run was cancelled
	Skipped int
	Total   int

	// Errors are ordered by index
	Errors []Error

	Duration time.Duration
}

// Error is the failure of one item.
type Error struct {
	Index int
	Err   error
}

func (e Error) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e Error) Unwrap() error {
	return e.Err
}

func withDefaults(opts *Options) Options {
	o := Options{MaxConcurrency: runtime.NumCPU()}
	if opts == nil {
		return o
	}
	if opts.MaxConcurrency > 0 {
		o.MaxConcurrency = opts.MaxConcurrency
	}
	o.StopOnFirstError = opts.StopOnFirstError
	o.ProgressCallback = opts.ProgressCallback
	return o
}

// Run serializes objects with fn. Outputs keep the order of objects. With
// StopOnFirstError the first failure is returned as is and the items not yet
// started are skipped; otherwise failures are only reported in the result.
func Run(ctx context.Context, fn SerializeFunc, objects []any, opts *Options) (*Result, error) {
	o := withDefaults(opts)
	result := &Result{
		Outputs: make([]string, len(objects)),
		Total:   len(objects),
	}
	if len(objects) == 0 {
		return result, nil
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.MaxConcurrency)

	var mu sync.Mutex
	started := 0
	for i, object := range objects {
		if gctx.Err() != nil {
			break
		}
		started++
		g.Go(func() error {
			if gctx.Err() != nil {
				mu.Lock()
				result.Skipped++
				mu.Unlock()
				return nil
			}

			out, err := fn(gctx, object)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, Error{Index: i, Err: err})
			} else {
				result.Outputs[i] = out
				result.Succeeded++
			}
			if o.ProgressCallback != nil {
				o.ProgressCallback(result.Succeeded+result.Failed, result.Total, i, err)
			}
			if err != nil && o.StopOnFirstError {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	result.Skipped += len(objects) - started
	result.Duration = time.Since(start)
	slices.SortFunc(result.Errors, func(a, b Error) int { return a.Index - b.Index })

	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
