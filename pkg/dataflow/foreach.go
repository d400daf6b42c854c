// Package dataflow runs work items through a bounded pool of workers.
package dataflow

import (
	"context"
	"sync"
	"time"
)

// Batches splits items into consecutive chunks of at most size elements.
func Batches[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) <= size {
		if len(items) == 0 {
			return nil
		}
		return [][]T{items}
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

// ForEach calls fn for every item and blocks until all items are done,
// an unhandled error occurs, or ctx is cancelled. It returns the first
// unhandled error, or ctx.Err() when cancelled.
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan T)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	worker := func() {
		defer wg.Done()
		for item := range input {
			err := run(ctx, cfg, item, fn)
			if err == nil {
				continue
			}
			if cfg.errorHandler != nil && cfg.errorHandler(err) {
				continue
			}
			errOnce.Do(func() {
				firstErr = err
				cancel()
			})
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case input <- item:
		}
	}
	close(input)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func run[T any](ctx context.Context, cfg *config, item T, fn func(context.Context, T) error) error {
	err := fn(ctx, item)
	for attempt := 1; err != nil && attempt <= cfg.maxRetries; attempt++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(attempt)):
			}
		}
		err = fn(ctx, item)
	}
	return err
}
