package common

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunParallel runs every task in its own goroutine and waits for all of
// them to return. The first task to fail cancels the context handed to the
// others and its error is the one returned.
func RunParallel(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return task(gctx)
		})
	}
	return g.Wait()
}

// Chunk splits elements into consecutive slices of at most size elements.
func Chunk[T any](elements []T, size int) [][]T {
	if size <= 0 {
		size = len(elements)
	}
	result := [][]T{}
	for i := 0; i < len(elements); i += size {
		end := i + size
		if end > len(elements) {
			end = len(elements)
		}
		result = append(result, elements[i:end])
	}
	return result
}
