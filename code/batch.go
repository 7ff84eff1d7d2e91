package code

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelRows splits [0, rows) into at most workers contiguous chunks and
// calls fn on each chunk concurrently. Chunks never overlap, so fn may write
// its rows of a shared output without locking. A workers value of zero or
// less selects GOMAXPROCS. The first error returned by fn is returned.
func ParallelRows(rows, workers int, fn func(lo, hi int) error) error {
	if rows <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, rows)
	if workers == 1 {
		return fn(0, rows)
	}

	chunk := (rows + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < rows; lo += chunk {
		lo, hi := lo, min(lo+chunk, rows)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
