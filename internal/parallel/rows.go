// Package parallel provides the fork-join row scheduler every whole-image
// operation in this module runs on.
//
// The model is map/reduce over a contiguous index range: the range is split
// into one chunk per worker, each worker owns a private accumulator for its
// chunk, and after all workers join the accumulators are merged one at a
// time in ascending chunk-start order. The ordered merge makes any reduction
// deterministic regardless of worker scheduling.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

// Workers returns the worker count for n rows: GOMAXPROCS clamped to
// [1, n].
func Workers(n int) int {
	w := runtime.GOMAXPROCS(0)
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// ForRows partitions [0, n) across workers. Each worker calls newAcc once,
// then body for every row of its chunk. After all workers have joined,
// reduce is called once per worker in increasing chunk-start order.
//
// A body error aborts that worker's remaining rows; its accumulator is
// discarded (never reduced). All collected errors are joined and returned
// after the join, so a failure can neither corrupt the merge nor deadlock
// the remaining workers.
func ForRows[A any](n int, newAcc func() A, body func(row int, acc A) error, reduce func(acc A)) error {
	if n <= 0 {
		return nil
	}
	workers := Workers(n)

	if workers == 1 {
		acc := newAcc()
		for row := 0; row < n; row++ {
			if err := body(row, acc); err != nil {
				return err
			}
		}
		reduce(acc)
		return nil
	}

	accs := make([]A, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * n / workers
		hi := (w + 1) * n / workers

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			acc := newAcc()
			for row := lo; row < hi; row++ {
				if err := body(row, acc); err != nil {
					errs[w] = err
					return
				}
			}
			accs[w] = acc
		}(w, lo, hi)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	// Single-threaded merge, ascending chunk order.
	for w := 0; w < workers; w++ {
		reduce(accs[w])
	}
	return nil
}

// For is the accumulator-free variant for element-wise operations whose
// per-row writes land in disjoint output regions.
func For(n int, body func(row int) error) error {
	return ForRows(n,
		func() struct{} { return struct{}{} },
		func(row int, _ struct{}) error { return body(row) },
		func(struct{}) {},
	)
}
