package parallel

import (
	"errors"
	"sort"
	"sync/atomic"
	"testing"
)

func TestForRows_CoversEveryRowOnce(t *testing.T) {
	const n = 1000
	var hits [n]int32

	err := For(n, func(row int) error {
		atomic.AddInt32(&hits[row], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for row, h := range hits {
		if h != 1 {
			t.Fatalf("row %d visited %d times", row, h)
		}
	}
}

func TestForRows_ReduceSum(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 1023} {
		total := 0
		err := ForRows(n,
			func() *int { v := 0; return &v },
			func(row int, acc *int) error {
				*acc += row
				return nil
			},
			func(acc *int) { total += *acc },
		)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		want := n * (n - 1) / 2
		if total != want {
			t.Errorf("n=%d: sum = %d, want %d", n, total, want)
		}
	}
}

// Each accumulator remembers the first row of its chunk; the contract
// says reduce runs in ascending chunk-start order.
func TestForRows_ReduceOrder(t *testing.T) {
	const n = 512
	var starts []int

	err := ForRows(n,
		func() *int { v := -1; return &v },
		func(row int, acc *int) error {
			if *acc == -1 {
				*acc = row
			}
			return nil
		},
		func(acc *int) { starts = append(starts, *acc) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(starts) == 0 {
		t.Fatal("reduce never called")
	}
	if !sort.IntsAreSorted(starts) {
		t.Errorf("reduce order not ascending by chunk start: %v", starts)
	}
}

func TestForRows_ZeroRows(t *testing.T) {
	called := false
	err := ForRows(0,
		func() int { return 0 },
		func(int, int) error { called = true; return nil },
		func(int) { called = true },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("body or reduce called for empty range")
	}
}

func TestForRows_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	total := 0

	err := ForRows(100,
		func() *int { v := 0; return &v },
		func(row int, acc *int) error {
			if row == 41 {
				return boom
			}
			*acc++
			return nil
		},
		func(acc *int) { total += *acc },
	)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	// The failing worker's accumulator is discarded, so the merged total
	// can never reach the full row count.
	if total >= 100 {
		t.Errorf("failed worker's partial result was reduced: total = %d", total)
	}
}

func TestForRows_ErrorDoesNotStopOtherWorkers(t *testing.T) {
	var visited int32
	err := For(1000, func(row int) error {
		if row == 0 {
			return errors.New("first row fails")
		}
		atomic.AddInt32(&visited, 1)
		return nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// Workers other than the failing one run their chunks to completion.
	if visited == 0 {
		t.Error("no other rows ran")
	}
}

func TestWorkers_Clamped(t *testing.T) {
	if w := Workers(1); w != 1 {
		t.Errorf("Workers(1) = %d, want 1", w)
	}
	if w := Workers(1 << 20); w < 1 {
		t.Errorf("Workers(big) = %d, want >= 1", w)
	}
	for _, n := range []int{1, 2, 16, 4096} {
		if w := Workers(n); w > n {
			t.Errorf("Workers(%d) = %d, exceeds row count", n, w)
		}
	}
}
