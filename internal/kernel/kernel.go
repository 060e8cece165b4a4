// Package kernel defines convolution kernels and a registry of stock
// presets.
package kernel

import "fmt"

// Kernel is a rectangular matrix of signed integer weights together with
// a normalization denominator and an intensity offset applied after
// division. Rows and columns may differ in length, but the matrix must be
// rectangular. Odd and even sizes are both valid; the anchor is the cell
// at (len/2, len/2).
type Kernel struct {
	Weights [][]int
	Den     int // normalization denominator, must be > 0
	Offset  int // added after division, before clamping
}

// Separable is a kernel expressed as a row vector and a column vector
// applied in two sequential 1D passes, each with its own normalization.
type Separable struct {
	Row, Col             []int
	RowDen, ColDen       int
	RowOffset, ColOffset int
}

// Validate checks shape and normalization. A zero-area or ragged matrix
// and a non-positive denominator are configuration errors.
func (k Kernel) Validate() error {
	if len(k.Weights) == 0 || len(k.Weights[0]) == 0 {
		return fmt.Errorf("kernel: empty weight matrix")
	}
	width := len(k.Weights[0])
	for j, row := range k.Weights {
		if len(row) != width {
			return fmt.Errorf("kernel: ragged matrix: row %d has %d weights, want %d", j, len(row), width)
		}
	}
	if k.Den <= 0 {
		return fmt.Errorf("kernel: invalid normalization denominator %d", k.Den)
	}
	return nil
}

// Size returns (height, width) of the weight matrix.
func (k Kernel) Size() (h, w int) {
	if len(k.Weights) == 0 {
		return 0, 0
	}
	return len(k.Weights), len(k.Weights[0])
}

// Validate checks both 1D passes.
func (s Separable) Validate() error {
	if len(s.Row) == 0 || len(s.Col) == 0 {
		return fmt.Errorf("kernel: empty separable vector")
	}
	if s.RowDen <= 0 || s.ColDen <= 0 {
		return fmt.Errorf("kernel: invalid normalization denominator %d/%d", s.RowDen, s.ColDen)
	}
	return nil
}

// RowKernel returns the horizontal pass as a 1×n kernel.
func (s Separable) RowKernel() Kernel {
	return Kernel{Weights: [][]int{s.Row}, Den: s.RowDen, Offset: s.RowOffset}
}

// ColKernel returns the vertical pass as an n×1 kernel.
func (s Separable) ColKernel() Kernel {
	w := make([][]int, len(s.Col))
	for i, v := range s.Col {
		w[i] = []int{v}
	}
	return Kernel{Weights: w, Den: s.ColDen, Offset: s.ColOffset}
}

// Outer expands the separable pair to its equivalent full 2D kernel
// (outer product of column and row, denominators multiplied). Offsets do
// not compose exactly across the intermediate clamp, so Outer carries the
// sum of both offsets as an approximation.
func (s Separable) Outer() Kernel {
	w := make([][]int, len(s.Col))
	for j, cv := range s.Col {
		w[j] = make([]int, len(s.Row))
		for i, rv := range s.Row {
			w[j][i] = cv * rv
		}
	}
	return Kernel{Weights: w, Den: s.RowDen * s.ColDen, Offset: s.RowOffset + s.ColOffset}
}
