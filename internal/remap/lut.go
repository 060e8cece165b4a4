// Package remap applies point operations to raster buffers through
// 256-entry lookup tables. Table application is a parallel element-wise
// map over the raw payload: every byte index is independent, so workers
// share nothing.
package remap

import (
	"fmt"
	"math"

	"github.com/AnyUserName/rasterop-cli/internal/parallel"
	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

// chunk is the payload span one scheduler row covers. Scheduling single
// bytes would drown the work in dispatch overhead.
const chunk = 64 << 10

// Apply remaps every payload byte of buf through lut, in place. Valid for
// 8-bit samples and for 24-bit direct colour, where each payload byte is
// one 8-bit channel and byte-wise remapping applies the point operation
// per channel. Packings whose channels straddle byte boundaries (16- and
// 32-bit samples) are rejected.
func Apply(buf *raster.Buffer, lut *[256]uint8) error {
	if buf.Depth != 8 && buf.Depth != 24 {
		return fmt.Errorf("remap: lut application requires 8-bit samples or 24-bit direct colour, have depth %d", buf.Depth)
	}
	pix := buf.Pix
	n := (len(pix) + chunk - 1) / chunk

	return parallel.For(n, func(c int) error {
		lo := c * chunk
		hi := min(lo+chunk, len(pix))
		for i := lo; i < hi; i++ {
			pix[i] = lut[pix[i]]
		}
		return nil
	})
}

// Invert returns the negative table: v -> 255-v.
func Invert() *[256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(255 - i)
	}
	return &lut
}

// Brightness returns a table adding delta to every value, clamped.
func Brightness(delta int) *[256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(raster.Clamp8(i + delta))
	}
	return &lut
}

// Contrast returns a linear stretch around mid-gray by the given factor
// (1.0 is identity).
func Contrast(factor float64) *[256]uint8 {
	var lut [256]uint8
	for i := range lut {
		v := factor*(float64(i)-128) + 128
		lut[i] = uint8(raster.Clamp8(int(math.Round(v))))
	}
	return &lut
}

// Gamma returns the power-law table v -> 255*(v/255)^(1/g).
func Gamma(g float64) (*[256]uint8, error) {
	if g <= 0 {
		return nil, fmt.Errorf("remap: gamma must be positive, have %g", g)
	}
	var lut [256]uint8
	inv := 1 / g
	for i := range lut {
		v := 255 * math.Pow(float64(i)/255, inv)
		lut[i] = uint8(raster.Clamp8(int(math.Round(v))))
	}
	return &lut, nil
}
