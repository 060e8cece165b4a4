// Package region implements geometric sub-image operations: crop and
// insert.
package region

import (
	"fmt"

	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

// Crop copies the w×h rectangle at (x, y) into a new buffer with the same
// depth and palette. When the source carries an alpha plane the same
// rectangle of alpha is copied alongside.
//
// The rectangle must lie fully inside buf; violating that is a caller
// contract violation and panics via the underlying payload access, the
// same way an out-of-range slice index would.
func Crop(buf *raster.Buffer, x, y, w, h int) *raster.Buffer {
	out := raster.MustNew(w, h, buf.Depth, buf.Palette)
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			out.SetSample(u, v, buf.Sample(u+x, v+y))
		}
		if buf.Alpha != nil {
			for u := 0; u < w; u++ {
				out.SetAlpha(u, v, buf.AlphaAt(u+x, v+y))
			}
		}
	}
	return out
}

// Insert copies src into dst starting at (x, y), silently clipping at
// dst's right and bottom edges. Both buffers must share the same depth;
// on mismatch dst is left untouched. The alpha plane is not modified.
func Insert(dst, src *raster.Buffer, x, y int) error {
	if dst.Depth != src.Depth {
		return &DepthMismatchError{Dst: dst.Depth, Src: src.Depth}
	}
	x2 := min(dst.Width, x+src.Width)
	y2 := min(dst.Height, y+src.Height)

	for v := y; v < y2; v++ {
		for u := x; u < x2; u++ {
			dst.SetSample(u, v, src.Sample(u-x, v-y))
		}
	}
	return nil
}

// DepthMismatchError reports an Insert between buffers of different bit
// depths.
type DepthMismatchError struct {
	Dst, Src int
}

func (e *DepthMismatchError) Error() string {
	return fmt.Sprintf("region: depth mismatch: dst %d bit, src %d bit", e.Dst, e.Src)
}
