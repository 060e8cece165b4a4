// Package stats computes image statistics: histograms (uniform bucketing
// and per-channel extraction) and PSNR. All pixel sweeps run on the
// fork-join scheduler in internal/parallel with private per-worker
// accumulators merged in deterministic chunk order.
package stats

import (
	"fmt"
	"math"

	"github.com/AnyUserName/rasterop-cli/internal/parallel"
	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

// Histogram buckets every sample of buf into nClasses uniform classes:
// sample s lands in class s*nClasses/2^depth. nClasses must lie in
// (0, 2^depth].
func Histogram(buf *raster.Buffer, nClasses int) ([]int, error) {
	maxClasses := buf.MaxSamples()
	if nClasses <= 0 || nClasses > maxClasses {
		return nil, fmt.Errorf("stats: class count %d outside (0, %d]", nClasses, maxClasses)
	}

	width := buf.Width
	histo := make([]int, nClasses)

	err := parallel.ForRows(buf.Height,
		func() []int { return make([]int, nClasses) },
		func(v int, h []int) error {
			for u := 0; u < width; u++ {
				h[buf.Sample(u, v)*nClasses/maxClasses]++
			}
			return nil
		},
		func(h []int) {
			for i, n := range h {
				histo[i] += n
			}
		},
	)
	if err != nil {
		return nil, err
	}
	return histo, nil
}

// ChannelHistogram buckets one channel of a direct-palette buffer into
// 256 classes by raw extracted value. The channel's shift may be negative;
// extraction then uses an unsigned right shift so a sign-bit mask cannot
// smear into high buckets.
func ChannelHistogram(buf *raster.Buffer, ch raster.Channel) ([]int, error) {
	if buf.Palette == nil || !buf.Palette.Direct {
		return nil, fmt.Errorf("stats: channel histogram requires a direct palette")
	}
	mask, shift := buf.Palette.ChannelCoding(ch)

	width := buf.Width
	histo := make([]int, 256)

	err := parallel.ForRows(buf.Height,
		func() []int { return make([]int, 256) },
		func(v int, h []int) error {
			for u := 0; u < width; u++ {
				h[raster.Extract(mask, shift, buf.Sample(u, v))]++
			}
			return nil
		},
		func(h []int) {
			for i, n := range h {
				histo[i] += n
			}
		},
	)
	if err != nil {
		return nil, err
	}
	return histo, nil
}

// PSNR computes the peak signal-to-noise ratio between two buffers of the
// same shape. For Gray the result has one entry; for Indexed and RGB both
// pixels are resolved through their own palettes and the result carries
// one entry per channel (R, G, B).
//
// Identical content has zero mean squared error; the mathematically
// infinite ratio is returned as +Inf rather than tripping log10(0).
func PSNR(a, b *raster.Buffer, model raster.ColorModel) ([]float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("stats: psnr shape mismatch: %dx%d vs %dx%d",
			a.Width, a.Height, b.Width, b.Height)
	}

	channels := 3
	if model == raster.Gray {
		channels = 1
	}
	if channels == 3 && (a.Palette == nil || b.Palette == nil) {
		return nil, fmt.Errorf("stats: psnr on %s buffers requires palettes", model)
	}

	width := a.Width
	sums := make([]float64, channels)

	err := parallel.ForRows(a.Height,
		func() []float64 { return make([]float64, channels) },
		func(v int, sum []float64) error {
			if channels == 1 {
				for u := 0; u < width; u++ {
					d := float64(b.Sample(u, v) - a.Sample(u, v))
					sum[0] += d * d
				}
				return nil
			}
			for u := 0; u < width; u++ {
				c1 := a.Palette.ColorAt(a.Sample(u, v))
				c2 := b.Palette.ColorAt(b.Sample(u, v))
				dr := float64(int(c2.R) - int(c1.R))
				dg := float64(int(c2.G) - int(c1.G))
				db := float64(int(c2.B) - int(c1.B))
				sum[0] += dr * dr
				sum[1] += dg * dg
				sum[2] += db * db
			}
			return nil
		},
		func(sum []float64) {
			for i, s := range sum {
				sums[i] += s
			}
		},
	)
	if err != nil {
		return nil, err
	}

	size := float64(a.Width * a.Height)
	psnr := make([]float64, channels)
	for i, s := range sums {
		if s == 0 {
			psnr[i] = math.Inf(1)
			continue
		}
		psnr[i] = 20 * math.Log10(255/math.Sqrt(s/size))
	}
	return psnr, nil
}
