package stats

import (
	"math"
	"testing"

	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

func TestHistogram_MassEqualsPixelCount(t *testing.T) {
	buf := raster.MustNew(13, 9, 8, nil)
	for i := range buf.Pix {
		buf.Pix[i] = byte(i * 37)
	}

	for _, nClasses := range []int{1, 2, 16, 100, 256} {
		histo, err := Histogram(buf, nClasses)
		if err != nil {
			t.Fatalf("nClasses=%d: %v", nClasses, err)
		}
		if len(histo) != nClasses {
			t.Fatalf("nClasses=%d: got %d classes", nClasses, len(histo))
		}
		total := 0
		for _, n := range histo {
			total += n
		}
		if total != 13*9 {
			t.Errorf("nClasses=%d: mass = %d, want %d", nClasses, total, 13*9)
		}
	}
}

func TestHistogram_Bucketing(t *testing.T) {
	buf := raster.MustNew(2, 1, 8, nil)
	buf.SetSample(0, 0, 127) // 127*2/256 = 0
	buf.SetSample(1, 0, 128) // 128*2/256 = 1

	histo, err := Histogram(buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if histo[0] != 1 || histo[1] != 1 {
		t.Errorf("histogram = %v, want [1 1]", histo)
	}
}

func TestHistogram_ClassCountValidation(t *testing.T) {
	buf := raster.MustNew(4, 4, 8, nil)
	for _, nClasses := range []int{0, -1, 257} {
		if _, err := Histogram(buf, nClasses); err == nil {
			t.Errorf("nClasses=%d: expected configuration error", nClasses)
		}
	}
	// 2^depth itself is valid.
	if _, err := Histogram(buf, 256); err != nil {
		t.Errorf("nClasses=256: %v", err)
	}
}

func TestChannelHistogram_ConcentratesAtChannelValue(t *testing.T) {
	buf := raster.MustNew(6, 5, 24, raster.DirectRGB24())
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			buf.SetColor(x, y, raster.Color{R: 200, G: uint8(x * 40), B: uint8(y * 50)})
		}
	}

	histo, err := ChannelHistogram(buf, raster.Red)
	if err != nil {
		t.Fatal(err)
	}
	if len(histo) != 256 {
		t.Fatalf("got %d classes, want 256", len(histo))
	}
	for i, n := range histo {
		want := 0
		if i == 200 {
			want = 6 * 5
		}
		if n != want {
			t.Errorf("bucket %d = %d, want %d", i, n, want)
		}
	}
}

// A mask that reaches the sign bit must not smear into high buckets:
// extraction uses an unsigned shift.
func TestChannelHistogram_HighBitMask(t *testing.T) {
	pal := raster.NewDirect(0xFF000000, 0x00FF0000, 0x0000FF00, -24, -16, -8)
	buf := raster.MustNew(2, 2, 32, pal)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			buf.SetColor(x, y, raster.Color{R: 0xF0, G: 1, B: 2})
		}
	}

	histo, err := ChannelHistogram(buf, raster.Red)
	if err != nil {
		t.Fatal(err)
	}
	if histo[0xF0] != 4 {
		t.Errorf("bucket 0xF0 = %d, want 4 (sign extension artifact?)", histo[0xF0])
	}
}

func TestChannelHistogram_RequiresDirectPalette(t *testing.T) {
	indexed := raster.MustNew(4, 4, 8, raster.GrayRamp())
	if _, err := ChannelHistogram(indexed, raster.Red); err == nil {
		t.Error("expected error for indexed palette")
	}
	bare := raster.MustNew(4, 4, 8, nil)
	if _, err := ChannelHistogram(bare, raster.Red); err == nil {
		t.Error("expected error for palette-less buffer")
	}
}

func TestPSNR_SelfIsInfinite(t *testing.T) {
	gray := raster.MustNew(8, 8, 8, nil)
	for i := range gray.Pix {
		gray.Pix[i] = byte(i)
	}
	values, err := PSNR(gray, gray, raster.Gray)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 || !math.IsInf(values[0], 1) {
		t.Errorf("gray self-PSNR = %v, want [+Inf]", values)
	}

	rgb := raster.MustNew(8, 8, 24, raster.DirectRGB24())
	for i := range rgb.Pix {
		rgb.Pix[i] = byte(i * 3)
	}
	values, err = PSNR(rgb, rgb, raster.RGB)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 3 {
		t.Fatalf("rgb PSNR has %d channels, want 3", len(values))
	}
	for ch, v := range values {
		if !math.IsInf(v, 1) {
			t.Errorf("channel %d self-PSNR = %v, want +Inf", ch, v)
		}
	}
}

func TestPSNR_MaxError(t *testing.T) {
	a := raster.MustNew(4, 4, 8, nil) // all zero
	b := raster.MustNew(4, 4, 8, nil)
	for i := range b.Pix {
		b.Pix[i] = 255
	}

	values, err := PSNR(a, b, raster.Gray)
	if err != nil {
		t.Fatal(err)
	}
	// MSE = 255² → PSNR = 20·log10(255/255) = 0 dB.
	if math.Abs(values[0]) > 1e-9 {
		t.Errorf("PSNR = %v, want 0 dB", values[0])
	}
}

func TestPSNR_PerChannelIndependence(t *testing.T) {
	a := raster.MustNew(2, 2, 24, raster.DirectRGB24())
	b := a.Clone()
	// Disturb only the green channel.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			a.SetColor(x, y, raster.Color{R: 100, G: 100, B: 100})
			b.SetColor(x, y, raster.Color{R: 100, G: 110, B: 100})
		}
	}

	values, err := PSNR(a, b, raster.RGB)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(values[0], 1) || !math.IsInf(values[2], 1) {
		t.Errorf("untouched channels should be +Inf, got %v", values)
	}
	want := 20 * math.Log10(255/10.0)
	if math.Abs(values[1]-want) > 1e-9 {
		t.Errorf("green PSNR = %v, want %v", values[1], want)
	}
}

func TestPSNR_ShapeMismatch(t *testing.T) {
	a := raster.MustNew(4, 4, 8, nil)
	b := raster.MustNew(4, 5, 8, nil)
	if _, err := PSNR(a, b, raster.Gray); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestPSNR_IndexedUsesPalettes(t *testing.T) {
	// Two indexed buffers with the same indices but different palettes:
	// the comparison must happen in RGB space, not index space.
	palA := raster.NewIndexed([]raster.Color{{R: 10, G: 10, B: 10}})
	palB := raster.NewIndexed([]raster.Color{{R: 20, G: 10, B: 10}})
	a := raster.MustNew(3, 3, 8, palA)
	b := raster.MustNew(3, 3, 8, palB)

	values, err := PSNR(a, b, raster.Indexed)
	if err != nil {
		t.Fatal(err)
	}
	want := 20 * math.Log10(255/10.0)
	if math.Abs(values[0]-want) > 1e-9 {
		t.Errorf("red PSNR = %v, want %v", values[0], want)
	}
	if !math.IsInf(values[1], 1) || !math.IsInf(values[2], 1) {
		t.Errorf("identical channels should be +Inf, got %v", values)
	}
}

func BenchmarkHistogram(b *testing.B) {
	buf := raster.MustNew(512, 512, 8, nil)
	for i := range buf.Pix {
		buf.Pix[i] = byte(i * 13)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Histogram(buf, 256); err != nil {
			b.Fatal(err)
		}
	}
}
