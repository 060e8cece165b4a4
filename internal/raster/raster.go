// Package raster defines the pixel buffer model shared by every kernel in
// this module: a width×height payload of fixed-depth samples plus an
// optional palette that maps samples to RGB.
//
// Two palette kinds exist:
//   - indexed: the sample is an index into an ordered colour table
//   - direct:  the sample is packed RGB, split via per-channel mask+shift
//
// Sample accessors deliberately perform no bounds checking — callers reflect
// or clamp coordinates first (see internal/convolve). Out-of-range access is
// a programmer error and panics like any slice index.
package raster

import "fmt"

// ColorModel selects how kernel engines interpret samples.
type ColorModel int

const (
	Gray ColorModel = iota // sample is the intensity
	Indexed                // sample is a palette index
	RGB                    // sample is packed direct colour
)

func (m ColorModel) String() string {
	switch m {
	case Gray:
		return "gray"
	case Indexed:
		return "indexed"
	case RGB:
		return "rgb"
	}
	return fmt.Sprintf("ColorModel(%d)", int(m))
}

// Channel selects one component of a direct palette.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Color is one 8-bit-per-channel RGB triple.
type Color struct {
	R, G, B uint8
}

// Palette maps samples to colours. Exactly one representation is active:
// Colors for indexed palettes, the mask/shift sextet for direct ones.
//
// Shift signs follow the packed-colour convention: extracting a channel
// computes (sample & mask) << shift for shift >= 0 and an unsigned
// (sample & mask) >> -shift otherwise. Packing is the exact inverse.
type Palette struct {
	Direct bool

	Colors []Color // indexed only

	RedMask, GreenMask, BlueMask    uint32 // direct only
	RedShift, GreenShift, BlueShift int
}

// NewIndexed builds an indexed palette from an ordered colour table.
func NewIndexed(colors []Color) *Palette {
	return &Palette{Colors: colors}
}

// NewDirect builds a direct palette from per-channel masks and shifts.
func NewDirect(rMask, gMask, bMask uint32, rShift, gShift, bShift int) *Palette {
	return &Palette{
		Direct:     true,
		RedMask:    rMask,
		RedShift:   rShift,
		GreenMask:  gMask,
		GreenShift: gShift,
		BlueMask:   bMask,
		BlueShift:  bShift,
	}
}

// DirectRGB24 is the common 0xRRGGBB packing.
func DirectRGB24() *Palette {
	return NewDirect(0xFF0000, 0x00FF00, 0x0000FF, -16, -8, 0)
}

// GrayRamp returns the 256-entry identity gray palette used for 8-bit
// intensity buffers that still need RGB resolution (e.g. PSNR on gray
// images treated as indexed).
func GrayRamp() *Palette {
	colors := make([]Color, 256)
	for i := range colors {
		v := uint8(i)
		colors[i] = Color{v, v, v}
	}
	return NewIndexed(colors)
}

// Extract pulls one channel value out of a packed direct sample.
// The mask may cover the sign bit, so all arithmetic is unsigned.
func Extract(mask uint32, shift int, sample int) int {
	v := uint32(sample) & mask
	if shift >= 0 {
		return int(v << uint(shift))
	}
	return int(v >> uint(-shift))
}

func pack(mask uint32, shift int, value int) uint32 {
	v := uint32(value)
	if shift >= 0 {
		return (v >> uint(shift)) & mask
	}
	return (v << uint(-shift)) & mask
}

// ChannelCoding resolves a channel selector to its mask+shift pair.
// Only meaningful for direct palettes.
func (p *Palette) ChannelCoding(ch Channel) (mask uint32, shift int) {
	switch ch {
	case Red:
		return p.RedMask, p.RedShift
	case Green:
		return p.GreenMask, p.GreenShift
	default:
		return p.BlueMask, p.BlueShift
	}
}

// ColorAt resolves a sample to its colour.
func (p *Palette) ColorAt(sample int) Color {
	if p.Direct {
		return Color{
			R: uint8(Extract(p.RedMask, p.RedShift, sample)),
			G: uint8(Extract(p.GreenMask, p.GreenShift, sample)),
			B: uint8(Extract(p.BlueMask, p.BlueShift, sample)),
		}
	}
	return p.Colors[sample]
}

// Sample is the inverse of ColorAt. Direct palettes pack exactly; indexed
// palettes return the first exact match, falling back to the nearest entry
// by squared distance.
func (p *Palette) Sample(c Color) int {
	if p.Direct {
		return int(pack(p.RedMask, p.RedShift, int(c.R)) |
			pack(p.GreenMask, p.GreenShift, int(c.G)) |
			pack(p.BlueMask, p.BlueShift, int(c.B)))
	}

	best, bestDist := 0, 1<<31
	for i, pc := range p.Colors {
		if pc == c {
			return i
		}
		dr := int(pc.R) - int(c.R)
		dg := int(pc.G) - int(c.G)
		db := int(pc.B) - int(c.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Buffer is a caller-owned raster: Width×Height samples of Depth bits each,
// packed big-endian into Pix, plus an optional per-pixel Alpha plane.
// Every stored sample lies in [0, 2^Depth).
type Buffer struct {
	Width, Height int
	Depth         int // bits per sample: 8, 16, 24 or 32
	Palette       *Palette
	Pix           []byte
	Alpha         []byte // optional, Width*Height entries
}

// New allocates a zeroed buffer. Depth must be byte aligned.
func New(w, h, depth int, p *Palette) (*Buffer, error) {
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("raster: unsupported depth %d", depth)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid dimensions %dx%d", w, h)
	}
	return &Buffer{
		Width:   w,
		Height:  h,
		Depth:   depth,
		Palette: p,
		Pix:     make([]byte, w*h*(depth/8)),
	}, nil
}

// MustNew is New for fixtures and tests with known-good arguments.
func MustNew(w, h, depth int, p *Palette) *Buffer {
	b, err := New(w, h, depth, p)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesPerSample returns the payload stride of one sample.
func (b *Buffer) BytesPerSample() int { return b.Depth / 8 }

// MaxSamples is the number of representable sample values, 2^Depth.
func (b *Buffer) MaxSamples() int { return 1 << uint(b.Depth) }

// NewLike allocates an empty buffer with identical shape, depth and palette.
func (b *Buffer) NewLike() *Buffer {
	out := &Buffer{
		Width:   b.Width,
		Height:  b.Height,
		Depth:   b.Depth,
		Palette: b.Palette,
		Pix:     make([]byte, len(b.Pix)),
	}
	if b.Alpha != nil {
		out.Alpha = make([]byte, len(b.Alpha))
	}
	return out
}

// Clone deep-copies payload and alpha; the palette is shared (immutable).
func (b *Buffer) Clone() *Buffer {
	out := b.NewLike()
	copy(out.Pix, b.Pix)
	if b.Alpha != nil {
		copy(out.Alpha, b.Alpha)
	}
	return out
}

// Sample reads the raw sample at (x, y). No bounds check.
func (b *Buffer) Sample(x, y int) int {
	switch b.Depth {
	case 8:
		return int(b.Pix[y*b.Width+x])
	case 16:
		i := (y*b.Width + x) * 2
		return int(b.Pix[i])<<8 | int(b.Pix[i+1])
	case 24:
		i := (y*b.Width + x) * 3
		return int(b.Pix[i])<<16 | int(b.Pix[i+1])<<8 | int(b.Pix[i+2])
	default: // 32
		i := (y*b.Width + x) * 4
		return int(uint32(b.Pix[i])<<24 | uint32(b.Pix[i+1])<<16 |
			uint32(b.Pix[i+2])<<8 | uint32(b.Pix[i+3]))
	}
}

// SetSample writes a raw sample at (x, y). The value must already lie in
// [0, 2^Depth). No bounds check.
func (b *Buffer) SetSample(x, y, v int) {
	switch b.Depth {
	case 8:
		b.Pix[y*b.Width+x] = byte(v)
	case 16:
		i := (y*b.Width + x) * 2
		b.Pix[i] = byte(v >> 8)
		b.Pix[i+1] = byte(v)
	case 24:
		i := (y*b.Width + x) * 3
		b.Pix[i] = byte(v >> 16)
		b.Pix[i+1] = byte(v >> 8)
		b.Pix[i+2] = byte(v)
	default: // 32
		i := (y*b.Width + x) * 4
		b.Pix[i] = byte(v >> 24)
		b.Pix[i+1] = byte(v >> 16)
		b.Pix[i+2] = byte(v >> 8)
		b.Pix[i+3] = byte(v)
	}
}

// ColorAt resolves the pixel at (x, y) through the palette.
func (b *Buffer) ColorAt(x, y int) Color {
	return b.Palette.ColorAt(b.Sample(x, y))
}

// SetColor packs a colour through the palette and stores it at (x, y).
func (b *Buffer) SetColor(x, y int, c Color) {
	b.SetSample(x, y, b.Palette.Sample(c))
}

// AlphaAt reads the alpha plane; 255 when the buffer carries none.
func (b *Buffer) AlphaAt(x, y int) uint8 {
	if b.Alpha == nil {
		return 255
	}
	return b.Alpha[y*b.Width+x]
}

// SetAlpha writes the alpha plane, allocating it on first use.
func (b *Buffer) SetAlpha(x, y int, a uint8) {
	if b.Alpha == nil {
		b.Alpha = make([]byte, b.Width*b.Height)
		for i := range b.Alpha {
			b.Alpha[i] = 255
		}
	}
	b.Alpha[y*b.Width+x] = a
}

// Clamp8 clamps an int to [0, 255].
func Clamp8(v int) int {
	// Single test in the usual in-range case.
	if v&^0xFF != 0 {
		if v < 0 {
			return 0
		}
		return 255
	}
	return v
}
