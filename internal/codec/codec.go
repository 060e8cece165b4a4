// Package codec converts between the stdlib image types produced by file
// decoders and the raster buffers the kernel engines operate on. It is
// collaborator glue: the kernels never touch files or image.Image.
package codec

import (
	"fmt"
	"image"
	"image/color"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

// FromImage converts a decoded image to a raster buffer and reports the
// colour model the kernels should use:
//
//   - *image.Gray     → 8-bit intensity buffer, no palette, Gray
//   - *image.Paletted → 8-bit index buffer with an indexed palette, Indexed
//   - anything else   → 24-bit direct-RGB buffer (alpha plane extracted
//     when any pixel is not fully opaque), RGB
func FromImage(img image.Image) (*raster.Buffer, raster.ColorModel, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, fmt.Errorf("codec: empty image %dx%d", w, h)
	}

	switch src := img.(type) {
	case *image.Gray:
		buf := raster.MustNew(w, h, 8, nil)
		for y := 0; y < h; y++ {
			copy(buf.Pix[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return buf, raster.Gray, nil

	case *image.Paletted:
		if len(src.Palette) == 0 || len(src.Palette) > 256 {
			return nil, 0, fmt.Errorf("codec: unsupported palette size %d", len(src.Palette))
		}
		colors := make([]raster.Color, len(src.Palette))
		for i, c := range src.Palette {
			r, g, b, _ := c.RGBA()
			colors[i] = raster.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
		buf := raster.MustNew(w, h, 8, raster.NewIndexed(colors))
		for y := 0; y < h; y++ {
			copy(buf.Pix[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return buf, raster.Indexed, nil

	default:
		nrgba := imaging.Clone(img) // normalizes to *image.NRGBA
		buf := raster.MustNew(w, h, 24, raster.DirectRGB24())
		hasAlpha := false
		for y := 0; y < h; y++ {
			off := y * nrgba.Stride
			for x := 0; x < w; x++ {
				i := (y*w + x) * 3
				buf.Pix[i] = nrgba.Pix[off]
				buf.Pix[i+1] = nrgba.Pix[off+1]
				buf.Pix[i+2] = nrgba.Pix[off+2]
				if a := nrgba.Pix[off+3]; a < 255 {
					hasAlpha = true
				}
				off += 4
			}
		}
		if hasAlpha {
			buf.Alpha = make([]byte, w*h)
			for y := 0; y < h; y++ {
				off := y*nrgba.Stride + 3
				for x := 0; x < w; x++ {
					buf.Alpha[y*w+x] = nrgba.Pix[off]
					off += 4
				}
			}
		}
		return buf, raster.RGB, nil
	}
}

// ToImage converts a raster buffer back to a stdlib image for encoding.
func ToImage(buf *raster.Buffer) (image.Image, error) {
	w, h := buf.Width, buf.Height

	switch {
	case buf.Palette == nil:
		if buf.Depth != 8 {
			return nil, fmt.Errorf("codec: cannot encode palette-less %d-bit buffer", buf.Depth)
		}
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+w], buf.Pix[y*w:(y+1)*w])
		}
		return img, nil

	case !buf.Palette.Direct:
		if buf.Depth != 8 {
			return nil, fmt.Errorf("codec: cannot encode %d-bit indexed buffer", buf.Depth)
		}
		pal := make(color.Palette, len(buf.Palette.Colors))
		for i, c := range buf.Palette.Colors {
			pal[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
		img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+w], buf.Pix[y*w:(y+1)*w])
		}
		return img, nil

	default:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			off := y * img.Stride
			for x := 0; x < w; x++ {
				c := buf.ColorAt(x, y)
				img.Pix[off] = c.R
				img.Pix[off+1] = c.G
				img.Pix[off+2] = c.B
				img.Pix[off+3] = buf.AlphaAt(x, y)
				off += 4
			}
		}
		return img, nil
	}
}

// Load decodes an image file into a raster buffer.
func Load(path string) (*raster.Buffer, raster.ColorModel, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("codec: open %s: %w", path, err)
	}
	return FromImage(img)
}

// Save encodes a raster buffer to a file; the format follows the
// extension (png, jpg, gif, tif, bmp).
func Save(buf *raster.Buffer, path string) error {
	img, err := ToImage(buf)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("codec: save %s: %w", path, err)
	}
	return nil
}
