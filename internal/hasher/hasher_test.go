package hasher

import (
	"testing"

	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

func TestBufferHash_CloneMatches(t *testing.T) {
	buf := raster.MustNew(16, 16, 8, nil)
	for i := range buf.Pix {
		buf.Pix[i] = byte(i)
	}
	if BufferHash(buf) != BufferHash(buf.Clone()) {
		t.Error("clone hashes differently")
	}
}

func TestBufferHash_SensitiveToContent(t *testing.T) {
	a := raster.MustNew(8, 8, 8, nil)
	b := a.Clone()
	b.SetSample(3, 3, 1)
	if BufferHash(a) == BufferHash(b) {
		t.Error("single-pixel change not reflected in hash")
	}
}

func TestBufferHash_SensitiveToShape(t *testing.T) {
	a := raster.MustNew(4, 8, 8, nil)
	b := raster.MustNew(8, 4, 8, nil)
	// Same payload length, different geometry.
	if BufferHash(a) == BufferHash(b) {
		t.Error("geometry not reflected in hash")
	}
}

func TestBufferHash_SensitiveToAlpha(t *testing.T) {
	a := raster.MustNew(4, 4, 8, nil)
	b := a.Clone()
	b.SetAlpha(0, 0, 7)
	if BufferHash(a) == BufferHash(b) {
		t.Error("alpha plane not reflected in hash")
	}
}

func TestContentHash_Truncation(t *testing.T) {
	data := []byte("raster payload")
	full := ContentHash(data, 0)
	if len(full) != 16 {
		t.Errorf("full hash has %d chars, want 16", len(full))
	}
	short := ContentHash(data, 8)
	if len(short) != 8 || full[:8] != short {
		t.Errorf("truncated hash %q not a prefix of %q", short, full)
	}
}
