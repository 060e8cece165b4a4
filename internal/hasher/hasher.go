// Package hasher provides xxHash64 fingerprints for pixel buffers and
// encoded outputs. Fingerprints identify a buffer's exact content in CLI
// reports and golden tests without storing the pixels themselves.
package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/rasterop-cli/internal/raster"
)

// BufferHash fingerprints a raster buffer: shape, depth, payload and
// alpha plane all contribute, so two buffers hash equal iff they are
// pixel-identical with the same geometry.
func BufferHash(buf *raster.Buffer) string {
	h := xxhash.New()

	var hdr [12]byte
	binary.BigEndian.PutUint32(hdr[0:], uint32(buf.Width))
	binary.BigEndian.PutUint32(hdr[4:], uint32(buf.Height))
	binary.BigEndian.PutUint32(hdr[8:], uint32(buf.Depth))
	h.Write(hdr[:])
	h.Write(buf.Pix)
	if buf.Alpha != nil {
		h.Write(buf.Alpha)
	}

	return hex.EncodeToString(uint64ToBytes(h.Sum64()))
}

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters. 16 hex chars (64 bits) is collision-safe
// for practical image counts.
func ContentHash(data []byte, hexLen int) string {
	full := hex.EncodeToString(uint64ToBytes(xxhash.Sum64(data)))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
