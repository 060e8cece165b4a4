package convolve

// Reflect maps a coordinate into [0, length) by mirroring at both
// boundaries: negative coordinates map via -c, coordinates >= length via
// 2*length-c-1. In-range coordinates are returned unchanged.
//
// Kernels whose radius exceeds the image dimension push coordinates out
// far enough that one mirror pass is not sufficient, so the mapping is
// reapplied until the coordinate lands in range. Each pass strictly
// shrinks the out-of-range distance, so the loop terminates for any
// length >= 1.
func Reflect(c, length int) int {
	for c < 0 || c >= length {
		if c < 0 {
			c = -c
		}
		if c >= length {
			c = 2*length - c - 1
		}
	}
	return c
}
