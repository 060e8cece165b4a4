package convolve

import "testing"

func TestReflect_IdentityInRange(t *testing.T) {
	for _, length := range []int{1, 2, 3, 17, 256} {
		for c := 0; c < length; c++ {
			if got := Reflect(c, length); got != c {
				t.Fatalf("Reflect(%d, %d) = %d, want identity", c, length, got)
			}
		}
	}
}

func TestReflect_Values(t *testing.T) {
	tests := []struct {
		c, length, want int
	}{
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 4},
		{6, 5, 3},
		{-1, 1, 0},
		{1, 1, 0},
		{-3, 2, 0},  // two passes: -3 -> 3 -> 0
		{7, 3, 2},   // two passes: 7 -> -2 -> 2
		{-10, 4, 3}, // multiple passes: -10 -> 10 -> -3 -> 3
	}
	for _, tt := range tests {
		if got := Reflect(tt.c, tt.length); got != tt.want {
			t.Errorf("Reflect(%d, %d) = %d, want %d", tt.c, tt.length, got, tt.want)
		}
	}
}

func TestReflect_AlwaysInRange(t *testing.T) {
	for _, length := range []int{1, 2, 3, 5, 9, 100} {
		for c := -5 * length; c <= 5*length; c++ {
			got := Reflect(c, length)
			if got < 0 || got >= length {
				t.Fatalf("Reflect(%d, %d) = %d, outside [0, %d)", c, length, got, length)
			}
		}
	}
}

// Mirroring is symmetric: the reflection of a point d steps outside the
// left edge equals the reflection of the matching point outside the right
// edge, mirrored.
func TestReflect_Symmetry(t *testing.T) {
	const length = 8
	for d := 1; d < length; d++ {
		left := Reflect(-d, length)
		right := Reflect(length-1+d, length)
		if left != length-1-right {
			t.Errorf("d=%d: left reflection %d and right reflection %d not mirrored", d, left, right)
		}
	}
}
