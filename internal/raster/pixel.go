package raster

import "math"

// clampChannel constrains a channel value to the valid 0-255 range.
func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// scale multiplies each channel of p by its factor, truncates toward zero,
// and clamps the result into 0-255.
//
// Truncation (plain float-to-int conversion) rather than rounding is part of
// the contract: scaling channel value 99 by 0.5 yields 49, not 50.
func scale(p Pixel, rf, gf, bf float64) Pixel {
	return Pixel{
		R: clampChannel(int(rf * float64(p.R))),
		G: clampChannel(int(gf * float64(p.G))),
		B: clampChannel(int(bf * float64(p.B))),
	}
}

// ColorDistance returns the Euclidean distance between two pixels treated as
// points in 3-D RGB space: sqrt(Δr² + Δg² + Δb²).
//
// The metric is symmetric, non-negative, and zero exactly when the pixels
// are identical. The maximum possible distance for 8-bit channels is
// 255·sqrt(3) ≈ 441.67.
func ColorDistance(a, b Pixel) float64 {
	dr := float64(a.R - b.R)
	dg := float64(a.G - b.G)
	db := float64(a.B - b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
