package raster

// EdgeDetect performs neighbor-comparison edge detection on an image.
//
// Every pixel is compared against its right and bottom neighbors using the
// Euclidean color distance. The output pixel is black (0,0,0) when either
// distance strictly exceeds the threshold, and white (255,255,255) otherwise.
//
// Parameters:
//   - img: Source grid of any dimensions.
//   - threshold: Distance cutoff separating "similar" from "significantly
//     different" colors. The documented contract is 0 < threshold < 255;
//     see ValidateThreshold for boundary enforcement.
//
// Returns a binary image of width W-1 and height H-1: the last row and last
// column of the input are dropped entirely because their pixels lack one of
// the two required neighbors. No padding, wraparound, or partial comparison
// is performed at the boundary. An input with W <= 1 or H <= 1 produces an
// empty image, not an error.
//
// # Algorithm
//
// For each pixel at (x, y) with x < W-1 and y < H-1:
//
//  1. Compute the color distance to the right neighbor (x+1, y).
//  2. Compute the color distance to the bottom neighbor (x, y+1).
//  3. Mark the output pixel black if either distance exceeds the threshold
//     (logical OR). A distance exactly equal to the threshold is not an edge.
//
// # Threshold Selection
//
// Lower thresholds mark more pixels as edges. A threshold <= 0 marks every
// pixel that differs at all from either neighbor; a threshold at or above
// the maximum possible distance (255·sqrt(3)) marks none. Both are valid
// degenerate outputs rather than errors.
func EdgeDetect(img Image, threshold int) Image {
	out := New(img.Width-1, img.Height-1)
	limit := float64(threshold)

	for y := 0; y < out.Height; y++ {
		row := y * img.Width
		for x := 0; x < out.Width; x++ {
			p := img.Pix[row+x]
			right := img.Pix[row+x+1]
			bottom := img.Pix[row+img.Width+x]

			if ColorDistance(p, right) > limit || ColorDistance(p, bottom) > limit {
				out.Pix[y*out.Width+x] = black
			} else {
				out.Pix[y*out.Width+x] = white
			}
		}
	}
	return out
}
