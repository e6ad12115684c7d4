package raster

import "fmt"

// FlipHorizontal mirrors the image about its vertical center axis.
//
// Pixel order reverses within each row; row order and dimensions are
// unchanged. Applying it twice returns the original image.
func FlipHorizontal(img Image) Image {
	out := New(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		row := y * img.Width
		for x := 0; x < img.Width; x++ {
			out.Pix[row+(img.Width-1-x)] = img.Pix[row+x]
		}
	}
	return out
}

// Rotate180 rotates the image half a turn: row order reverses and pixel
// order reverses within each row. Equivalent to FlipHorizontal composed with
// a top-bottom reversal. Applying it twice returns the original image.
func Rotate180(img Image) Image {
	out := New(img.Width, img.Height)
	n := len(img.Pix)
	for i, p := range img.Pix {
		out.Pix[n-1-i] = p
	}
	return out
}

// Crop extracts the rectangular sub-grid with top-left corner (x1, y1)
// inclusive and bottom-right corner (x2, y2) exclusive.
//
// The region must lie inside the image and have positive area.
func Crop(img Image, x1, y1, x2, y2 int) (Image, error) {
	if x1 < 0 || y1 < 0 || x2 > img.Width || y2 > img.Height {
		return Image{}, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			x1, y1, x2, y2, img.Width, img.Height)
	}
	if x1 >= x2 || y1 >= y2 {
		return Image{}, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	out := New(x2-x1, y2-y1)
	for y := 0; y < out.Height; y++ {
		src := (y1+y)*img.Width + x1
		copy(out.Row(y), img.Pix[src:src+out.Width])
	}
	return out, nil
}
