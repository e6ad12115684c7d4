package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is an RGB color triple with 8-bit channels held as ints.
//
// Each channel is logically constrained to 0-255. Values outside that range
// are tolerated as inputs (operations clamp on output), which is why the
// channels are ints rather than uint8.
type Pixel struct {
	R int `json:"r"` // Red component (0-255)
	G int `json:"g"` // Green component (0-255)
	B int `json:"b"` // Blue component (0-255)
}

// Standard classification colors used by edge detection.
var (
	black = Pixel{R: 0, G: 0, B: 0}
	white = Pixel{R: 255, G: 255, B: 255}
)

// Image is a rectangular grid of Pixels stored row-major in a flat slice.
//
// The pixel at column x, row y lives at Pix[y*Width+x]. An Image is treated
// as an immutable value once constructed: operations in this package read
// their input and return a freshly allocated Image. Callers that build an
// Image by hand must keep len(Pix) == Width*Height; Validate checks this.
type Image struct {
	Width  int
	Height int
	Pix    []Pixel
}

// New allocates a zeroed (all-black) image of the given dimensions.
// Negative dimensions are treated as zero.
func New(width, height int) Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Image{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// At returns the pixel at (x, y). Coordinates outside the grid return the
// zero Pixel, mirroring the stdlib image convention.
func (img Image) At(x, y int) Pixel {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return Pixel{}
	}
	return img.Pix[y*img.Width+x]
}

// Row returns the pixels of row y as a sub-slice of the backing storage.
// The caller must not modify it.
func (img Image) Row(y int) []Pixel {
	return img.Pix[y*img.Width : (y+1)*img.Width]
}

// Validate reports whether the pixel storage agrees with the declared
// dimensions. It returns an error wrapping ErrShapeMismatch otherwise.
//
// Boundary code (codec, tool server) should call this before running any
// operation; the operations themselves assume a well-formed grid.
func (img Image) Validate() error {
	if img.Width < 0 || img.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d: %w", img.Width, img.Height, ErrShapeMismatch)
	}
	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("%d pixels for declared %dx%d grid: %w",
			len(img.Pix), img.Width, img.Height, ErrShapeMismatch)
	}
	return nil
}

// Equal reports whether two images have the same dimensions and identical
// pixel values.
func (img Image) Equal(other Image) bool {
	if img.Width != other.Width || img.Height != other.Height {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts a stdlib image into a Pixel grid.
//
// 16-bit sources are scaled down to 8 bits by dropping the low byte; the
// alpha channel is discarded.
func FromImage(src image.Image) Image {
	bounds := src.Bounds()
	out := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, b, _ := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			out.Pix[y*out.Width+x] = Pixel{
				R: int(r >> 8),
				G: int(g >> 8),
				B: int(b >> 8),
			}
		}
	}
	return out
}

// ToRGBA converts the grid to a stdlib RGBA image with full opacity.
// Channel values are clamped into 0-255 during conversion.
func (img Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.Pix[y*img.Width+x]
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(clampChannel(p.R)),
				G: uint8(clampChannel(p.G)),
				B: uint8(clampChannel(p.B)),
				A: 255,
			})
		}
	}
	return out
}
