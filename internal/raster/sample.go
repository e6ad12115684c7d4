package raster

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a sampled color in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB Pixel    `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor returns the color at pixel coordinate (x, y) in hex, RGB, and
// HSL form. Coordinates are 0-based with origin at the top-left; anything
// outside the grid is an error.
func SampleColor(img Image, x, y int) (*ColorResult, error) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, img.Width, img.Height)
	}

	p := img.Pix[y*img.Width+x]
	c := colorful.Color{
		R: float64(clampChannel(p.R)) / 255.0,
		G: float64(clampChannel(p.G)) / 255.0,
		B: float64(clampChannel(p.B)) / 255.0,
	}
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: p,
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}, nil
}

// ColorDistanceResult describes how far apart two sampled pixels are, both
// in color space and on the grid.
type ColorDistanceResult struct {
	ColorDistance   float64 `json:"color_distance"`   // Euclidean RGB distance (0 to ~441.67)
	SpatialDistance float64 `json:"spatial_distance"` // Euclidean pixel distance on the grid
	From            Pixel   `json:"from"`             // Color at (x1, y1)
	To              Pixel   `json:"to"`               // Color at (x2, y2)
}

// MeasureColorDistance samples the pixels at (x1, y1) and (x2, y2) and
// returns the color distance between them together with the spatial
// distance between the two coordinates. Both distances are rounded to two
// decimal places for reporting.
func MeasureColorDistance(img Image, x1, y1, x2, y2 int) (*ColorDistanceResult, error) {
	for _, pt := range [][2]int{{x1, y1}, {x2, y2}} {
		if pt[0] < 0 || pt[0] >= img.Width || pt[1] < 0 || pt[1] >= img.Height {
			return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d",
				pt[0], pt[1], img.Width, img.Height)
		}
	}

	from := img.Pix[y1*img.Width+x1]
	to := img.Pix[y2*img.Width+x2]

	dx := float64(x2 - x1)
	dy := float64(y2 - y1)

	return &ColorDistanceResult{
		ColorDistance:   math.Round(ColorDistance(from, to)*100) / 100,
		SpatialDistance: math.Round(math.Sqrt(dx*dx+dy*dy)*100) / 100,
		From:            from,
		To:              to,
	}, nil
}

// ColorFrequency is a palette entry: a quantized color and how often it
// occurs in the image.
type ColorFrequency struct {
	Hex        string  `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	RGB        Pixel   `json:"rgb"`        // RGB components (quantized)
	Percentage float64 `json:"percentage"` // Share of pixels with this color (0-100)
}

// PaletteResult contains the most frequent colors of an image, most common
// first.
type PaletteResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the count most common colors from an image.
//
// To group near-identical shades, each channel is quantized to a multiple of
// 16 before counting, so colors within 16 units per channel fall into the
// same bucket. An empty image yields an empty palette.
func DominantColors(img Image, count int) (*PaletteResult, error) {
	total := len(img.Pix)
	if total == 0 {
		return &PaletteResult{Colors: []ColorFrequency{}}, nil
	}

	counts := make(map[Pixel]int)
	for _, p := range img.Pix {
		q := Pixel{
			R: clampChannel(p.R) / 16 * 16,
			G: clampChannel(p.G) / 16 * 16,
			B: clampChannel(p.B) / 16 * 16,
		}
		counts[q]++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for q, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02X%02X%02X", q.R, q.G, q.B),
			RGB:        q,
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return &PaletteResult{Colors: colors}, nil
}
