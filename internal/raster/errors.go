package raster

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch indicates that an image's pixel storage disagrees with its
// declared width and height. It is reported by Image.Validate and surfaced by
// boundary code before any operation runs.
var ErrShapeMismatch = errors.New("pixel data does not match declared dimensions")

// ErrInvalidThreshold indicates an edge-detection threshold outside the
// documented open interval (0, 255).
//
// EdgeDetect itself accepts any threshold and produces a valid degenerate
// output for out-of-range values; callers that want to hold the documented
// contract use ValidateThreshold before invoking it.
var ErrInvalidThreshold = errors.New("edge threshold must be strictly between 0 and 255")

// ValidateThreshold checks the documented 0 < threshold < 255 contract for
// edge detection and returns an error wrapping ErrInvalidThreshold when it
// does not hold.
func ValidateThreshold(threshold int) error {
	if threshold <= 0 || threshold >= 255 {
		return fmt.Errorf("threshold %d: %w", threshold, ErrInvalidThreshold)
	}
	return nil
}
