// Package raster provides pure transformations over in-memory RGB pixel grids.
//
// The package implements per-pixel color remaps (sepia, channel intensity
// scaling), structural rearrangements (horizontal flip, 180° rotation, crop),
// neighborhood edge detection, and color analysis helpers. All operations work
// on the Image grid type and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Data Model
//
// An Image is a rectangular grid of Pixel values stored row-major in a flat
// slice, which gives O(1) access to any neighbor. Images are treated as
// immutable values: every operation allocates and returns a fresh Image and
// never writes to its input. Pixel channels are 8-bit logically (0-255), held
// as ints so intermediate arithmetic cannot overflow; out-of-range inputs are
// accepted and clamped on output.
//
// # Thread Safety
//
// Every operation is a pure function of its inputs with no shared state, so
// all operations may be called concurrently, including on the same Image.
//
// # Error Handling
//
// The algorithms themselves are total functions and do not fail. Errors exist
// only at the boundaries:
//   - ErrShapeMismatch: pixel storage disagrees with declared dimensions
//   - ErrInvalidThreshold: edge threshold outside the documented (0,255) range
//   - Coordinate and region validation in the sampling and crop helpers
package raster
