// Package pixmap reads and writes portable pixmap (PPM) files and caches
// decoded pixel grids for the tool server.
//
// The codec handles the plain-text P3 and binary P6 variants with the usual
// header: a magic line, optional # comments, width and height, and the
// maximum channel value. Only 8-bit pixmaps (maximum value 255) are
// accepted, matching the channel depth of the transformation core.
//
// Files ending in .zst are transparently compressed and decompressed with
// zstandard, so a .ppm.zst path round-trips without the caller doing
// anything special.
//
// The Cache type additionally ingests PNG, JPEG, and GIF files through the
// stdlib decoders, converting them to the same grid representation, so every
// tool works on whichever format the image arrives in.
package pixmap
