// Package server implements the MCP (Model Context Protocol) server for
// pixel-map transformation tools.
//
// The package provides a JSON-RPC 2.0 server that exposes the raster
// operations over the MCP protocol, so MCP-compatible clients can load
// pixel-map files and run transformations on them.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// File information:
//   - pixmap_load: Load a pixel map and get metadata
//   - pixmap_dimensions: Get width and height
//
// Transformations (result is base64 PNG; optional save_path writes a
// pixmap file, optional scale resizes the exported PNG):
//   - pixmap_sepia: Warm sepia tone remap
//   - pixmap_intensity: Scale one color channel
//   - pixmap_flip_horizontal: Mirror about the vertical axis
//   - pixmap_rotate_180: Half-turn rotation
//   - pixmap_edge_detect: Neighbor-comparison edge detection
//   - pixmap_crop: Extract a rectangular region
//
// Analysis:
//   - pixmap_sample_color: Color at a coordinate (hex/RGB/HSL)
//   - pixmap_color_distance: Color and spatial distance between two points
//   - pixmap_dominant_colors: Quantized frequency palette
//
// # Validation
//
// The server is the boundary that enforces contracts the pure core leaves
// to its callers: edge-detection thresholds must lie strictly between 0 and
// 255, and decoded grids are shape-checked before any operation runs.
package server
