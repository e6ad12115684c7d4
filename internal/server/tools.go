package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool: the file to
// operate on.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path to the pixel-map file (.ppm/.pnm, optionally .zst compressed; PNG/JPEG/GIF also accepted)",
	}
}

// scaleProperty is the schema fragment for the optional export scale.
func scaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Optional scale factor for the exported PNG (e.g., 2.0 to double size). Default 1.0",
		"default":     1.0,
	}
}

// savePathProperty is the schema fragment for the optional pixmap output
// path.
func savePathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also write the result as a P3 pixmap (.zst suffix compresses)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// File Information
		{
			Name:        "pixmap_load",
			Description: "Load a pixel-map file and return its dimensions, channel depth, format, and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixmap_dimensions",
			Description: "Get the width and height of a pixel-map file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Transformations
		{
			Name:        "pixmap_sepia",
			Description: "Apply a warm sepia tone remap to every pixel. Output dimensions equal input dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"scale":     scaleProperty(),
					"save_path": savePathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixmap_intensity",
			Description: "Scale the intensity of one color channel. A channel selector other than r, g, or b leaves the image unchanged by design.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Intensity multiplier for the selected channel (e.g., 2.0 to double). Default 1.0",
						"default":     1.0,
					},
					"channel": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"r", "g", "b"},
						"description": "Channel to scale. Any other value is a documented no-op",
					},
					"scale":     scaleProperty(),
					"save_path": savePathProperty(),
				},
				"required": []string{"path", "channel"},
			},
		},
		{
			Name:        "pixmap_flip_horizontal",
			Description: "Mirror the image about its vertical center axis. Applying twice restores the original.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"scale":     scaleProperty(),
					"save_path": savePathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixmap_rotate_180",
			Description: "Rotate the image half a turn. Applying twice restores the original.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"scale":     scaleProperty(),
					"save_path": savePathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixmap_edge_detect",
			Description: "Detect edges by comparing each pixel's color distance to its right and bottom neighbors. Output is binary black/white and one pixel smaller along each axis.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Color-distance cutoff, strictly between 0 and 255. A neighbor distance above this marks an edge. Default 50",
						"default":     50,
					},
					"blur_sigma": map[string]interface{}{
						"type":        "number",
						"description": "Optional Gaussian blur radius applied before detection to reduce noise. 0 disables",
						"default":     0,
					},
					"scale":     scaleProperty(),
					"save_path": savePathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixmap_crop",
			Description: "Extract a rectangular region. (x1,y1) is the inclusive top-left corner, (x2,y2) the exclusive bottom-right corner.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale":     scaleProperty(),
					"save_path": savePathProperty(),
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Analysis
		{
			Name:        "pixmap_sample_color",
			Description: "Get the color at a pixel coordinate in hex, RGB, and HSL formats.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, 0 = leftmost pixel)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, 0 = topmost pixel)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "pixmap_color_distance",
			Description: "Measure the Euclidean color distance between the pixels at two coordinates, along with their spatial distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "First point X coordinate",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "First point Y coordinate",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Second point X coordinate",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Second point Y coordinate",
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "pixmap_dominant_colors",
			Description: "Extract the most common colors from the image, grouped into 16-unit buckets and sorted by frequency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
