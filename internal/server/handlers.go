package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ufiyan/Image-Processing/internal/pixmap"
	"github.com/ufiyan/Image-Processing/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixmap_load", "pixmap_sepia").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads pixmaps from cache as needed
//  4. Calls the appropriate raster operation
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// File Information
	case "pixmap_load":
		return s.handlePixmapLoad(args)
	case "pixmap_dimensions":
		return s.handlePixmapDimensions(args)

	// Transformations
	case "pixmap_sepia":
		return s.handlePixmapSepia(args)
	case "pixmap_intensity":
		return s.handlePixmapIntensity(args)
	case "pixmap_flip_horizontal":
		return s.handlePixmapFlipHorizontal(args)
	case "pixmap_rotate_180":
		return s.handlePixmapRotate180(args)
	case "pixmap_edge_detect":
		return s.handlePixmapEdgeDetect(args)
	case "pixmap_crop":
		return s.handlePixmapCrop(args)

	// Analysis
	case "pixmap_sample_color":
		return s.handlePixmapSampleColor(args)
	case "pixmap_color_distance":
		return s.handlePixmapColorDistance(args)
	case "pixmap_dominant_colors":
		return s.handlePixmapDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadGrid loads a pixmap through the cache and shape-checks its grid before
// any operation touches it.
func (s *Server) loadGrid(path string) (raster.Image, error) {
	pm, err := s.cache.Load(path)
	if err != nil {
		return raster.Image{}, err
	}
	if err := pm.Image.Validate(); err != nil {
		return raster.Image{}, fmt.Errorf("%s: %w", path, err)
	}
	return pm.Image, nil
}

// TransformResult contains a transformed grid rendered as base64 PNG.
//
// Width and Height describe the transformed grid, which for edge detection
// is one pixel smaller than the input along each axis. Empty grids carry no
// PNG payload. SavedPath is set when the tool also wrote a pixmap file.
type TransformResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	SavedPath   string `json:"saved_path,omitempty"`
}

// finishTransform renders a transformed grid to its result form: a base64
// PNG (resized with Lanczos when scale != 1) and, when savePath is set, a
// pixmap file on disk. A .zst suffix on savePath compresses the file.
func finishTransform(img raster.Image, scale float64, savePath string) (*TransformResult, error) {
	result := &TransformResult{
		Width:  img.Width,
		Height: img.Height,
	}

	if savePath != "" {
		pm := &pixmap.Pixmap{Image: img, MaxVal: 255}
		if err := pixmap.WriteFile(savePath, pm, pixmap.FormatP3); err != nil {
			return nil, err
		}
		result.SavedPath = savePath
	}

	// PNG cannot represent an empty image; dimensions alone describe it.
	if img.Width == 0 || img.Height == 0 {
		return result, nil
	}

	var out image.Image = img.ToRGBA()
	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(img.Width) * scale)
		newHeight := int(float64(img.Height) * scale)
		out = imaging.Resize(out, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode result image: %w", err)
	}

	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	result.MimeType = "image/png"
	return result, nil
}

// === File Information Handlers ===

type pixmapPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePixmapLoad(args json.RawMessage) (interface{}, error) {
	var a pixmapPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return pixmap.LoadInfo(s.cache, a.Path)
}

func (s *Server) handlePixmapDimensions(args json.RawMessage) (interface{}, error) {
	var a pixmapPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return pixmap.LoadDimensions(s.cache, a.Path)
}

// === Transformation Handlers ===

type pixmapTransformArgs struct {
	Path     string  `json:"path"`
	Scale    float64 `json:"scale"`
	SavePath string  `json:"save_path"`
}

func (s *Server) handlePixmapSepia(args json.RawMessage) (interface{}, error) {
	var a pixmapTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return finishTransform(raster.Sepia(img), a.Scale, a.SavePath)
}

type pixmapIntensityArgs struct {
	Path     string  `json:"path"`
	Factor   float64 `json:"factor"`
	Channel  string  `json:"channel"`
	Scale    float64 `json:"scale"`
	SavePath string  `json:"save_path"`
}

func (s *Server) handlePixmapIntensity(args json.RawMessage) (interface{}, error) {
	var a pixmapIntensityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Factor == 0 {
		a.Factor = 1.0
	}

	// An unrecognized channel selector is a documented no-op, not an
	// error; the zero byte takes that path for an empty string.
	var channel byte
	if len(a.Channel) > 0 {
		channel = a.Channel[0]
	}

	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return finishTransform(raster.IncreaseIntensity(img, a.Factor, channel), a.Scale, a.SavePath)
}

func (s *Server) handlePixmapFlipHorizontal(args json.RawMessage) (interface{}, error) {
	var a pixmapTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return finishTransform(raster.FlipHorizontal(img), a.Scale, a.SavePath)
}

func (s *Server) handlePixmapRotate180(args json.RawMessage) (interface{}, error) {
	var a pixmapTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return finishTransform(raster.Rotate180(img), a.Scale, a.SavePath)
}

// EdgeDetectResult extends the transform result with the parameters that
// shaped the classification.
type EdgeDetectResult struct {
	TransformResult
	Threshold int     `json:"threshold"`
	BlurSigma float64 `json:"blur_sigma,omitempty"`
}

type pixmapEdgeDetectArgs struct {
	Path      string  `json:"path"`
	Threshold int     `json:"threshold"`
	BlurSigma float64 `json:"blur_sigma"`
	Scale     float64 `json:"scale"`
	SavePath  string  `json:"save_path"`
}

func (s *Server) handlePixmapEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a pixmapEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Threshold == 0 {
		a.Threshold = 50
	}
	if err := raster.ValidateThreshold(a.Threshold); err != nil {
		return nil, err
	}

	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}

	// Optional noise reduction before classification. The blur runs on
	// the RGBA form so the detector still sees an ordinary grid.
	if a.BlurSigma > 0 {
		img = raster.FromImage(blur.Gaussian(img.ToRGBA(), a.BlurSigma))
	}

	result, err := finishTransform(raster.EdgeDetect(img, a.Threshold), a.Scale, a.SavePath)
	if err != nil {
		return nil, err
	}
	return &EdgeDetectResult{
		TransformResult: *result,
		Threshold:       a.Threshold,
		BlurSigma:       a.BlurSigma,
	}, nil
}

type pixmapCropArgs struct {
	Path     string  `json:"path"`
	X1       int     `json:"x1"`
	Y1       int     `json:"y1"`
	X2       int     `json:"x2"`
	Y2       int     `json:"y2"`
	Scale    float64 `json:"scale"`
	SavePath string  `json:"save_path"`
}

func (s *Server) handlePixmapCrop(args json.RawMessage) (interface{}, error) {
	var a pixmapCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := raster.Crop(img, a.X1, a.Y1, a.X2, a.Y2)
	if err != nil {
		return nil, err
	}
	return finishTransform(cropped, a.Scale, a.SavePath)
}

// === Analysis Handlers ===

type pixmapSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handlePixmapSampleColor(args json.RawMessage) (interface{}, error) {
	var a pixmapSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return raster.SampleColor(img, a.X, a.Y)
}

type pixmapColorDistanceArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

func (s *Server) handlePixmapColorDistance(args json.RawMessage) (interface{}, error) {
	var a pixmapColorDistanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return raster.MeasureColorDistance(img, a.X1, a.Y1, a.X2, a.Y2)
}

type pixmapDominantColorsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (s *Server) handlePixmapDominantColors(args json.RawMessage) (interface{}, error) {
	var a pixmapDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.loadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	return raster.DominantColors(img, a.Count)
}
