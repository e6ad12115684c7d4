package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ufiyan/Image-Processing/internal/pixmap"
	"github.com/ufiyan/Image-Processing/internal/raster"
)

// writePixmapFile writes a pixmap built from the given grid and returns its
// path.
func writePixmapFile(t *testing.T, img raster.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ppm")
	pm := &pixmap.Pixmap{Image: img, MaxVal: 255}
	if err := pixmap.WriteFile(path, pm, pixmap.FormatP3); err != nil {
		t.Fatalf("failed to write test pixmap: %v", err)
	}
	return path
}

// uniformGrid builds a grid with every pixel set to p.
func uniformGrid(width, height int, p raster.Pixel) raster.Image {
	img := raster.New(width, height)
	for i := range img.Pix {
		img.Pix[i] = p
	}
	return img
}

// callTool runs a tools/call request and returns the decoded tool result.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) map[string]interface{} {
	t.Helper()

	resp := callToolRaw(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("tool %s failed: %+v", name, resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result is not a map: %T", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatalf("unexpected content shape: %T", result["content"])
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatalf("content text is not a string: %T", content[0]["text"])
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return decoded
}

// callToolRaw runs a tools/call request and returns the raw response.
func callToolRaw(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResultPNG decodes the base64 PNG payload of a transform result and
// returns it as a grid.
func decodeResultPNG(t *testing.T, result map[string]interface{}) raster.Image {
	t.Helper()

	b64, ok := result["image_base64"].(string)
	if !ok || b64 == "" {
		t.Fatal("result has no image_base64 payload")
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return raster.FromImage(img)
}

func TestToolsCall_PixmapLoad(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(6, 4, raster.Pixel{R: 9}))

	result := callTool(t, s, "pixmap_load", map[string]interface{}{"path": path})

	if result["width"] != float64(6) || result["height"] != float64(4) {
		t.Errorf("dimensions: got %vx%v, want 6x4", result["width"], result["height"])
	}
	if result["max_val"] != float64(255) {
		t.Errorf("max_val: got %v, want 255", result["max_val"])
	}
	if result["format"] != "ppm" {
		t.Errorf("format: got %v, want ppm", result["format"])
	}
}

func TestToolsCall_PixmapDimensions(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(3, 7, raster.Pixel{}))

	result := callTool(t, s, "pixmap_dimensions", map[string]interface{}{"path": path})

	if result["width"] != float64(3) || result["height"] != float64(7) {
		t.Errorf("dimensions: got %vx%v, want 3x7", result["width"], result["height"])
	}
}

func TestToolsCall_Sepia(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(4, 4, raster.Pixel{R: 100, G: 50, B: 25}))

	result := callTool(t, s, "pixmap_sepia", map[string]interface{}{"path": path})

	out := decodeResultPNG(t, result)
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", out.Width, out.Height)
	}
	if out.Pix[0] != (raster.Pixel{R: 82, G: 73, B: 57}) {
		t.Errorf("sepia pixel: got %+v, want {82 73 57}", out.Pix[0])
	}
}

func TestToolsCall_Intensity(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(2, 2, raster.Pixel{R: 100, G: 50, B: 25}))

	result := callTool(t, s, "pixmap_intensity", map[string]interface{}{
		"path":    path,
		"factor":  2.0,
		"channel": "r",
	})

	out := decodeResultPNG(t, result)
	if out.Pix[0] != (raster.Pixel{R: 200, G: 50, B: 25}) {
		t.Errorf("intensity pixel: got %+v, want {200 50 25}", out.Pix[0])
	}
}

func TestToolsCall_Intensity_UnknownChannelIsNoOp(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(2, 2, raster.Pixel{R: 100, G: 50, B: 25}))

	result := callTool(t, s, "pixmap_intensity", map[string]interface{}{
		"path":    path,
		"factor":  5.0,
		"channel": "x",
	})

	out := decodeResultPNG(t, result)
	if out.Pix[0] != (raster.Pixel{R: 100, G: 50, B: 25}) {
		t.Errorf("unknown channel must not change pixels: got %+v", out.Pix[0])
	}
}

func TestToolsCall_FlipHorizontal(t *testing.T) {
	s := New()
	img := raster.New(2, 1)
	img.Pix[0] = raster.Pixel{R: 255}
	img.Pix[1] = raster.Pixel{B: 255}
	path := writePixmapFile(t, img)

	result := callTool(t, s, "pixmap_flip_horizontal", map[string]interface{}{"path": path})

	out := decodeResultPNG(t, result)
	if out.Pix[0] != (raster.Pixel{B: 255}) || out.Pix[1] != (raster.Pixel{R: 255}) {
		t.Errorf("flip order: got %+v, %+v", out.Pix[0], out.Pix[1])
	}
}

func TestToolsCall_Rotate180(t *testing.T) {
	s := New()
	img := raster.New(2, 2)
	img.Pix[0] = raster.Pixel{R: 255}
	path := writePixmapFile(t, img)

	result := callTool(t, s, "pixmap_rotate_180", map[string]interface{}{"path": path})

	out := decodeResultPNG(t, result)
	if out.Pix[3] != (raster.Pixel{R: 255}) {
		t.Errorf("rotated pixel: got %+v at index 3", out.Pix[3])
	}
	if out.Pix[0] != (raster.Pixel{}) {
		t.Errorf("origin should now be black, got %+v", out.Pix[0])
	}
}

func TestToolsCall_EdgeDetect(t *testing.T) {
	s := New()
	img := uniformGrid(2, 2, raster.Pixel{R: 255, G: 255, B: 255})
	img.Pix[0] = raster.Pixel{}
	path := writePixmapFile(t, img)

	result := callTool(t, s, "pixmap_edge_detect", map[string]interface{}{
		"path":      path,
		"threshold": 10,
	})

	if result["width"] != float64(1) || result["height"] != float64(1) {
		t.Fatalf("dimensions: got %vx%v, want 1x1", result["width"], result["height"])
	}
	if result["threshold"] != float64(10) {
		t.Errorf("threshold: got %v, want 10", result["threshold"])
	}

	out := decodeResultPNG(t, result)
	if out.Pix[0] != (raster.Pixel{}) {
		t.Errorf("edge pixel: got %+v, want black", out.Pix[0])
	}
}

func TestToolsCall_EdgeDetect_InvalidThreshold(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(3, 3, raster.Pixel{R: 10, G: 10, B: 10}))

	for _, threshold := range []int{-5, 255, 400} {
		resp := callToolRaw(t, s, "pixmap_edge_detect", map[string]interface{}{
			"path":      path,
			"threshold": threshold,
		})
		if resp.Error == nil {
			t.Errorf("threshold %d: expected error", threshold)
			continue
		}
		if resp.Error.Code != -32000 {
			t.Errorf("threshold %d: error code %d, want -32000", threshold, resp.Error.Code)
		}
		data, _ := resp.Error.Data.(string)
		if !strings.Contains(data, "threshold") {
			t.Errorf("threshold %d: error data %q does not mention threshold", threshold, data)
		}
	}
}

func TestToolsCall_EdgeDetect_SinglePixelInput(t *testing.T) {
	// A 1x1 input produces an empty output grid and no PNG payload.
	s := New()
	path := writePixmapFile(t, uniformGrid(1, 1, raster.Pixel{R: 7}))

	result := callTool(t, s, "pixmap_edge_detect", map[string]interface{}{"path": path})

	if result["width"] != float64(0) || result["height"] != float64(0) {
		t.Errorf("dimensions: got %vx%v, want 0x0", result["width"], result["height"])
	}
	if _, ok := result["image_base64"]; ok {
		t.Error("empty result should carry no PNG payload")
	}
}

func TestToolsCall_EdgeDetect_WithBlur(t *testing.T) {
	s := New()
	img := uniformGrid(8, 8, raster.Pixel{R: 200, G: 200, B: 200})
	img.Pix[3*8+3] = raster.Pixel{} // single dark speck
	path := writePixmapFile(t, img)

	result := callTool(t, s, "pixmap_edge_detect", map[string]interface{}{
		"path":       path,
		"threshold":  50,
		"blur_sigma": 2.0,
	})

	if result["width"] != float64(7) || result["height"] != float64(7) {
		t.Errorf("dimensions: got %vx%v, want 7x7", result["width"], result["height"])
	}
	if result["blur_sigma"] != float64(2.0) {
		t.Errorf("blur_sigma: got %v, want 2", result["blur_sigma"])
	}
}

func TestToolsCall_Crop(t *testing.T) {
	s := New()
	img := raster.New(4, 4)
	for i := range img.Pix {
		img.Pix[i] = raster.Pixel{R: i * 10}
	}
	path := writePixmapFile(t, img)

	result := callTool(t, s, "pixmap_crop", map[string]interface{}{
		"path": path,
		"x1":   1, "y1": 1, "x2": 3, "y2": 3,
	})

	out := decodeResultPNG(t, result)
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 2x2", out.Width, out.Height)
	}
	if out.Pix[0] != (raster.Pixel{R: 50}) {
		t.Errorf("crop origin: got %+v, want {50 0 0}", out.Pix[0])
	}
}

func TestToolsCall_Crop_Invalid(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(4, 4, raster.Pixel{}))

	resp := callToolRaw(t, s, "pixmap_crop", map[string]interface{}{
		"path": path,
		"x1":   3, "y1": 3, "x2": 1, "y2": 1,
	})
	if resp.Error == nil {
		t.Error("expected error for inverted crop region")
	}
}

func TestToolsCall_SavePath(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(3, 3, raster.Pixel{R: 100, G: 100, B: 100}))
	savePath := filepath.Join(t.TempDir(), "out.ppm")

	result := callTool(t, s, "pixmap_sepia", map[string]interface{}{
		"path":      path,
		"save_path": savePath,
	})

	if result["saved_path"] != savePath {
		t.Errorf("saved_path: got %v, want %s", result["saved_path"], savePath)
	}

	saved, err := pixmap.ReadFile(savePath)
	if err != nil {
		t.Fatalf("failed to read saved pixmap: %v", err)
	}
	if saved.Image.Width != 3 || saved.Image.Height != 3 {
		t.Errorf("saved dimensions: got %dx%d, want 3x3", saved.Image.Width, saved.Image.Height)
	}
}

func TestToolsCall_ExportScale(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(4, 4, raster.Pixel{R: 128, G: 128, B: 128}))

	result := callTool(t, s, "pixmap_sepia", map[string]interface{}{
		"path":  path,
		"scale": 2.0,
	})

	// Reported dimensions describe the grid; the PNG payload is scaled.
	if result["width"] != float64(4) || result["height"] != float64(4) {
		t.Errorf("grid dimensions: got %vx%v, want 4x4", result["width"], result["height"])
	}
	out := decodeResultPNG(t, result)
	if out.Width != 8 || out.Height != 8 {
		t.Errorf("exported dimensions: got %dx%d, want 8x8", out.Width, out.Height)
	}
}

func TestToolsCall_SampleColor(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(2, 2, raster.Pixel{R: 255, G: 128, B: 64}))

	result := callTool(t, s, "pixmap_sample_color", map[string]interface{}{
		"path": path, "x": 0, "y": 0,
	})

	if result["hex"] != "#FF8040" {
		t.Errorf("hex: got %v, want #FF8040", result["hex"])
	}
}

func TestToolsCall_ColorDistance(t *testing.T) {
	s := New()
	img := raster.New(2, 1)
	img.Pix[1] = raster.Pixel{R: 255, G: 255, B: 255}
	path := writePixmapFile(t, img)

	result := callTool(t, s, "pixmap_color_distance", map[string]interface{}{
		"path": path,
		"x1":   0, "y1": 0, "x2": 1, "y2": 0,
	})

	if result["color_distance"] != 441.67 {
		t.Errorf("color_distance: got %v, want 441.67", result["color_distance"])
	}
	if result["spatial_distance"] != float64(1) {
		t.Errorf("spatial_distance: got %v, want 1", result["spatial_distance"])
	}
}

func TestToolsCall_DominantColors(t *testing.T) {
	s := New()
	path := writePixmapFile(t, uniformGrid(4, 4, raster.Pixel{R: 250}))

	result := callTool(t, s, "pixmap_dominant_colors", map[string]interface{}{"path": path})

	colors, ok := result["colors"].([]interface{})
	if !ok || len(colors) != 1 {
		t.Fatalf("colors: got %v", result["colors"])
	}
	first, _ := colors[0].(map[string]interface{})
	if first["hex"] != "#F00000" {
		t.Errorf("dominant hex: got %v, want #F00000", first["hex"])
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := New()

	resp := callToolRaw(t, s, "pixmap_sharpen", map[string]interface{}{"path": "/tmp/x.ppm"})

	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestToolsCall_InvalidParams(t *testing.T) {
	s := New()

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp.Error == nil {
		t.Fatal("expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("error code: got %d, want -32602", resp.Error.Code)
	}
}
