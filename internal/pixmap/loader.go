package pixmap

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ufiyan/Image-Processing/internal/raster"
)

// Cache provides thread-safe caching of decoded pixmaps to avoid redundant
// disk reads and re-decoding.
//
// Decoded grids are keyed by the exact path string given to Load, so
// relative and absolute paths to the same file occupy separate entries.
// Cached pixmaps stay in memory until Evict or Clear; long-running servers
// handling many files should clean up periodically.
type Cache struct {
	mu      sync.RWMutex
	pixmaps map[string]*Pixmap
}

// NewCache creates an empty pixmap cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		pixmaps: make(map[string]*Pixmap),
	}
}

// Load returns the pixmap at path, reading and decoding it on first access.
//
// Supported inputs:
//   - .ppm, .pnm: portable pixmaps (P3 or P6), optionally with a .zst
//     compression suffix
//   - .png, .jpg, .jpeg, .gif: decoded with the stdlib image decoders and
//     converted to the grid representation
//
// The returned pixmap is shared with the cache; callers must treat it as
// read-only, which the transformation core guarantees by construction.
func (c *Cache) Load(path string) (*Pixmap, error) {
	c.mu.RLock()
	if pm, ok := c.pixmaps[path]; ok {
		c.mu.RUnlock()
		return pm, nil
	}
	c.mu.RUnlock()

	pm, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pixmaps[path] = pm
	c.mu.Unlock()

	return pm, nil
}

// Clear removes all cached pixmaps, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.pixmaps = make(map[string]*Pixmap)
	c.mu.Unlock()
}

// Evict removes the cache entry for path, if present. The next Load for the
// same path reads from disk again.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.pixmaps, path)
	c.mu.Unlock()
}

// loadFile decodes a single file based on its extension.
func loadFile(path string) (*Pixmap, error) {
	switch FormatName(path) {
	case "ppm":
		pm, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := pm.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return pm, nil

	case "png", "jpeg", "gif":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return &Pixmap{Image: raster.FromImage(img), MaxVal: 255}, nil

	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// FormatName reports the logical format of a path by extension: "ppm",
// "png", "jpeg", "gif", or "unknown". A trailing .zst compression suffix is
// ignored.
func FormatName(path string) string {
	if strings.HasSuffix(path, ".zst") {
		path = strings.TrimSuffix(path, ".zst")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm", ".pnm":
		return "ppm"
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}

// Info contains metadata about a loaded pixel-map file.
type Info struct {
	// Width is the grid width in pixels.
	Width int `json:"width"`

	// Height is the grid height in pixels.
	Height int `json:"height"`

	// MaxVal is the maximum channel value (always 255 in this system).
	MaxVal int `json:"max_val"`

	// Format is the detected file format: "ppm", "png", "jpeg", "gif",
	// or "unknown". Detection is based on file extension.
	Format string `json:"format"`

	// Compressed reports whether the file carries a .zst suffix.
	Compressed bool `json:"compressed"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads the file through the cache and returns its metadata.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	pm, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &Info{
		Width:         pm.Image.Width,
		Height:        pm.Image.Height,
		MaxVal:        pm.MaxVal,
		Format:        FormatName(path),
		Compressed:    strings.HasSuffix(path, ".zst"),
		FileSizeBytes: stat.Size(),
	}, nil
}

// Dimensions contains just the width and height of a pixel map, for callers
// that need nothing else.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoadDimensions loads the file through the cache and returns its
// dimensions.
func LoadDimensions(cache *Cache, path string) (*Dimensions, error) {
	pm, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &Dimensions{
		Width:  pm.Image.Width,
		Height: pm.Image.Height,
	}, nil
}
