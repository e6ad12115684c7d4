package pixmap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ufiyan/Image-Processing/internal/raster"
)

// ErrUnsupportedDepth indicates a pixmap whose maximum channel value is not
// 255. The transformation core works on 8-bit channels only.
var ErrUnsupportedDepth = errors.New("unsupported channel depth: maximum value must be 255")

// Format selects the pixmap encoding variant.
type Format int

const (
	// FormatP3 is the plain-text (ASCII) pixmap encoding.
	FormatP3 Format = iota
	// FormatP6 is the binary (raw) pixmap encoding.
	FormatP6
)

// Pixmap is a decoded pixel-map file: the pixel grid plus the channel depth
// declared in the header. MaxVal is always 255 for pixmaps produced by this
// package.
type Pixmap struct {
	Image  raster.Image
	MaxVal int
}

// Validate checks that the grid shape is consistent and the channel depth is
// supported.
func (pm *Pixmap) Validate() error {
	if err := pm.Image.Validate(); err != nil {
		return err
	}
	if pm.MaxVal != 255 {
		return fmt.Errorf("maximum value %d: %w", pm.MaxVal, ErrUnsupportedDepth)
	}
	return nil
}

// Decode reads a P3 or P6 pixmap from r.
//
// Header comments (# to end of line) are skipped. The sample section must
// contain exactly width*height RGB triples; a short section or trailing
// non-whitespace data is a decode error. Samples outside 0..255 are
// rejected, as is any maximum value other than 255.
func Decode(r io.Reader) (*Pixmap, error) {
	br := bufio.NewReader(r)

	magic, err := nextToken(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixmap magic: %w", err)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("unsupported pixmap magic %q", magic)
	}

	width, height, maxVal, err := decodeHeader(br)
	if err != nil {
		return nil, err
	}

	img := raster.New(width, height)
	if magic == "P3" {
		err = decodePlain(br, &img)
	} else {
		err = decodeRaw(br, &img)
	}
	if err != nil {
		return nil, err
	}

	return &Pixmap{Image: img, MaxVal: maxVal}, nil
}

// decodeHeader reads width, height, and the maximum channel value.
func decodeHeader(br *bufio.Reader) (width, height, maxVal int, err error) {
	if width, err = nextInt(br); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read width: %w", err)
	}
	if height, err = nextInt(br); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read height: %w", err)
	}
	if width < 0 || height < 0 {
		return 0, 0, 0, fmt.Errorf("invalid dimensions %dx%d: %w", width, height, raster.ErrShapeMismatch)
	}
	if maxVal, err = nextInt(br); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read maximum value: %w", err)
	}
	if maxVal != 255 {
		return 0, 0, 0, fmt.Errorf("maximum value %d: %w", maxVal, ErrUnsupportedDepth)
	}
	return width, height, maxVal, nil
}

// decodePlain reads the ASCII sample section of a P3 pixmap.
func decodePlain(br *bufio.Reader, img *raster.Image) error {
	for i := range img.Pix {
		var ch [3]int
		for c := 0; c < 3; c++ {
			v, err := nextInt(br)
			if err != nil {
				return fmt.Errorf("pixel %d: short sample section: %w", i, err)
			}
			if v < 0 || v > 255 {
				return fmt.Errorf("pixel %d: sample %d out of range", i, v)
			}
			ch[c] = v
		}
		img.Pix[i] = raster.Pixel{R: ch[0], G: ch[1], B: ch[2]}
	}

	// Only whitespace and comments may follow the last sample.
	if tok, err := nextToken(br); err == nil {
		return fmt.Errorf("trailing data %q after pixel samples", tok)
	} else if err != io.EOF {
		return err
	}
	return nil
}

// decodeRaw reads the binary sample section of a P6 pixmap. The single
// whitespace byte after the maximum value was already consumed by the header
// tokenizer.
func decodeRaw(br *bufio.Reader, img *raster.Image) error {
	buf := make([]byte, len(img.Pix)*3)
	if _, err := io.ReadFull(br, buf); err != nil {
		return fmt.Errorf("short sample section: %w", err)
	}
	for i := range img.Pix {
		img.Pix[i] = raster.Pixel{
			R: int(buf[i*3]),
			G: int(buf[i*3+1]),
			B: int(buf[i*3+2]),
		}
	}
	return nil
}

// Encode writes the pixmap to w in the chosen format.
//
// Channel values are clamped to the 0-255 range on the way out, so grids
// holding intermediate out-of-range values still produce a valid file.
func Encode(w io.Writer, pm *Pixmap, format Format) error {
	if err := pm.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	img := pm.Image

	switch format {
	case FormatP3:
		fmt.Fprintf(bw, "P3\n%d %d\n%d\n", img.Width, img.Height, pm.MaxVal)
		for _, p := range img.Pix {
			fmt.Fprintf(bw, "%d %d %d\n", clamp8(p.R), clamp8(p.G), clamp8(p.B))
		}
	case FormatP6:
		fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Width, img.Height, pm.MaxVal)
		buf := make([]byte, len(img.Pix)*3)
		for i, p := range img.Pix {
			buf[i*3] = byte(clamp8(p.R))
			buf[i*3+1] = byte(clamp8(p.G))
			buf[i*3+2] = byte(clamp8(p.B))
		}
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write pixel data: %w", err)
		}
	default:
		return fmt.Errorf("unknown pixmap format %d", format)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write pixmap: %w", err)
	}
	return nil
}

// ReadFile decodes the pixmap at path, decompressing .zst files
// transparently.
func ReadFile(path string) (*Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pixmap: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	pm, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pm, nil
}

// WriteFile encodes the pixmap to path in the chosen format, compressing
// with zstandard when the path ends in .zst.
func WriteFile(path string, pm *Pixmap, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, pm, format); err != nil {
		return err
	}

	data := buf.Bytes()
	if strings.HasSuffix(path, ".zst") {
		var zbuf bytes.Buffer
		enc, err := zstd.NewWriter(&zbuf)
		if err != nil {
			return fmt.Errorf("failed to create zstd stream: %w", err)
		}
		if _, err := enc.Write(data); err != nil {
			enc.Close()
			return fmt.Errorf("failed to compress pixmap: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to finish zstd stream: %w", err)
		}
		data = zbuf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pixmap: %w", err)
	}
	return nil
}

// nextToken returns the next whitespace-delimited token, skipping # comments
// through end of line. io.EOF is returned when only whitespace remains.
func nextToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}

		switch {
		case b == '#' && sb.Len() == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case isSpace(b):
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(b)
		}
	}
}

// nextInt reads the next token and parses it as a decimal integer.
func nextInt(br *bufio.Reader) (int, error) {
	tok, err := nextToken(br)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", tok)
	}
	return v, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
