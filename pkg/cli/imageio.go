package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

// sniffFormat inspects the file signature. Returns "" when no known magic
// matches; callers fall back to the decoder-reported format.
func sniffFormat(b []byte) string {
	switch {
	case len(b) >= 3 && bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(b) >= 6 && (bytes.Equal(b[:6], []byte("GIF87a")) || bytes.Equal(b[:6], []byte("GIF89a"))):
		return "gif"
	case len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return "webp"
	case len(b) >= 2 && bytes.Equal(b[:2], []byte("BM")):
		return "bmp"
	case len(b) >= 4 && (bytes.Equal(b[:4], []byte("II*\x00")) || bytes.Equal(b[:4], []byte("MM\x00*"))):
		return "tiff"
	}
	return ""
}

// LoadImage reads and decodes an image file. PNG/JPEG/GIF decode via the
// stdlib; WebP/BMP/TIFF via the x/image decoders registered above. For JPEGs
// the EXIF orientation is applied so the returned image is upright. The
// second return is the detected format name.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	format := sniffFormat(b)

	orientation := 1
	if format == "jpeg" {
		if o, err := jpegOrientation(b); err == nil && o >= 1 && o <= 8 {
			orientation = o
		}
	}

	img, decoded, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	if format == "" {
		format = decoded
	}
	if orientation != 1 {
		img = stdimg.AutoOrient(img, orientation)
	}
	return img, format, nil
}

// SaveImage encodes img to path, choosing the format from the extension.
// Supported: .png, .jpg/.jpeg (with the given quality), .gif. Anything else
// is written as PNG.
func SaveImage(path string, img image.Image, jpegQuality int) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		return png.Encode(f, img)
	}
}

// imageInfo returns a one-line description like "JPEG 4032x3024".
func imageInfo(img image.Image, format string) string {
	if img == nil {
		return "no image"
	}
	b := img.Bounds()
	name := strings.ToUpper(format)
	if name == "" {
		name = "UNKNOWN"
	}
	return fmt.Sprintf("%s %dx%d", name, b.Dx(), b.Dy())
}
