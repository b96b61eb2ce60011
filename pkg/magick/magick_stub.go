//go:build !imagick

package magick

import "fmt"

// Available reports whether ImageMagick support was compiled in.
func Available() bool { return false }

// ConvertFile always fails in builds without the imagick tag.
func ConvertFile(src, dst string, maxWidth int) error {
	return fmt.Errorf("convert %s: %w", src, ErrUnavailable)
}
