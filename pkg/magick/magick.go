//go:build imagick

package magick

import (
	"fmt"

	"gopkg.in/gographics/imagick.v3/imagick"
)

// Available reports whether ImageMagick support was compiled in.
func Available() bool { return true }

// ConvertFile reads src, optionally downsizes it to maxWidth (preserving
// aspect ratio, Lanczos filter), and writes dst. The output format follows
// the dst extension, which ImageMagick resolves on its own.
func ConvertFile(src, dst string, maxWidth int) error {
	imagick.Initialize()
	defer imagick.Terminate()

	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	if err := mw.ReadImage(src); err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	w := int(mw.GetImageWidth())
	h := int(mw.GetImageHeight())
	if maxWidth > 0 && w > maxWidth {
		nh := h * maxWidth / w
		if nh < 1 {
			nh = 1
		}
		if err := mw.ResizeImage(uint(maxWidth), uint(nh), imagick.FILTER_LANCZOS); err != nil {
			return fmt.Errorf("resize %s: %w", src, err)
		}
	}

	if err := mw.WriteImage(dst); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
