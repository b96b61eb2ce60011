package stdimg

import (
	"image"
)

// AutoOrient bakes an EXIF orientation (1..8) into the pixel data and
// returns an upright image. Orientation 1 or anything out of range returns
// the input as-is.
func AutoOrient(img image.Image, orientation int) image.Image {
	if img == nil {
		return nil
	}
	if orientation <= 1 || orientation > 8 {
		return img
	}
	src := ToNRGBA(img)
	switch orientation {
	case 2:
		return FlipH(src)
	case 3:
		return Rotate180(src)
	case 4:
		return FlipV(src)
	case 5:
		// transpose: rotate 90 CW then mirror
		return FlipH(Rotate90(src))
	case 6:
		return Rotate90(src)
	case 7:
		// transverse: rotate 90 CCW then mirror
		return FlipH(Rotate270(src))
	case 8:
		return Rotate270(src)
	}
	return img
}
