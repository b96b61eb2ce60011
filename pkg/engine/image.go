package engine

import (
	"bytes"
	"image"
	"image/color"
)

// Image is an immutable handle around NRGBA pixel data. Once constructed, the
// pixels behind a handle never change: constructors copy their input and
// accessors that expose pixel data return copies, so two handles can share a
// buffer without either being able to observe the other. The zero value is an
// empty image.
type Image struct {
	nrgba *image.NRGBA
}

// NewImage builds an Image from any image.Image. The pixel data is converted
// to NRGBA, normalized to a (0,0) origin, and copied.
func NewImage(src image.Image) Image {
	return Image{nrgba: toNRGBA(src)}
}

// own wraps m without copying. Callers inside the package must guarantee that
// m is never written to afterwards.
func own(m *image.NRGBA) Image {
	return Image{nrgba: m}
}

// Empty reports whether the handle carries no pixel data.
func (im Image) Empty() bool {
	return im.nrgba == nil || im.nrgba.Rect.Empty()
}

func (im Image) Width() int {
	if im.nrgba == nil {
		return 0
	}
	return im.nrgba.Rect.Dx()
}

func (im Image) Height() int {
	if im.nrgba == nil {
		return 0
	}
	return im.nrgba.Rect.Dy()
}

// Channels returns the number of channels per pixel (always 4: RGBA).
func (im Image) Channels() int { return 4 }

func (im Image) Bounds() image.Rectangle {
	if im.nrgba == nil {
		return image.Rectangle{}
	}
	return im.nrgba.Rect
}

// NRGBA returns a copy of the pixel data. The caller may freely modify the
// returned image; the handle is unaffected.
func (im Image) NRGBA() *image.NRGBA {
	return cloneNRGBA(im.nrgba)
}

// Equal reports whether im and o have identical dimensions and identical
// pixel bytes.
func (im Image) Equal(o Image) bool {
	if im.Empty() || o.Empty() {
		return im.Empty() == o.Empty()
	}
	if im.Width() != o.Width() || im.Height() != o.Height() {
		return false
	}
	return bytes.Equal(im.nrgba.Pix, o.nrgba.Pix)
}

// toNRGBA converts src to a freshly allocated *image.NRGBA with its origin at
// (0,0). The input is never retained.
func toNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			si := n.PixOffset(b.Min.X, b.Min.Y+y)
			di := out.PixOffset(0, y)
			copy(out.Pix[di:di+w*4], n.Pix[si:si+w*4])
		}
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[idx+0] = c.R
			out.Pix[idx+1] = c.G
			out.Pix[idx+2] = c.B
			out.Pix[idx+3] = c.A
			idx += 4
		}
	}
	return out
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampFloatToUint8 ensures v in [0,255]
func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
