package stdimg

import (
	"image"
	"math"
)

// Vignette darkens pixels toward the image corners. The mask falls off
// linearly with distance from the center: factor = 1 - (d/maxd)*strength,
// so the center is untouched and the far corners lose strength*100% of
// their brightness. strength in [0,1].
func Vignette(src *image.NRGBA, strength float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	cx := float64(w) / 2.0
	cy := float64(h) / 2.0
	maxd := math.Hypot(cx, cy)
	if maxd <= 0 {
		return CloneNRGBA(src)
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			factor := clamp01(1.0 - (d/maxd)*strength)
			out.Pix[i+0] = uint8(clampFloatToUint8(float64(src.Pix[i+0])*factor + 0.5))
			out.Pix[i+1] = uint8(clampFloatToUint8(float64(src.Pix[i+1])*factor + 0.5))
			out.Pix[i+2] = uint8(clampFloatToUint8(float64(src.Pix[i+2])*factor + 0.5))
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// Chromatic simulates lateral chromatic aberration by shifting the red
// channel left and the blue channel right by shift pixels. Green and alpha
// stay put. shift=0 is identity.
func Chromatic(src *image.NRGBA, shift int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if shift == 0 {
		return CloneNRGBA(src)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = samplePixelClamped(src, x+shift, y).R
			out.Pix[i+1] = src.Pix[src.PixOffset(x, y)+1]
			out.Pix[i+2] = samplePixelClamped(src, x-shift, y).B
			out.Pix[i+3] = src.Pix[src.PixOffset(x, y)+3]
		}
	}
	return out
}

// Distort applies barrel (k>0) or pincushion (k<0) lens distortion. Each
// output pixel samples the source at r' = r*(1 + k*rn*rn) where rn is the
// radius normalized to the half-diagonal, with bilinear interpolation. k=0
// is identity.
func Distort(src *image.NRGBA, k float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if k == 0 {
		return CloneNRGBA(src)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	cx := float64(w) / 2.0
	cy := float64(h) / 2.0
	maxd := math.Hypot(cx, cy)
	if maxd <= 0 {
		return CloneNRGBA(src)
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			rn := math.Hypot(dx, dy) / maxd
			f := 1.0 + k*rn*rn
			rf, gf, bf, af := sampleBilinear(src, cx+dx*f-0.5, cy+dy*f-0.5)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(clampFloatToUint8(rf + 0.5))
			out.Pix[i+1] = uint8(clampFloatToUint8(gf + 0.5))
			out.Pix[i+2] = uint8(clampFloatToUint8(bf + 0.5))
			out.Pix[i+3] = uint8(clampFloatToUint8(af + 0.5))
		}
	}
	return out
}
