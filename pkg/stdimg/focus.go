package stdimg

import (
	"image"
	"math"
	"sync"
)

// gaussianKernel1D generates a 1D Gaussian kernel with given sigma. Returns kernel and half-width radius.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	// radius ~ ceil(3*sigma)
	radius := int(math.Ceil(3 * sigma))
	sz := radius*2 + 1
	kern := make([]float64, sz)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

// GaussianBlur applies a separable gaussian blur to src and returns a new
// *image.NRGBA. Rows and columns are processed in parallel. sigma <= 0
// returns an unblurred copy.
func GaussianBlur(src *image.NRGBA, sigma float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if sigma <= 0 {
		return CloneNRGBA(src)
	}
	kern, radius := gaussianKernel1D(sigma)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	// horizontal pass
	var wg sync.WaitGroup
	for y := 0; y < h; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < w; x++ {
				sr, sg, sb, sa := 0.0, 0.0, 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					c := samplePixelClamped(src, x+k, y)
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					sa += float64(c.A) * wgt
				}
				i := tmp.PixOffset(x, y)
				tmp.Pix[i+0] = uint8(clampFloatToUint8(sr + 0.5))
				tmp.Pix[i+1] = uint8(clampFloatToUint8(sg + 0.5))
				tmp.Pix[i+2] = uint8(clampFloatToUint8(sb + 0.5))
				tmp.Pix[i+3] = uint8(clampFloatToUint8(sa + 0.5))
			}
		}(y)
	}
	wg.Wait()

	// vertical pass
	for x := 0; x < w; x++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			for y := 0; y < h; y++ {
				sr, sg, sb, sa := 0.0, 0.0, 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					c := samplePixelClamped(tmp, x, y+k)
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					sa += float64(c.A) * wgt
				}
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = uint8(clampFloatToUint8(sr + 0.5))
				dst.Pix[i+1] = uint8(clampFloatToUint8(sg + 0.5))
				dst.Pix[i+2] = uint8(clampFloatToUint8(sb + 0.5))
				dst.Pix[i+3] = uint8(clampFloatToUint8(sa + 0.5))
			}
		}(x)
	}
	wg.Wait()
	return dst
}

// Sharpen applies an unsharp mask: out = src + strength*(src - blurred).
// strength=0 is identity. Alpha is kept from src.
func Sharpen(src *image.NRGBA, strength, sigma float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if strength == 0 {
		return CloneNRGBA(src)
	}
	blurred := GaussianBlur(src, sigma)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				sv := float64(src.Pix[i+c])
				bv := float64(blurred.Pix[i+c])
				out.Pix[i+c] = uint8(clampFloatToUint8(sv + strength*(sv-bv)))
			}
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// RadialBlur approximates a zoom blur: every pixel is averaged with samples
// taken along the line toward the image center, reaching further in as
// strength grows. strength=0 is identity.
func RadialBlur(src *image.NRGBA, strength float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if strength <= 0 {
		return CloneNRGBA(src)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	cx := float64(w) / 2.0
	cy := float64(h) / 2.0
	const samples = 8
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	var wg sync.WaitGroup
	for y := 0; y < h; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < w; x++ {
				dx := float64(x) - cx
				dy := float64(y) - cy
				sr, sg, sb, sa := 0.0, 0.0, 0.0, 0.0
				for k := 0; k < samples; k++ {
					// pull the sample toward the center by up to strength*10%
					f := 1.0 - strength*0.1*float64(k)/float64(samples-1)
					rf, gf, bf, af := sampleBilinear(src, cx+dx*f, cy+dy*f)
					sr += rf
					sg += gf
					sb += bf
					sa += af
				}
				i := out.PixOffset(x, y)
				out.Pix[i+0] = uint8(clampFloatToUint8(sr/samples + 0.5))
				out.Pix[i+1] = uint8(clampFloatToUint8(sg/samples + 0.5))
				out.Pix[i+2] = uint8(clampFloatToUint8(sb/samples + 0.5))
				out.Pix[i+3] = uint8(clampFloatToUint8(sa/samples + 0.5))
			}
		}(y)
	}
	wg.Wait()
	return out
}

// TiltShift keeps a horizontal band of the image sharp and blurs the rest.
// center and band are fractions of the image height (band is the full height
// of the sharp region); the transition from sharp to blurred is linear over
// half a band on each side.
func TiltShift(src *image.NRGBA, center, band, sigma float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	blurred := GaussianBlur(src, sigma)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	half := band / 2.0
	ramp := half
	if ramp <= 0 {
		ramp = 1e-6
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		yf := (float64(y) + 0.5) / float64(h)
		dist := math.Abs(yf - center)
		mix := clamp01((dist - half) / ramp)
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				sv := float64(src.Pix[i+c])
				bv := float64(blurred.Pix[i+c])
				out.Pix[i+c] = uint8(clampFloatToUint8(sv*(1-mix) + bv*mix + 0.5))
			}
		}
	}
	return out
}
