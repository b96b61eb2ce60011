package stdimg

import (
	"image"
	"math"
)

// WhiteBalance shifts the color temperature and tint of src.
// temperature in [-1,1]: positive warms (more red, less blue), negative cools.
// tint in [-1,1]: positive shifts toward green, negative toward magenta.
func WhiteBalance(src *image.NRGBA, temperature, tint float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	tempFactor := 1.0 + temperature*0.3
	tintFactor := 1.0 + tint*0.2
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0]) * tempFactor
			g := float64(src.Pix[i+1]) * tintFactor
			bl := float64(src.Pix[i+2]) / tempFactor
			out.Pix[i+0] = uint8(clampFloatToUint8(r))
			out.Pix[i+1] = uint8(clampFloatToUint8(g))
			out.Pix[i+2] = uint8(clampFloatToUint8(bl))
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// Exposure multiplies every RGB channel by 2^ev. ev=0 is identity,
// ev=1 doubles, ev=-1 halves.
func Exposure(src *image.NRGBA, ev float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	mult := math.Pow(2, ev)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				out.Pix[i+c] = uint8(clampFloatToUint8(float64(src.Pix[i+c]) * mult))
			}
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// Contrast scales the distance of every RGB channel from mid-gray:
// out = (v-128)*factor + 128. factor=1 is identity, 0 collapses to gray.
func Contrast(src *image.NRGBA, factor float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := (float64(src.Pix[i+c])-128.0)*factor + 128.0
				out.Pix[i+c] = uint8(clampFloatToUint8(v))
			}
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// Saturation mixes each pixel between its luminance and its original color:
// out = lum + (v-lum)*factor. factor=1 is identity, 0 is grayscale, >1
// exaggerates color.
func Saturation(src *image.NRGBA, factor float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0])
			g := float64(src.Pix[i+1])
			bl := float64(src.Pix[i+2])
			lum := luma601(r, g, bl)
			out.Pix[i+0] = uint8(clampFloatToUint8(lum + (r-lum)*factor))
			out.Pix[i+1] = uint8(clampFloatToUint8(lum + (g-lum)*factor))
			out.Pix[i+2] = uint8(clampFloatToUint8(lum + (bl-lum)*factor))
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// Grayscale converts to Rec.601 luminance, keeping alpha.
func Grayscale(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			lum := uint8(clampFloatToUint8(luma601(
				float64(src.Pix[i+0]),
				float64(src.Pix[i+1]),
				float64(src.Pix[i+2]))))
			out.Pix[i+0] = lum
			out.Pix[i+1] = lum
			out.Pix[i+2] = lum
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// HSLAdjust rotates hue by hueDegrees and scales saturation and lightness
// by the given factors (1 = unchanged).
func HSLAdjust(src *image.NRGBA, hueDegrees, satFactor, lightFactor float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	hueShift := hueDegrees / 360.0
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0]) / 255.0
			g := float64(src.Pix[i+1]) / 255.0
			bl := float64(src.Pix[i+2]) / 255.0

			hv, s, l := rgbToHsl(r, g, bl)
			hv = math.Mod(hv+hueShift+1.0, 1.0)
			s = clamp01(s * satFactor)
			l = clamp01(l * lightFactor)
			r2, g2, b2 := hslToRgb(hv, s, l)

			out.Pix[i+0] = uint8(clampFloatToUint8(r2 * 255.0))
			out.Pix[i+1] = uint8(clampFloatToUint8(g2 * 255.0))
			out.Pix[i+2] = uint8(clampFloatToUint8(b2 * 255.0))
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// RGB<->HSL conversions operate on 0..1 floats.

func rgbToHsl(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		// achromatic
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h /= 6
	return
}

func hueToRgb(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func hslToRgb(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		// achromatic
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r = hueToRgb(p, q, h+1.0/3.0)
	g = hueToRgb(p, q, h)
	b = hueToRgb(p, q, h-1.0/3.0)
	return
}
