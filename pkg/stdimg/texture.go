package stdimg

import (
	"image"
	"math"
	"math/rand"
)

// Grain adds monochromatic film grain: one gaussian sample per pixel, added
// to all three color channels. The noise stddev is intensity*30 levels.
// seed makes the output deterministic; seed==0 uses a fixed seed so repeated
// runs stay reproducible.
func Grain(src *image.NRGBA, intensity float64, seed int64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if intensity <= 0 {
		return CloneNRGBA(src)
	}
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))
	sigma := intensity * 30.0
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			n := gaussianSample(rng, sigma)
			for c := 0; c < 3; c++ {
				out.Pix[i+c] = uint8(clampFloatToUint8(float64(src.Pix[i+c]) + n))
			}
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// gaussianSample returns a normal(0,std) sample using Box-Muller
func gaussianSample(rng *rand.Rand, std float64) float64 {
	if std <= 0 {
		return 0
	}
	u1 := rng.Float64()
	u2 := rng.Float64()
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z0 * std
}

// Clarity adds a midtone-weighted high-pass to boost local contrast:
// out = v + strength*(v-blurred)*mask with mask = 1-|lum-128|/128, so
// shadows and highlights are protected. Negative strength softens instead.
func Clarity(src *image.NRGBA, strength float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if strength == 0 {
		return CloneNRGBA(src)
	}
	blurred := GaussianBlur(src, 3.0)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			lum := luma601(float64(src.Pix[i+0]), float64(src.Pix[i+1]), float64(src.Pix[i+2]))
			mask := 1.0 - math.Abs(lum-128.0)/128.0
			for c := 0; c < 3; c++ {
				sv := float64(src.Pix[i+c])
				bv := float64(blurred.Pix[i+c])
				out.Pix[i+c] = uint8(clampFloatToUint8(sv + strength*(sv-bv)*mask))
			}
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// DetailEnhance adds a fine-radius high-pass without the midtone mask
// Clarity uses, lifting small texture everywhere.
func DetailEnhance(src *image.NRGBA, strength float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if strength == 0 {
		return CloneNRGBA(src)
	}
	return Sharpen(src, strength, 1.5)
}

// Denoise applies a median filter with the given window radius (radius==1 is
// a 3x3 window). Per row, channel histograms slide along x so each step only
// adds and removes one column.
func Denoise(src *image.NRGBA, radius int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if radius <= 0 {
		return CloneNRGBA(src)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	medianOf := func(hist *[256]int, count int) uint8 {
		half := (count + 1) / 2
		sum := 0
		for v := 0; v < 256; v++ {
			sum += hist[v]
			if sum >= half {
				return uint8(v)
			}
		}
		return 0
	}
	for y := 0; y < h; y++ {
		y0 := clampInt(y-radius, 0, h-1)
		y1 := clampInt(y+radius, 0, h-1)
		var rHist, gHist, bHist, aHist [256]int
		count := 0
		addColumn := func(ox int) {
			if ox < 0 || ox >= w {
				return
			}
			for oy := y0; oy <= y1; oy++ {
				i := src.PixOffset(ox, oy)
				rHist[src.Pix[i+0]]++
				gHist[src.Pix[i+1]]++
				bHist[src.Pix[i+2]]++
				aHist[src.Pix[i+3]]++
				count++
			}
		}
		removeColumn := func(ox int) {
			if ox < 0 || ox >= w {
				return
			}
			for oy := y0; oy <= y1; oy++ {
				i := src.PixOffset(ox, oy)
				rHist[src.Pix[i+0]]--
				gHist[src.Pix[i+1]]--
				bHist[src.Pix[i+2]]--
				aHist[src.Pix[i+3]]--
				count--
			}
		}
		for ox := -radius; ox <= radius; ox++ {
			addColumn(ox)
		}
		for x := 0; x < w; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = medianOf(&rHist, count)
			out.Pix[i+1] = medianOf(&gHist, count)
			out.Pix[i+2] = medianOf(&bHist, count)
			out.Pix[i+3] = medianOf(&aHist, count)
			removeColumn(x - radius)
			addColumn(x + radius + 1)
		}
	}
	return out
}
