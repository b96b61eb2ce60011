package stdimg

import (
	"fmt"
	"image"
	"math"
)

// sampleBilinear samples src at floating coordinates (x,y) using bilinear interpolation.
func sampleBilinear(src *image.NRGBA, x, y float64) (r, g, b, a float64) {
	if src == nil {
		return
	}
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	c00 := samplePixelClamped(src, x0, y0)
	c10 := samplePixelClamped(src, x1, y0)
	c01 := samplePixelClamped(src, x0, y1)
	c11 := samplePixelClamped(src, x1, y1)

	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	r0 := float64(c00.R)*(1-xFrac) + float64(c10.R)*xFrac
	r1 := float64(c01.R)*(1-xFrac) + float64(c11.R)*xFrac
	g0 := float64(c00.G)*(1-xFrac) + float64(c10.G)*xFrac
	g1 := float64(c01.G)*(1-xFrac) + float64(c11.G)*xFrac
	b0 := float64(c00.B)*(1-xFrac) + float64(c10.B)*xFrac
	b1 := float64(c01.B)*(1-xFrac) + float64(c11.B)*xFrac
	a0 := float64(c00.A)*(1-xFrac) + float64(c10.A)*xFrac
	a1 := float64(c01.A)*(1-xFrac) + float64(c11.A)*xFrac

	r = r0*(1-yFrac) + r1*yFrac
	g = g0*(1-yFrac) + g1*yFrac
	b = b0*(1-yFrac) + b1*yFrac
	a = a0*(1-yFrac) + a1*yFrac
	return
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x = math.Pi * x
	return math.Sin(x) / x
}

// lanczosKernel returns lanczos weight for distance x with parameter a.
func lanczosKernel(x, a float64) float64 {
	x = math.Abs(x)
	if x < 1e-12 {
		return 1
	}
	if x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

// resampleLanczos resamples src to dstW x dstH using Lanczos with window a (commonly 3).
func resampleLanczos(src *image.NRGBA, dstW, dstH int, a float64) *image.NRGBA {
	srcB := src.Bounds()
	srcW := srcB.Dx()
	srcH := srcB.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	xScale := float64(srcW) / float64(dstW)
	yScale := float64(srcH) / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			sumR, sumG, sumB, sumA := 0.0, 0.0, 0.0, 0.0
			weightSum := 0.0
			xMin := int(math.Floor(sx - a + 1))
			xMax := int(math.Ceil(sx + a - 1))
			yMin := int(math.Floor(sy - a + 1))
			yMax := int(math.Ceil(sy + a - 1))
			for yi := yMin; yi <= yMax; yi++ {
				wy := lanczosKernel(float64(yi)-sy, a)
				for xi := xMin; xi <= xMax; xi++ {
					wx := lanczosKernel(float64(xi)-sx, a)
					w := wx * wy
					c := samplePixelClamped(src, xi, yi)
					sumR += float64(c.R) * w
					sumG += float64(c.G) * w
					sumB += float64(c.B) * w
					sumA += float64(c.A) * w
					weightSum += w
				}
			}
			if weightSum == 0 {
				weightSum = 1
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = uint8(clampFloatToUint8(sumR/weightSum + 0.5))
			dst.Pix[i+1] = uint8(clampFloatToUint8(sumG/weightSum + 0.5))
			dst.Pix[i+2] = uint8(clampFloatToUint8(sumB/weightSum + 0.5))
			dst.Pix[i+3] = uint8(clampFloatToUint8(sumA/weightSum + 0.5))
		}
	}
	return dst
}

// resampleBilinear resamples src to dstW x dstH with bilinear interpolation.
func resampleBilinear(src *image.NRGBA, dstW, dstH int) *image.NRGBA {
	srcB := src.Bounds()
	xScale := float64(srcB.Dx()) / float64(dstW)
	yScale := float64(srcB.Dy()) / float64(dstH)
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			r, g, b, a := sampleBilinear(src, sx, sy)
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = uint8(clampFloatToUint8(r + 0.5))
			dst.Pix[i+1] = uint8(clampFloatToUint8(g + 0.5))
			dst.Pix[i+2] = uint8(clampFloatToUint8(b + 0.5))
			dst.Pix[i+3] = uint8(clampFloatToUint8(a + 0.5))
		}
	}
	return dst
}

// Resize scales src to width x height. Downscales use Lanczos (a=3) to avoid
// aliasing, upscales use bilinear.
func Resize(src *image.NRGBA, width, height int) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if width == b.Dx() && height == b.Dy() {
		return CloneNRGBA(src)
	}
	if width < b.Dx() || height < b.Dy() {
		return resampleLanczos(src, width, height, 3.0)
	}
	return resampleBilinear(src, width, height)
}

// Crop extracts the width x height rectangle with top-left corner at (x,y).
// The rectangle must lie entirely within the image.
func Crop(src *image.NRGBA, x, y, width, height int) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	b := src.Bounds()
	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > b.Dx() || y+height > b.Dy() {
		return nil, fmt.Errorf("crop %dx%d at (%d,%d) exceeds %dx%d image",
			width, height, x, y, b.Dx(), b.Dy())
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for row := 0; row < height; row++ {
		si := src.PixOffset(x, y+row)
		di := out.PixOffset(0, row)
		copy(out.Pix[di:di+width*4], src.Pix[si:si+width*4])
	}
	return out, nil
}

// FlipH mirrors src horizontally (left-right).
func FlipH(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(w-1-x, y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

// FlipV mirrors src vertically (top-bottom).
func FlipV(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(x, h-1-y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

// Rotate90 rotates src 90 degrees clockwise.
func Rotate90(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(h-1-y, x)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

// Rotate180 rotates src 180 degrees.
func Rotate180(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(w-1-x, h-1-y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

// Rotate270 rotates src 90 degrees counter-clockwise.
func Rotate270(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(y, w-1-x)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}
