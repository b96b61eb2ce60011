package stdimg

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ParseCurve parses a tone curve given as "x:y,x:y,..." control points with
// coordinates in [0,255]. The x values must be strictly increasing and at
// least two points are required. The result is a 256-entry lookup table,
// piecewise-linear between points and flat beyond the first and last.
func ParseCurve(s string) ([256]uint8, error) {
	var lut [256]uint8
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return lut, fmt.Errorf("need at least 2 control points, got %d", len(parts))
	}
	xs := make([]float64, 0, len(parts))
	ys := make([]float64, 0, len(parts))
	for _, p := range parts {
		xy := strings.SplitN(strings.TrimSpace(p), ":", 2)
		if len(xy) != 2 {
			return lut, fmt.Errorf("control point %q is not x:y", p)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return lut, fmt.Errorf("control point %q: %w", p, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return lut, fmt.Errorf("control point %q: %w", p, err)
		}
		if x < 0 || x > 255 || y < 0 || y > 255 {
			return lut, fmt.Errorf("control point %q out of range [0,255]", p)
		}
		if len(xs) > 0 && x <= xs[len(xs)-1] {
			return lut, fmt.Errorf("control point x values must be increasing (%v after %v)", x, xs[len(xs)-1])
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	seg := 0
	for v := 0; v < 256; v++ {
		fv := float64(v)
		switch {
		case fv <= xs[0]:
			lut[v] = uint8(clampFloatToUint8(ys[0] + 0.5))
		case fv >= xs[len(xs)-1]:
			lut[v] = uint8(clampFloatToUint8(ys[len(ys)-1] + 0.5))
		default:
			for fv > xs[seg+1] {
				seg++
			}
			t := (fv - xs[seg]) / (xs[seg+1] - xs[seg])
			lut[v] = uint8(clampFloatToUint8(ys[seg] + t*(ys[seg+1]-ys[seg]) + 0.5))
		}
	}
	return lut, nil
}

// Curves applies a tone-curve lookup table to every RGB channel.
func Curves(src *image.NRGBA, lut [256]uint8) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			out.Pix[i+0] = lut[src.Pix[i+0]]
			out.Pix[i+1] = lut[src.Pix[i+1]]
			out.Pix[i+2] = lut[src.Pix[i+2]]
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}
