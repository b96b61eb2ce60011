package stdimg

import (
	"image"
	"math"
)

// Histogram computes 256-bin per-channel histograms.
func Histogram(src *image.NRGBA) (r, g, b []int) {
	if src == nil {
		return nil, nil, nil
	}
	r = make([]int, 256)
	g = make([]int, 256)
	b = make([]int, 256)
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r[src.Pix[i+0]]++
			g[src.Pix[i+1]]++
			b[src.Pix[i+2]]++
		}
	}
	return r, g, b
}

// Equalize performs histogram equalization per channel.
func Equalize(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	rHist, gHist, bHist := Histogram(src)
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	total := w * h
	if total == 0 {
		return CloneNRGBA(src)
	}

	buildMap := func(hist []int) [256]uint8 {
		var m [256]uint8
		cdf := 0
		for i := 0; i < 256; i++ {
			cdf += hist[i]
			m[i] = uint8(math.Round(float64(cdf) / float64(total) * 255.0))
		}
		return m
	}
	mapR := buildMap(rHist)
	mapG := buildMap(gHist)
	mapB := buildMap(bHist)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			out.Pix[i+0] = mapR[src.Pix[i+0]]
			out.Pix[i+1] = mapG[src.Pix[i+1]]
			out.Pix[i+2] = mapB[src.Pix[i+2]]
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// Report summarizes an image for the analyze command.
type Report struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	AspectRatio      float64 `json:"aspect_ratio"`
	BrightnessMean   float64 `json:"brightness_mean"`
	BrightnessStddev float64 `json:"brightness_stddev"`
	Sharpness        float64 `json:"sharpness"`
	HistogramR       []int   `json:"histogram_r"`
	HistogramG       []int   `json:"histogram_g"`
	HistogramB       []int   `json:"histogram_b"`
}

// Analyze measures basic statistics of src: luminance mean and stddev,
// per-channel histograms, and sharpness as the variance of the 3x3 Laplacian
// response (larger means more fine detail).
func Analyze(src *image.NRGBA) Report {
	var rep Report
	if src == nil {
		return rep
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	rep.Width = w
	rep.Height = h
	if h > 0 {
		rep.AspectRatio = float64(w) / float64(h)
	}
	rep.HistogramR, rep.HistogramG, rep.HistogramB = Histogram(src)
	if w == 0 || h == 0 {
		return rep
	}

	lum := make([]float64, w*h)
	sum := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			v := luma601(float64(src.Pix[i+0]), float64(src.Pix[i+1]), float64(src.Pix[i+2]))
			lum[y*w+x] = v
			sum += v
		}
	}
	n := float64(w * h)
	mean := sum / n
	varSum := 0.0
	for _, v := range lum {
		d := v - mean
		varSum += d * d
	}
	rep.BrightnessMean = mean
	rep.BrightnessStddev = math.Sqrt(varSum / n)

	// 3x3 Laplacian response over the luminance plane, edges clamped
	at := func(x, y int) float64 {
		return lum[clampInt(y, 0, h-1)*w+clampInt(x, 0, w-1)]
	}
	lapSum := 0.0
	lapSumSq := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lap := at(x-1, y) + at(x+1, y) + at(x, y-1) + at(x, y+1) - 4*at(x, y)
			lapSum += lap
			lapSumSq += lap * lap
		}
	}
	lapMean := lapSum / n
	rep.Sharpness = lapSumSq/n - lapMean*lapMean
	return rep
}
