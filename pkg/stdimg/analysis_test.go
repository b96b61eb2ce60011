package stdimg

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestHistogramCounts(t *testing.T) {
	src := quad(
		color.NRGBA{10, 20, 30, 255},
		color.NRGBA{10, 20, 30, 255},
		color.NRGBA{10, 200, 30, 255},
		color.NRGBA{50, 20, 30, 255},
	)
	r, g, b := Histogram(src)
	if r[10] != 3 || r[50] != 1 {
		t.Errorf("red counts wrong: r[10]=%d r[50]=%d", r[10], r[50])
	}
	if g[20] != 3 || g[200] != 1 {
		t.Errorf("green counts wrong")
	}
	if b[30] != 4 {
		t.Errorf("blue counts wrong: b[30]=%d", b[30])
	}
}

func TestAnalyzeSolid(t *testing.T) {
	src := makeSolidNRGBA(10, 8, color.NRGBA{50, 100, 150, 255})
	rep := Analyze(src)
	if rep.Width != 10 || rep.Height != 8 {
		t.Fatalf("dimensions: %dx%d", rep.Width, rep.Height)
	}
	if math.Abs(rep.AspectRatio-1.25) > 1e-12 {
		t.Errorf("aspect ratio: %g", rep.AspectRatio)
	}
	wantMean := 0.299*50 + 0.587*100 + 0.114*150
	if math.Abs(rep.BrightnessMean-wantMean) > 1e-9 {
		t.Errorf("mean: got %g, want %g", rep.BrightnessMean, wantMean)
	}
	if rep.BrightnessStddev > 1e-9 {
		t.Errorf("solid image should have zero stddev, got %g", rep.BrightnessStddev)
	}
	if rep.Sharpness > 1e-9 {
		t.Errorf("solid image should have zero sharpness, got %g", rep.Sharpness)
	}
	if rep.HistogramR[50] != 80 {
		t.Errorf("histogram: r[50]=%d, want 80", rep.HistogramR[50])
	}
}

func TestAnalyzeSharpnessOrdersDetail(t *testing.T) {
	flat := makeSolidNRGBA(16, 16, color.NRGBA{128, 128, 128, 255})
	checker := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			i := checker.PixOffset(x, y)
			checker.Pix[i+0] = v
			checker.Pix[i+1] = v
			checker.Pix[i+2] = v
			checker.Pix[i+3] = 255
		}
	}
	soft := GaussianBlur(checker, 0.5)

	sFlat := Analyze(flat).Sharpness
	sSoft := Analyze(soft).Sharpness
	sCrisp := Analyze(checker).Sharpness
	if !(sCrisp > sSoft && sSoft > sFlat) {
		t.Fatalf("sharpness should order crisp > soft > flat, got %g %g %g", sCrisp, sSoft, sFlat)
	}
}

func TestEqualizeTwoValues(t *testing.T) {
	// two pixels at 100 and two at 101: the CDF maps them to 128 and 255
	src := quad(
		color.NRGBA{100, 100, 100, 255},
		color.NRGBA{100, 100, 100, 255},
		color.NRGBA{101, 101, 101, 255},
		color.NRGBA{101, 101, 101, 255},
	)
	out := Equalize(src)
	if got := pixAt(out, 0, 0).R; got != 128 {
		t.Errorf("low value: got %d, want 128", got)
	}
	if got := pixAt(out, 1, 1).R; got != 255 {
		t.Errorf("high value: got %d, want 255", got)
	}
	if got := pixAt(out, 0, 0).A; got != 255 {
		t.Errorf("equalize must keep alpha")
	}
}

func TestEqualizeUniformStaysUniform(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{77, 77, 77, 255})
	out := Equalize(src)
	got := pixAt(out, 2, 2)
	if got.R != got.G || got.G != got.B {
		t.Fatalf("uniform image should stay uniform, got %v", got)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if pixAt(out, x, y) != got {
				t.Fatalf("all pixels should map identically")
			}
		}
	}
}
