package stdimg

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestVignetteCenterUntouched(t *testing.T) {
	src := makeSolidNRGBA(5, 5, color.NRGBA{200, 200, 200, 255})
	out := Vignette(src, 1.0)
	if got := pixAt(out, 2, 2); got.R != 200 {
		t.Fatalf("center pixel should keep its value, got %d", got.R)
	}
	if got := pixAt(out, 0, 0); got.R != 40 { // d/maxd = 0.8 at the corner
		t.Fatalf("corner pixel: got %d, want 40", got.R)
	}
	if got := pixAt(out, 0, 0); got.A != 255 {
		t.Fatalf("vignette must not touch alpha, got %d", got.A)
	}
}

func TestVignetteZeroStrengthIdentity(t *testing.T) {
	src := makeSolidNRGBA(6, 4, color.NRGBA{10, 140, 250, 128})
	out := Vignette(src, 0)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("strength=0 should be identity")
	}
}

func TestVignetteDarkensMonotonically(t *testing.T) {
	src := makeSolidNRGBA(21, 21, color.NRGBA{220, 220, 220, 255})
	out := Vignette(src, 0.8)
	prev := pixAt(out, 10, 10).R
	for x := 11; x < 21; x++ {
		cur := pixAt(out, x, 10).R
		if cur > prev {
			t.Fatalf("brightness should not increase outward: %d then %d at x=%d", prev, cur, x)
		}
		prev = cur
	}
}

func TestChromaticShiftsChannels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 1))
	for x := 0; x < 10; x++ {
		i := src.PixOffset(x, 0)
		src.Pix[i+0] = uint8(x * 20)
		src.Pix[i+1] = uint8(x * 10)
		src.Pix[i+2] = uint8(x * 5)
		src.Pix[i+3] = 255
	}
	out := Chromatic(src, 2)
	got := pixAt(out, 4, 0)
	if got.R != pixAt(src, 6, 0).R {
		t.Errorf("R should come from x+2: got %d, want %d", got.R, pixAt(src, 6, 0).R)
	}
	if got.G != pixAt(src, 4, 0).G {
		t.Errorf("G should stay: got %d, want %d", got.G, pixAt(src, 4, 0).G)
	}
	if got.B != pixAt(src, 2, 0).B {
		t.Errorf("B should come from x-2: got %d, want %d", got.B, pixAt(src, 2, 0).B)
	}
	// clamped at the border
	if got := pixAt(out, 9, 0); got.R != pixAt(src, 9, 0).R {
		t.Errorf("R at the right edge clamps to the last column")
	}
}

func TestChromaticZeroIdentity(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{1, 2, 3, 4})
	out := Chromatic(src, 0)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("shift=0 should copy the input")
	}
}

func TestDistortZeroIdentity(t *testing.T) {
	src := makeSolidNRGBA(5, 5, color.NRGBA{9, 8, 7, 255})
	out := Distort(src, 0)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("k=0 should copy the input")
	}
}

func TestDistortKeepsCenterAndSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = uint8(x * 25)
			src.Pix[i+1] = uint8(y * 25)
			src.Pix[i+2] = 50
			src.Pix[i+3] = 255
		}
	}
	out := Distort(src, 0.5)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	// the exact center has zero radius and must be sampled in place
	if got, want := pixAt(out, 4, 4), pixAt(src, 4, 4); got != want {
		t.Fatalf("center pixel moved: got %v, want %v", got, want)
	}
	// barrel distortion samples outward: a pixel left of center reads from
	// further left, where the R ramp is lower
	if got := pixAt(out, 1, 4).R; got >= pixAt(src, 1, 4).R {
		t.Fatalf("left-of-center output should sample further left, got %d", got)
	}
}
