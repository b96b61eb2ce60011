package engine

import (
	"errors"
	"image/color"
	"testing"
)

func TestFlattenBaseOnly(t *testing.T) {
	base := solidImage(3, 3, color.NRGBA{R: 11, G: 22, B: 33, A: 255})
	s := NewLayerStack(base)
	out, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !out.Equal(base) {
		t.Fatalf("flatten of an empty stack changed the base")
	}
}

func TestFlattenIdempotent(t *testing.T) {
	base := solidImage(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	s := NewLayerStack(base)
	s.AddLayerWith(solidImage(4, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 255}), "tint", 0.7, BlendMultiply)

	a, err := s.Flatten()
	if err != nil {
		t.Fatalf("first Flatten: %v", err)
	}
	b, err := s.Flatten()
	if err != nil {
		t.Fatalf("second Flatten: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("repeated Flatten produced different images")
	}
	// base must not have been written through
	if !s.Base().Equal(base) {
		t.Fatalf("Flatten mutated the base image")
	}
}

func TestFlattenCacheInvalidation(t *testing.T) {
	base := solidImage(2, 2, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	s := NewLayerStack(base)
	l := s.AddLayer(solidImage(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), "white")

	before, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if err := s.SetOpacity(l.ID(), 0.5); err != nil {
		t.Fatalf("SetOpacity: %v", err)
	}
	after, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten after change: %v", err)
	}
	if before.Equal(after) {
		t.Fatalf("opacity change did not invalidate the flatten cache")
	}
}

func TestOpacityZeroLeavesBase(t *testing.T) {
	base := solidImage(3, 2, color.NRGBA{R: 123, G: 45, B: 67, A: 255})
	top := solidImage(3, 2, color.NRGBA{R: 250, G: 1, B: 128, A: 255})
	for _, mode := range []BlendMode{BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendSoftLight} {
		s := NewLayerStack(base)
		s.AddLayerWith(top, "ghost", 0, mode)
		out, err := s.Flatten()
		if err != nil {
			t.Fatalf("%v: Flatten: %v", mode, err)
		}
		if !out.Equal(base) {
			t.Fatalf("%v at opacity 0 changed the composite", mode)
		}
	}
}

func TestOpacityOneNormalReplaces(t *testing.T) {
	base := solidImage(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	top := solidImage(2, 2, color.NRGBA{R: 77, G: 88, B: 99, A: 255})
	s := NewLayerStack(base)
	s.AddLayerWith(top, "cover", 1, BlendNormal)
	out, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !out.Equal(top) {
		t.Fatalf("normal blend at opacity 1 did not replace the base")
	}
}

func TestNormalHalfOpacityMidGray(t *testing.T) {
	base := solidImage(2, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	top := solidImage(2, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	s := NewLayerStack(base)
	s.AddLayerWith(top, "white", 0.5, BlendNormal)
	out, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	px := out.NRGBA()
	for c := 0; c < 3; c++ {
		if px.Pix[c] != 128 {
			t.Fatalf("channel %d = %d; want 128", c, px.Pix[c])
		}
	}
	if px.Pix[3] != 255 {
		t.Fatalf("alpha = %d; want 255", px.Pix[3])
	}
}

func TestBlendModeValues(t *testing.T) {
	// expected values computed from the blend formulas on [0,1] channels,
	// scaled back with round half up
	tests := []struct {
		mode    BlendMode
		top     uint8
		bottom  uint8
		opacity float64
		want    uint8
	}{
		{BlendMultiply, 102, 51, 1, 20},    // 0.4*0.2
		{BlendMultiply, 102, 51, 0.5, 36},  // mixed back toward the base
		{BlendScreen, 128, 64, 1, 160},     // 1-(1-t)(1-b)
		{BlendOverlay, 128, 64, 1, 64},     // dark branch: 2tb
		{BlendOverlay, 64, 192, 1, 161},    // light branch: 1-2(1-t)(1-b)
		{BlendSoftLight, 255, 64, 1, 112},  // dark branch
		{BlendSoftLight, 255, 192, 1, 221}, // light branch
	}
	for _, tc := range tests {
		base := solidImage(1, 1, color.NRGBA{R: tc.bottom, G: tc.bottom, B: tc.bottom, A: 255})
		top := solidImage(1, 1, color.NRGBA{R: tc.top, G: tc.top, B: tc.top, A: 255})
		s := NewLayerStack(base)
		s.AddLayerWith(top, "t", tc.opacity, tc.mode)
		out, err := s.Flatten()
		if err != nil {
			t.Fatalf("%v: Flatten: %v", tc.mode, err)
		}
		if got := out.NRGBA().Pix[0]; got != tc.want {
			t.Fatalf("%v top=%d bottom=%d opacity=%v = %d; want %d",
				tc.mode, tc.top, tc.bottom, tc.opacity, got, tc.want)
		}
	}
}

func TestHiddenLayerSkipped(t *testing.T) {
	base := solidImage(2, 2, color.NRGBA{R: 5, G: 5, B: 5, A: 255})
	s := NewLayerStack(base)
	l := s.AddLayer(solidImage(2, 2, color.NRGBA{R: 250, G: 250, B: 250, A: 255}), "loud")
	if err := s.SetVisibility(l.ID(), false); err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	out, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !out.Equal(base) {
		t.Fatalf("hidden layer leaked into the composite")
	}
}

func TestDimensionMismatch(t *testing.T) {
	base := solidImage(4, 4, color.NRGBA{A: 255})
	s := NewLayerStack(base)
	l := s.AddLayer(solidImage(2, 3, color.NRGBA{A: 255}), "small")
	_, err := s.Flatten()
	if err == nil {
		t.Fatalf("Flatten accepted a mismatched layer")
	}
	var dim *DimensionMismatchError
	if !errors.As(err, &dim) {
		t.Fatalf("error %T is not *DimensionMismatchError", err)
	}
	if dim.LayerID != l.ID() {
		t.Fatalf("mismatch reported for %q; want %q", dim.LayerID, l.ID())
	}
	if dim.LayerW != 2 || dim.LayerH != 3 || dim.BaseW != 4 || dim.BaseH != 4 {
		t.Fatalf("mismatch dims = layer %dx%d base %dx%d", dim.LayerW, dim.LayerH, dim.BaseW, dim.BaseH)
	}

	// a hidden mismatched layer must not break the composite
	if err := s.SetVisibility(l.ID(), false); err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	if _, err := s.Flatten(); err != nil {
		t.Fatalf("Flatten with hidden mismatch: %v", err)
	}
}

func TestLayerLookupAndIDs(t *testing.T) {
	base := solidImage(1, 1, color.NRGBA{A: 255})
	s := NewLayerStack(base)
	a := s.AddLayer(solidImage(1, 1, color.NRGBA{A: 255}), "first")
	b := s.AddLayer(solidImage(1, 1, color.NRGBA{A: 255}), "second")
	if a.ID() == b.ID() {
		t.Fatalf("duplicate layer ids: %q", a.ID())
	}
	got, err := s.Layer(b.ID())
	if err != nil {
		t.Fatalf("Layer(%q): %v", b.ID(), err)
	}
	if got.Name() != "second" {
		t.Fatalf("Layer returned %q; want second", got.Name())
	}
	if _, err := s.Layer("layer_999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing layer lookup = %v; want ErrNotFound", err)
	}
	if err := s.SetOpacity("nope", 0.5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetOpacity on missing layer = %v; want ErrNotFound", err)
	}
	if err := s.RemoveLayer("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("RemoveLayer on missing layer = %v; want ErrNotFound", err)
	}

	// ids are not reused after removal
	if err := s.RemoveLayer(b.ID()); err != nil {
		t.Fatalf("RemoveLayer: %v", err)
	}
	c := s.AddLayer(solidImage(1, 1, color.NRGBA{A: 255}), "third")
	if c.ID() == b.ID() {
		t.Fatalf("layer id %q was reused", c.ID())
	}
}

func TestOpacityClamped(t *testing.T) {
	base := solidImage(1, 1, color.NRGBA{A: 255})
	s := NewLayerStack(base)
	l := s.AddLayerWith(solidImage(1, 1, color.NRGBA{A: 255}), "hot", 1.7, BlendNormal)
	if l.Opacity() != 1 {
		t.Fatalf("opacity 1.7 clamped to %v; want 1", l.Opacity())
	}
	if err := s.SetOpacity(l.ID(), -0.3); err != nil {
		t.Fatalf("SetOpacity: %v", err)
	}
	if l.Opacity() != 0 {
		t.Fatalf("opacity -0.3 clamped to %v; want 0", l.Opacity())
	}
}

func TestMoveLayer(t *testing.T) {
	base := solidImage(2, 2, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	s := NewLayerStack(base)
	red := s.AddLayer(solidImage(2, 2, color.NRGBA{R: 200, A: 255}), "red")
	green := s.AddLayer(solidImage(2, 2, color.NRGBA{G: 200, A: 255}), "green")

	// green on top wins at full opacity
	out, err := s.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if px := out.NRGBA(); px.Pix[1] != 200 {
		t.Fatalf("top layer G = %d; want 200", px.Pix[1])
	}

	if err := s.MoveLayer(red.ID(), 1); err != nil {
		t.Fatalf("MoveLayer: %v", err)
	}
	names := []string{}
	for _, l := range s.Layers() {
		names = append(names, l.Name())
	}
	if names[0] != "green" || names[1] != "red" {
		t.Fatalf("order after move = %v; want [green red]", names)
	}
	out, err = s.Flatten()
	if err != nil {
		t.Fatalf("Flatten after move: %v", err)
	}
	if px := out.NRGBA(); px.Pix[0] != 200 {
		t.Fatalf("after move top layer R = %d; want 200", px.Pix[0])
	}

	if err := s.MoveLayer(green.ID(), 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("MoveLayer(5) = %v; want ErrIndexOutOfRange", err)
	}
	if err := s.MoveLayer("nope", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MoveLayer on missing layer = %v; want ErrNotFound", err)
	}
}

func TestParseBlendMode(t *testing.T) {
	cases := map[string]BlendMode{
		"":           BlendNormal,
		"normal":     BlendNormal,
		"Multiply":   BlendMultiply,
		"SCREEN":     BlendScreen,
		"overlay":    BlendOverlay,
		"soft-light": BlendSoftLight,
		"soft_light": BlendSoftLight,
		"softlight":  BlendSoftLight,
	}
	for in, want := range cases {
		got, err := ParseBlendMode(in)
		if err != nil {
			t.Fatalf("ParseBlendMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseBlendMode(%q) = %v; want %v", in, got, want)
		}
	}
	if _, err := ParseBlendMode("dodge"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ParseBlendMode(dodge) = %v; want ErrNotFound", err)
	}
}
