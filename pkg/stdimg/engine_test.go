package stdimg

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/Fepozopo/darkroom/pkg/engine"
)

func TestApplyUnknownOperation(t *testing.T) {
	src := makeSolidNRGBA(2, 2, color.NRGBA{1, 2, 3, 255})
	if _, err := Apply(src, "posterize", nil); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestApplyNilSource(t *testing.T) {
	if _, err := Apply(nil, "grayscale", nil); err == nil {
		t.Fatalf("nil source should fail")
	}
}

func TestApplyRejectsBadParams(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{100, 100, 100, 255})
	cases := []struct {
		name    string
		op      string
		params  engine.Params
		key     string
		partial string
	}{
		{"missing required", "contrast", engine.Params{}, "factor", "required"},
		{"unknown key", "contrast", engine.Params{"factor": 1.0, "bogus": 2.0}, "bogus", "unknown"},
		{"below min", "contrast", engine.Params{"factor": -1.0}, "factor", ">="},
		{"above max", "vignette", engine.Params{"strength": 1.5}, "strength", "<="},
		{"wrong type", "contrast", engine.Params{"factor": "loud"}, "factor", "number"},
		{"string op given number", "curves", engine.Params{"points": 3.0}, "points", "string"},
		{"fractional int", "denoise", engine.Params{"radius": 1.5}, "radius", "integer"},
		{"zero sigma", "blur", engine.Params{"sigma": 0.0}, "sigma", "> 0"},
		{"bad rotation", "rotate", engine.Params{"degrees": 45.0}, "degrees", "90"},
		{"bad curve", "curves", engine.Params{"points": "0:0"}, "points", "control points"},
		{"bad color", "watermark", engine.Params{"text": "x", "x": 1.0, "y": 1.0, "color": "chartreuse"}, "color", "color"},
		{"crop too wide", "crop", engine.Params{"x": 2.0, "y": 0.0, "width": 3.0, "height": 2.0}, "width", "exceeds"},
		{"crop too tall", "crop", engine.Params{"x": 0.0, "y": 2.0, "width": 2.0, "height": 3.0}, "height", "exceeds"},
	}
	for _, c := range cases {
		_, err := Apply(src, c.op, c.params)
		var perr *engine.ParameterError
		if !errors.As(err, &perr) {
			t.Errorf("%s: want ParameterError, got %v", c.name, err)
			continue
		}
		if perr.Op != c.op || perr.Key != c.key {
			t.Errorf("%s: got op=%q key=%q, want op=%q key=%q", c.name, perr.Op, perr.Key, c.op, c.key)
		}
		if !bytes.Contains([]byte(perr.Reason), []byte(c.partial)) {
			t.Errorf("%s: reason %q does not mention %q", c.name, perr.Reason, c.partial)
		}
	}
}

// minimalParams holds a valid invocation for every operation in Ops; the
// test below fails when an op is added without a row here.
var minimalParams = map[string]engine.Params{
	"whitebalance": {"temperature": 0.2, "tint": -0.1},
	"exposure":     {"ev": 0.5},
	"contrast":     {"factor": 1.2},
	"saturation":   {"factor": 0.8},
	"hsl":          {"hue": 30.0},
	"curves":       {"points": "0:0,255:255"},
	"colorgrade":   {"shadow_b": 0.1, "highlight_r": -0.1},
	"grayscale":    {},
	"equalize":     {},
	"blur":         {"sigma": 1.0},
	"sharpen":      {"strength": 0.5},
	"radialblur":   {"strength": 0.4},
	"tiltshift":    {"center": 0.5, "band": 0.4},
	"vignette":     {"strength": 0.5},
	"chromatic":    {"shift": 1.0},
	"distort":      {"k": 0.3},
	"grain":        {"intensity": 0.2, "seed": 9.0},
	"clarity":      {"strength": 0.5},
	"detail":       {"strength": 0.5},
	"denoise":      {"radius": 1.0},
	"resize":       {"width": 4.0, "height": 3.0},
	"crop":         {"x": 1.0, "y": 1.0, "width": 4.0, "height": 4.0},
	"fliph":        {},
	"flipv":        {},
	"rotate":       {"degrees": 90.0},
	"watermark":    {"text": "hi", "x": 1.0, "y": 5.0},
}

func TestApplyEveryOperation(t *testing.T) {
	src := makeSolidNRGBA(6, 6, color.NRGBA{90, 110, 130, 255})
	// every op preserves the source size except the two that reshape it
	wantSize := map[string][2]int{"resize": {4, 3}, "crop": {4, 4}}
	for _, op := range Ops {
		params, ok := minimalParams[op.Name]
		if !ok {
			t.Errorf("no test parameters for op %q", op.Name)
			continue
		}
		out, err := Apply(src, op.Name, params)
		if err != nil {
			t.Errorf("%s: %v", op.Name, err)
			continue
		}
		if out == nil {
			t.Errorf("%s: nil result", op.Name)
			continue
		}
		want, ok := wantSize[op.Name]
		if !ok {
			want = [2]int{6, 6}
		}
		if got := out.Bounds(); got.Dx() != want[0] || got.Dy() != want[1] {
			t.Errorf("%s: output %dx%d, want %dx%d", op.Name, got.Dx(), got.Dy(), want[0], want[1])
		}
	}
	for name := range minimalParams {
		if _, ok := LookupOp(name); !ok {
			t.Errorf("test table references unknown op %q", name)
		}
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := makeSolidNRGBA(6, 6, color.NRGBA{90, 110, 130, 255})
	before := append([]uint8(nil), src.Pix...)
	for _, name := range []string{"exposure", "blur", "rotate", "watermark", "grain"} {
		if _, err := Apply(src, name, minimalParams[name]); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(src.Pix, before) {
			t.Fatalf("%s mutated its input", name)
		}
	}
}

func TestSnapshotsMatchDirectApplication(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{80, 120, 160, 255})
	reg := Transforms()

	p := engine.NewPipeline("grade")
	if err := p.AddOperation("contrast", reg["contrast"], engine.Params{"factor": 1.2}); err != nil {
		t.Fatalf("add contrast: %v", err)
	}
	if err := p.AddOperation("vignette", reg["vignette"], engine.Params{"strength": 0.3}); err != nil {
		t.Fatalf("add vignette: %v", err)
	}
	final, err := p.Execute(engine.NewImage(src), true)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if p.SnapshotCount() != 2 {
		t.Fatalf("SnapshotCount = %d; want 2", p.SnapshotCount())
	}

	afterContrast, err := Apply(src, "contrast", engine.Params{"factor": 1.2})
	if err != nil {
		t.Fatalf("contrast: %v", err)
	}
	snap0, err := p.Snapshot(0)
	if err != nil {
		t.Fatalf("Snapshot(0): %v", err)
	}
	if !bytes.Equal(snap0.NRGBA().Pix, afterContrast.Pix) {
		t.Fatalf("snapshot 0 differs from contrast applied directly")
	}

	afterVignette, err := Apply(afterContrast, "vignette", engine.Params{"strength": 0.3})
	if err != nil {
		t.Fatalf("vignette: %v", err)
	}
	if !bytes.Equal(final.NRGBA().Pix, afterVignette.Pix) {
		t.Fatalf("final differs from vignette applied to snapshot 0")
	}
	snap1, err := p.Snapshot(1)
	if err != nil {
		t.Fatalf("Snapshot(1): %v", err)
	}
	if !snap1.Equal(final) {
		t.Fatalf("last snapshot differs from the final output")
	}
}

func TestTransformUnknown(t *testing.T) {
	if _, err := Transform("sepia"); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestTransformsRegistryRoundTrip(t *testing.T) {
	reg := Transforms()
	if len(reg) != len(Ops) {
		t.Fatalf("registry has %d entries, want %d", len(reg), len(Ops))
	}

	p := engine.NewPipeline("warmup")
	if err := p.AddOperation("exposure", reg["exposure"], engine.Params{"ev": 1.0}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := p.AddOperation("vignette", reg["vignette"], engine.Params{"strength": 0.5}); err != nil {
		t.Fatalf("add: %v", err)
	}

	data, err := p.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	q, err := engine.Restore(data, Transforms())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	in := engine.NewImage(makeSolidNRGBA(8, 8, color.NRGBA{60, 70, 80, 255}))
	a, err := p.Execute(in, false)
	if err != nil {
		t.Fatalf("execute original: %v", err)
	}
	b, err := q.Execute(in, false)
	if err != nil {
		t.Fatalf("execute restored: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("restored pipeline must produce identical output")
	}
}
