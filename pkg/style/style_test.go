package style

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/Fepozopo/darkroom/pkg/engine"
)

func opNames(p *engine.Pipeline) []string {
	infos := p.Operations()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

func paramOf(t *testing.T, info engine.OperationInfo, key string) float64 {
	t.Helper()
	v, ok := info.Params[key]
	if !ok {
		t.Fatalf("operation %q: missing param %q", info.Name, key)
	}
	f, ok := v.(float64)
	if !ok {
		t.Fatalf("operation %q: param %q is %T, want float64", info.Name, key, v)
	}
	return f
}

func wantParam(t *testing.T, info engine.OperationInfo, key string, want float64) {
	t.Helper()
	got := paramOf(t, info, key)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("operation %q: param %q = %v, want %v", info.Name, key, got, want)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	got := r.Names()
	want := []string{"cinematic", "dramatic", "high_key", "low_key", "soft", "vintage"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetUnknownStyle(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("noir"); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("Get(noir) error = %v, want ErrNotFound", err)
	}
}

func TestApplyFullIntensity(t *testing.T) {
	r := NewRegistry()
	p := engine.NewPipeline("grade")
	if err := r.Apply(p, "cinematic", 1.0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"whitebalance", "contrast", "saturation", "vignette", "grain"}
	got := opNames(p)
	if len(got) != len(want) {
		t.Fatalf("operations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("operation %d = %q, want %q", i, got[i], want[i])
		}
	}

	infos := p.Operations()
	wantParam(t, infos[0], "temperature", 0.1)
	wantParam(t, infos[0], "tint", -0.05)
	wantParam(t, infos[1], "factor", 1.2)
	wantParam(t, infos[2], "factor", 0.9)
	wantParam(t, infos[3], "strength", 0.3)
	wantParam(t, infos[4], "intensity", 0.05)
}

func TestApplyScalesByIntensity(t *testing.T) {
	r := NewRegistry()
	p := engine.NewPipeline("grade")
	if err := r.Apply(p, "cinematic", 0.5); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	infos := p.Operations()
	// Additive values halve; factors move halfway back toward neutral 1.
	wantParam(t, infos[0], "temperature", 0.05)
	wantParam(t, infos[0], "tint", -0.025)
	wantParam(t, infos[1], "factor", 1.1)
	wantParam(t, infos[2], "factor", 0.95)
	wantParam(t, infos[3], "strength", 0.15)
	wantParam(t, infos[4], "intensity", 0.025)
}

func TestApplyIntensityOutOfRange(t *testing.T) {
	r := NewRegistry()
	for _, intensity := range []float64{0, -0.5, 1.5} {
		p := engine.NewPipeline("grade")
		err := r.Apply(p, "soft", intensity)
		var perr *engine.ParameterError
		if !errors.As(err, &perr) {
			t.Fatalf("Apply intensity=%v error = %v, want ParameterError", intensity, err)
		}
		if perr.Key != "intensity" {
			t.Fatalf("Apply intensity=%v: error key = %q, want intensity", intensity, perr.Key)
		}
		if len(p.Operations()) != 0 {
			t.Fatalf("Apply intensity=%v: pipeline gained operations on error", intensity)
		}
	}
}

func TestApplyUnknownStyle(t *testing.T) {
	r := NewRegistry()
	p := engine.NewPipeline("grade")
	if err := r.Apply(p, "noir", 1.0); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("Apply(noir) error = %v, want ErrNotFound", err)
	}
	if len(p.Operations()) != 0 {
		t.Fatal("failed Apply left operations on the pipeline")
	}
}

func TestApplyAppendsAfterExisting(t *testing.T) {
	r := NewRegistry()
	p := engine.NewPipeline("grade")
	fn := func(src *image.NRGBA, params engine.Params) (*image.NRGBA, error) { return src, nil }
	if err := p.AddOperation("prep", fn, nil); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}
	if err := r.Apply(p, "soft", 1.0); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := opNames(p)
	want := []string{"prep", "whitebalance", "contrast", "saturation", "clarity"}
	if len(got) != len(want) {
		t.Fatalf("operations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("operation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegisterCustomStyle(t *testing.T) {
	r := NewRegistry()
	custom := Style{
		Description: "plain monochrome with a touch of contrast",
		Settings: []Setting{
			{"grayscale", nil},
			{"contrast", engine.Params{"factor": 1.1}},
		},
	}
	if err := r.Register("mono", custom); err != nil {
		t.Fatalf("Register: %v", err)
	}

	p := engine.NewPipeline("grade")
	if err := r.Apply(p, "mono", 1.0); err != nil {
		t.Fatalf("Apply(mono): %v", err)
	}
	got := opNames(p)
	if len(got) != 2 || got[0] != "grayscale" || got[1] != "contrast" {
		t.Fatalf("operations = %v, want [grayscale contrast]", got)
	}
}

func TestRegisterRejectsUnknownOperation(t *testing.T) {
	r := NewRegistry()
	bad := Style{Settings: []Setting{{"sepia", nil}}}
	if err := r.Register("faded", bad); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("Register error = %v, want ErrNotFound", err)
	}
	if _, err := r.Get("faded"); err == nil {
		t.Fatal("rejected style was registered anyway")
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", Style{}); err == nil {
		t.Fatal("Register with empty name succeeded")
	}
}

func TestStylePipelineExecutes(t *testing.T) {
	r := NewRegistry()
	p := engine.NewPipeline("grade")
	if err := r.Apply(p, "dramatic", 0.8); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	src := image.NewNRGBA(image.Rect(0, 0, 12, 10))
	for i := range src.Pix {
		src.Pix[i] = uint8(i*31 + 7)
	}
	out, err := p.Execute(engine.NewImage(src), false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Width() != 12 || out.Height() != 10 {
		t.Fatalf("output %dx%d, want 12x10", out.Width(), out.Height())
	}
}

func TestPresetRecipes(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*engine.Pipeline, error)
		wantOps []string
	}{
		{
			name:    "Portrait Retouch",
			build:   PortraitRetouch,
			wantOps: []string{"denoise", "clarity", "detail", "saturation"},
		},
		{
			name:    "Landscape Enhancement",
			build:   LandscapeEnhancement,
			wantOps: []string{"clarity", "saturation", "contrast", "vignette"},
		},
		{
			name:    "Cinematic Look",
			build:   CinematicLook,
			wantOps: []string{"whitebalance", "contrast", "saturation", "vignette", "grain"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if p.Name() != tt.name {
				t.Fatalf("pipeline name = %q, want %q", p.Name(), tt.name)
			}
			got := opNames(p)
			if len(got) != len(tt.wantOps) {
				t.Fatalf("operations = %v, want %v", got, tt.wantOps)
			}
			for i := range tt.wantOps {
				if got[i] != tt.wantOps[i] {
					t.Fatalf("operation %d = %q, want %q", i, got[i], tt.wantOps[i])
				}
			}
		})
	}
}

func TestPresetExecutes(t *testing.T) {
	p, err := PortraitRetouch()
	if err != nil {
		t.Fatalf("PortraitRetouch: %v", err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	for i := range src.Pix {
		src.Pix[i] = uint8(i*53 + 11)
	}
	out, err := p.Execute(engine.NewImage(src), true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Width() != 9 || out.Height() != 9 {
		t.Fatalf("output %dx%d, want 9x9", out.Width(), out.Height())
	}
	if p.SnapshotCount() != len(p.Operations()) {
		t.Fatalf("snapshots = %d, want %d", p.SnapshotCount(), len(p.Operations()))
	}
}
