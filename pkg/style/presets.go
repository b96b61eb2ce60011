package style

import (
	"fmt"

	"github.com/Fepozopo/darkroom/pkg/engine"
	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

// PortraitRetouch returns a pipeline that denoises, smooths skin, brings
// back fine detail and adds a touch of color.
func PortraitRetouch() (*engine.Pipeline, error) {
	return buildPreset("Portrait Retouch", []Setting{
		{"denoise", engine.Params{"radius": 2}},
		{"clarity", engine.Params{"strength": -0.4}},
		{"detail", engine.Params{"strength": 0.5}},
		{"saturation", engine.Params{"factor": 1.1}},
	})
}

// LandscapeEnhancement returns a pipeline that punches up midtone contrast
// and color for scenic shots.
func LandscapeEnhancement() (*engine.Pipeline, error) {
	return buildPreset("Landscape Enhancement", []Setting{
		{"clarity", engine.Params{"strength": 0.7}},
		{"saturation", engine.Params{"factor": 1.2}},
		{"contrast", engine.Params{"factor": 1.15}},
		{"vignette", engine.Params{"strength": 0.2}},
	})
}

// CinematicLook returns a pipeline with the film-style grade: warm-teal
// balance, lifted contrast, muted color, vignette and grain.
func CinematicLook() (*engine.Pipeline, error) {
	return buildPreset("Cinematic Look", []Setting{
		{"whitebalance", engine.Params{"temperature": 0.1, "tint": -0.05}},
		{"contrast", engine.Params{"factor": 1.2}},
		{"saturation", engine.Params{"factor": 0.9}},
		{"vignette", engine.Params{"strength": 0.3}},
		{"grain", engine.Params{"intensity": 0.05}},
	})
}

func buildPreset(name string, settings []Setting) (*engine.Pipeline, error) {
	fns := stdimg.Transforms()
	p := engine.NewPipeline(name)
	for _, set := range settings {
		fn, ok := fns[set.Op]
		if !ok {
			return nil, fmt.Errorf("preset %q: operation %q: %w", name, set.Op, engine.ErrNotFound)
		}
		if err := p.AddOperation(set.Op, fn, set.Params); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return p, nil
}
