// Package style bundles the transform catalog into named looks. A style is
// an ordered recipe of operations with fixed parameters; applying one appends
// its operations to a pipeline, scaled by an intensity knob.
package style

import (
	"fmt"
	"sort"

	"github.com/Fepozopo/darkroom/pkg/engine"
	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

// Setting is one step of a style recipe: a catalog operation plus its
// parameters at full intensity.
type Setting struct {
	Op     string
	Params engine.Params
}

// Style is an ordered recipe over catalog operations.
type Style struct {
	Description string
	Settings    []Setting
}

// Registry holds named styles and the transform functions used to expand
// them into pipeline operations. Construct one with NewRegistry; there is no
// package-level default.
type Registry struct {
	styles map[string]Style
	fns    map[string]engine.TransformFunc
}

// NewRegistry returns a registry seeded with the built-in styles.
func NewRegistry() *Registry {
	r := &Registry{
		styles: make(map[string]Style),
		fns:    stdimg.Transforms(),
	}
	r.styles["cinematic"] = Style{
		Description: "teal-leaning warmth, lifted contrast, muted color, gentle vignette",
		Settings: []Setting{
			{"whitebalance", engine.Params{"temperature": 0.1, "tint": -0.05}},
			{"contrast", engine.Params{"factor": 1.2}},
			{"saturation", engine.Params{"factor": 0.9}},
			{"vignette", engine.Params{"strength": 0.3}},
			{"grain", engine.Params{"intensity": 0.05}},
		},
	}
	r.styles["vintage"] = Style{
		Description: "warm cast, faded contrast, heavy vignette and grain",
		Settings: []Setting{
			{"whitebalance", engine.Params{"temperature": 0.2, "tint": 0.1}},
			{"contrast", engine.Params{"factor": 0.9}},
			{"saturation", engine.Params{"factor": 0.8}},
			{"vignette", engine.Params{"strength": 0.5}},
			{"grain", engine.Params{"intensity": 0.15}},
		},
	}
	r.styles["dramatic"] = Style{
		Description: "strong contrast and clarity with saturated color",
		Settings: []Setting{
			{"contrast", engine.Params{"factor": 1.5}},
			{"saturation", engine.Params{"factor": 1.2}},
			{"clarity", engine.Params{"strength": 1.0}},
			{"vignette", engine.Params{"strength": 0.2}},
		},
	}
	r.styles["soft"] = Style{
		Description: "slight warmth with reduced contrast and softened midtones",
		Settings: []Setting{
			{"whitebalance", engine.Params{"temperature": 0.05, "tint": 0.05}},
			{"contrast", engine.Params{"factor": 0.85}},
			{"saturation", engine.Params{"factor": 0.95}},
			{"clarity", engine.Params{"strength": -0.3}},
		},
	}
	r.styles["high_key"] = Style{
		Description: "bright, airy exposure with lifted tones and low contrast",
		Settings: []Setting{
			{"exposure", engine.Params{"ev": 0.5}},
			{"contrast", engine.Params{"factor": 0.8}},
			{"saturation", engine.Params{"factor": 0.9}},
			{"colorgrade", engine.Params{
				"shadow_r": 0.4, "shadow_g": 0.4, "shadow_b": 0.4,
				"midtone_r": 0.4, "midtone_g": 0.4, "midtone_b": 0.4,
				"highlight_r": 0.4, "highlight_g": 0.4, "highlight_b": 0.4,
			}},
		},
	}
	r.styles["low_key"] = Style{
		Description: "dark, contrasty exposure with crushed shadows",
		Settings: []Setting{
			{"exposure", engine.Params{"ev": -0.3}},
			{"contrast", engine.Params{"factor": 1.3}},
			{"saturation", engine.Params{"factor": 1.1}},
			{"colorgrade", engine.Params{
				"shadow_r": -0.3, "shadow_g": -0.3, "shadow_b": -0.3,
			}},
		},
	}
	return r
}

// Names returns the registered style names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for n := range r.styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the style registered under name.
func (r *Registry) Get(name string) (Style, error) {
	s, ok := r.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("style %q: %w", name, engine.ErrNotFound)
	}
	return s, nil
}

// Register adds or replaces a custom style. Every setting must name a
// catalog operation.
func (r *Registry) Register(name string, s Style) error {
	if name == "" {
		return fmt.Errorf("style name must not be empty")
	}
	for _, set := range s.Settings {
		if _, ok := r.fns[set.Op]; !ok {
			return fmt.Errorf("style %q: operation %q: %w", name, set.Op, engine.ErrNotFound)
		}
	}
	r.styles[name] = s
	return nil
}

// Apply appends the named style's operations to p, with every parameter
// scaled by intensity in (0,1]. Factors that are neutral at 1 (contrast,
// saturation) scale toward 1; everything else scales toward 0.
func (r *Registry) Apply(p *engine.Pipeline, name string, intensity float64) error {
	s, err := r.Get(name)
	if err != nil {
		return err
	}
	if intensity <= 0 || intensity > 1 {
		return &engine.ParameterError{Op: "style " + name, Key: "intensity", Value: intensity, Reason: "must be in (0,1]"}
	}
	for _, set := range s.Settings {
		fn, ok := r.fns[set.Op]
		if !ok {
			return fmt.Errorf("style %q: operation %q: %w", name, set.Op, engine.ErrNotFound)
		}
		params := make(engine.Params, len(set.Params))
		for k, v := range set.Params {
			if f, ok := v.(float64); ok {
				params[k] = scaleParam(set.Op, k, f, intensity)
			} else {
				params[k] = v
			}
		}
		if err := p.AddOperation(set.Op, fn, params); err != nil {
			return fmt.Errorf("style %q: %w", name, err)
		}
	}
	return nil
}

// scaleParam scales one recipe value by intensity. Multiplicative factors
// keep 1 as their neutral point.
func scaleParam(op, key string, v, intensity float64) float64 {
	if (op == "contrast" || op == "saturation") && key == "factor" {
		return 1.0 + (v-1.0)*intensity
	}
	return v * intensity
}
