package stdimg

import (
	"fmt"
	"image"
	"math"

	"github.com/Fepozopo/darkroom/pkg/engine"
)

func findArg(spec OpSpec, name string) (ArgSpec, bool) {
	for _, a := range spec.Args {
		if a.Name == name {
			return a, true
		}
	}
	return ArgSpec{}, false
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

// validateParams checks params against the operation's spec: no unknown keys,
// all required keys present, numeric values inside their declared bounds.
func validateParams(spec OpSpec, params engine.Params) error {
	for key, value := range params {
		arg, ok := findArg(spec, key)
		if !ok {
			return &engine.ParameterError{Op: spec.Name, Key: key, Value: value, Reason: "unknown parameter"}
		}
		if arg.Type == "string" {
			if _, ok := value.(string); !ok {
				return &engine.ParameterError{Op: spec.Name, Key: key, Value: value, Reason: "want a string"}
			}
			continue
		}
		f, ok := numeric(value)
		if !ok {
			return &engine.ParameterError{Op: spec.Name, Key: key, Value: value, Reason: "want a number"}
		}
		if arg.Type == "int" && f != math.Trunc(f) {
			return &engine.ParameterError{Op: spec.Name, Key: key, Value: value, Reason: "want an integer"}
		}
		if arg.Min != nil && f < *arg.Min {
			return &engine.ParameterError{Op: spec.Name, Key: key, Value: value, Reason: fmt.Sprintf("must be >= %g", *arg.Min)}
		}
		if arg.Max != nil && f > *arg.Max {
			return &engine.ParameterError{Op: spec.Name, Key: key, Value: value, Reason: fmt.Sprintf("must be <= %g", *arg.Max)}
		}
	}
	for _, arg := range spec.Args {
		if arg.Required && !params.Has(arg.Name) {
			return &engine.ParameterError{Op: spec.Name, Key: arg.Name, Reason: "required parameter missing"}
		}
	}
	return nil
}

// Apply runs a single named operation on src and returns the result as a new
// image. Parameters are validated against the operation's spec before any
// pixel work happens. Defaults here must stay in sync with the Ops table in
// pkg/stdimg/commands.go.
func Apply(src *image.NRGBA, name string, params engine.Params) (*image.NRGBA, error) {
	spec, ok := LookupOp(name)
	if !ok {
		return nil, fmt.Errorf("operation %q: %w", name, engine.ErrNotFound)
	}
	if src == nil {
		return nil, fmt.Errorf("%s: nil source image", name)
	}
	if err := validateParams(spec, params); err != nil {
		return nil, err
	}

	switch name {
	case "whitebalance":
		return WhiteBalance(src, params.Float("temperature", 0), params.Float("tint", 0)), nil

	case "exposure":
		return Exposure(src, params.Float("ev", 0)), nil

	case "contrast":
		return Contrast(src, params.Float("factor", 1)), nil

	case "saturation":
		return Saturation(src, params.Float("factor", 1)), nil

	case "hsl":
		return HSLAdjust(src, params.Float("hue", 0), params.Float("saturation", 1), params.Float("lightness", 1)), nil

	case "curves":
		points := params.Str("points", "")
		lut, err := ParseCurve(points)
		if err != nil {
			return nil, &engine.ParameterError{Op: name, Key: "points", Value: points, Reason: err.Error()}
		}
		return Curves(src, lut), nil

	case "colorgrade":
		o := GradeOffsets{
			ShadowR:    params.Float("shadow_r", 0),
			ShadowG:    params.Float("shadow_g", 0),
			ShadowB:    params.Float("shadow_b", 0),
			MidtoneR:   params.Float("midtone_r", 0),
			MidtoneG:   params.Float("midtone_g", 0),
			MidtoneB:   params.Float("midtone_b", 0),
			HighlightR: params.Float("highlight_r", 0),
			HighlightG: params.Float("highlight_g", 0),
			HighlightB: params.Float("highlight_b", 0),
		}
		return ColorGrade(src, o), nil

	case "grayscale":
		return Grayscale(src), nil

	case "equalize":
		return Equalize(src), nil

	case "blur":
		sigma := params.Float("sigma", 0)
		if sigma <= 0 {
			return nil, &engine.ParameterError{Op: name, Key: "sigma", Value: sigma, Reason: "must be > 0"}
		}
		return GaussianBlur(src, sigma), nil

	case "sharpen":
		return Sharpen(src, params.Float("strength", 0), params.Float("sigma", 1)), nil

	case "radialblur":
		return RadialBlur(src, params.Float("strength", 0)), nil

	case "tiltshift":
		return TiltShift(src, params.Float("center", 0.5), params.Float("band", 0.3), params.Float("sigma", 3)), nil

	case "vignette":
		return Vignette(src, params.Float("strength", 0)), nil

	case "chromatic":
		return Chromatic(src, params.Int("shift", 0)), nil

	case "distort":
		return Distort(src, params.Float("k", 0)), nil

	case "grain":
		return Grain(src, params.Float("intensity", 0), int64(params.Int("seed", 0))), nil

	case "clarity":
		return Clarity(src, params.Float("strength", 0)), nil

	case "detail":
		return DetailEnhance(src, params.Float("strength", 0)), nil

	case "denoise":
		return Denoise(src, params.Int("radius", 1)), nil

	case "resize":
		return Resize(src, params.Int("width", 0), params.Int("height", 0)), nil

	case "crop":
		x, y := params.Int("x", 0), params.Int("y", 0)
		w, h := params.Int("width", 0), params.Int("height", 0)
		b := src.Bounds()
		if x+w > b.Dx() {
			return nil, &engine.ParameterError{Op: name, Key: "width", Value: w, Reason: fmt.Sprintf("x+width exceeds image width %d", b.Dx())}
		}
		if y+h > b.Dy() {
			return nil, &engine.ParameterError{Op: name, Key: "height", Value: h, Reason: fmt.Sprintf("y+height exceeds image height %d", b.Dy())}
		}
		return Crop(src, x, y, w, h)

	case "fliph":
		return FlipH(src), nil

	case "flipv":
		return FlipV(src), nil

	case "rotate":
		switch params.Int("degrees", 0) {
		case 90:
			return Rotate90(src), nil
		case 180:
			return Rotate180(src), nil
		case 270:
			return Rotate270(src), nil
		}
		return nil, &engine.ParameterError{Op: name, Key: "degrees", Value: params.Int("degrees", 0), Reason: "must be 90, 180 or 270"}

	case "watermark":
		colStr := params.Str("color", "#ffffff")
		col, err := ParseColor(colStr)
		if err != nil {
			return nil, &engine.ParameterError{Op: name, Key: "color", Value: colStr, Reason: err.Error()}
		}
		return Watermark(src, params.Str("text", ""), params.Str("font", ""), params.Float("size", 16), params.Int("x", 0), params.Int("y", 0), col)
	}

	// unreachable while Ops and this switch stay in sync
	return nil, fmt.Errorf("operation %q: %w", name, engine.ErrNotFound)
}

// Transform returns the operation named name as an engine.TransformFunc, so
// it can be added to a pipeline or registered for deserialization.
func Transform(name string) (engine.TransformFunc, error) {
	if _, ok := LookupOp(name); !ok {
		return nil, fmt.Errorf("operation %q: %w", name, engine.ErrNotFound)
	}
	return func(src *image.NRGBA, params engine.Params) (*image.NRGBA, error) {
		return Apply(src, name, params)
	}, nil
}

// Transforms returns the full catalog keyed by operation name, in the shape
// engine.Restore expects as a registry.
func Transforms() map[string]engine.TransformFunc {
	m := make(map[string]engine.TransformFunc, len(Ops))
	for _, op := range Ops {
		name := op.Name
		m[name] = func(src *image.NRGBA, params engine.Params) (*image.NRGBA, error) {
			return Apply(src, name, params)
		}
	}
	return m
}
