package engine

import (
	"image"
)

// Params maps parameter names to values. Only float64 and string values are
// allowed; integer values are normalized to float64 when an operation is
// added to a pipeline, so a params map that went through serialization
// compares identical to one built in code.
type Params map[string]any

// Float returns the float64 value for key, or def when the key is absent.
func (p Params) Float(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
		if n, ok := v.(int); ok {
			return float64(n)
		}
	}
	return def
}

// Int returns the value for key truncated to int, or def when absent.
func (p Params) Int(key string, def int) int {
	if _, ok := p[key]; ok {
		return int(p.Float(key, float64(def)))
	}
	return def
}

// Str returns the string value for key, or def when the key is absent.
func (p Params) Str(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// copyParams returns a defensive copy of p with integer values normalized to
// float64. Values of any other type fail with a ParameterError.
func copyParams(p Params) (Params, error) {
	out := make(Params, len(p))
	for k, v := range p {
		switch t := v.(type) {
		case float64:
			out[k] = t
		case int:
			out[k] = float64(t)
		case string:
			out[k] = t
		default:
			return nil, &ParameterError{Key: k, Value: v, Reason: "unsupported value type (want number or string)"}
		}
	}
	return out, nil
}

// TransformFunc is the uniform contract every transform satisfies: a pure
// function from a source image and a parameter map to a freshly allocated
// result. The func must not mutate or retain src, must produce bit-identical
// output for identical inputs, and must reject invalid parameters with a
// *ParameterError instead of silently clamping (unless clamping is that
// transform's documented behavior).
type TransformFunc func(src *image.NRGBA, params Params) (*image.NRGBA, error)

// Operation is one named, parameterized step in a Pipeline. Operations are
// immutable once added; the pipeline copies the params map on add.
type Operation struct {
	name   string
	fn     TransformFunc
	params Params
}

func (op Operation) Name() string { return op.name }

// Params returns a copy of the operation's parameter map.
func (op Operation) Params() Params {
	cp, _ := copyParams(op.params)
	return cp
}

// OperationInfo is the serializable view of an operation: its name and its
// parameters, no function reference and no pixel data.
type OperationInfo struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}
