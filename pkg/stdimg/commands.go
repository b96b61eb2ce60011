// Package stdimg implements the pure-Go transform catalog: one registry
// entry per operation, validated against the specs below and dispatched in
// Apply in pkg/stdimg/engine.go. Keep the two in sync when adding or
// modifying operations so callers (CLI, docs, help text) can read a single
// source of truth.

package stdimg

// ArgSpec describes a single named parameter of an operation. Min/Max are
// inclusive bounds enforced during validation when set.
type ArgSpec struct {
	Name        string
	Type        string // "int", "float", "string"
	Required    bool
	Default     string // textual default (for help only; dispatch owns the value)
	Min, Max    *float64
	Description string
}

// OpSpec defines a single operation and its expected parameters.
type OpSpec struct {
	Name        string
	Group       string
	Args        []ArgSpec
	Usage       string
	Description string
}

func lim(v float64) *float64 { return &v }

// Ops is the authoritative list of operations implemented by this package.
// Keep this synchronized with Apply in pkg/stdimg/engine.go.
var Ops = []OpSpec{
	{
		Name:  "whitebalance",
		Group: "color",
		Args: []ArgSpec{
			{Name: "temperature", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "warm (+) or cool (-) shift"},
			{Name: "tint", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "green (+) or magenta (-) shift"},
		},
		Usage:       "whitebalance [temperature=0] [tint=0]",
		Description: "Shift color temperature and tint.",
	},
	{
		Name:  "exposure",
		Group: "color",
		Args: []ArgSpec{
			{Name: "ev", Type: "float", Required: true, Min: lim(-10), Max: lim(10), Description: "exposure in stops; +1 doubles brightness"},
		},
		Usage:       "exposure ev=<stops>",
		Description: "Multiply brightness by 2^ev.",
	},
	{
		Name:  "contrast",
		Group: "color",
		Args: []ArgSpec{
			{Name: "factor", Type: "float", Required: true, Min: lim(0), Max: lim(10), Description: "1 = unchanged, 0 = flat gray"},
		},
		Usage:       "contrast factor=<f>",
		Description: "Scale distance from mid-gray.",
	},
	{
		Name:  "saturation",
		Group: "color",
		Args: []ArgSpec{
			{Name: "factor", Type: "float", Required: true, Min: lim(0), Max: lim(10), Description: "1 = unchanged, 0 = grayscale"},
		},
		Usage:       "saturation factor=<f>",
		Description: "Mix between luminance and original color.",
	},
	{
		Name:  "hsl",
		Group: "color",
		Args: []ArgSpec{
			{Name: "hue", Type: "float", Default: "0", Min: lim(-360), Max: lim(360), Description: "hue rotation in degrees"},
			{Name: "saturation", Type: "float", Default: "1", Min: lim(0), Max: lim(10), Description: "saturation multiplier"},
			{Name: "lightness", Type: "float", Default: "1", Min: lim(0), Max: lim(10), Description: "lightness multiplier"},
		},
		Usage:       "hsl [hue=0] [saturation=1] [lightness=1]",
		Description: "Adjust hue, saturation and lightness.",
	},
	{
		Name:  "curves",
		Group: "color",
		Args: []ArgSpec{
			{Name: "points", Type: "string", Required: true, Description: "control points \"x:y,x:y,...\" with increasing x in [0,255]"},
		},
		Usage:       "curves points=<x:y,x:y,...>",
		Description: "Apply a piecewise-linear tone curve to all channels.",
	},
	{
		Name:  "colorgrade",
		Group: "tone",
		Args: []ArgSpec{
			{Name: "shadow_r", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "red offset in shadows"},
			{Name: "shadow_g", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "green offset in shadows"},
			{Name: "shadow_b", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "blue offset in shadows"},
			{Name: "midtone_r", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "red offset in midtones"},
			{Name: "midtone_g", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "green offset in midtones"},
			{Name: "midtone_b", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "blue offset in midtones"},
			{Name: "highlight_r", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "red offset in highlights"},
			{Name: "highlight_g", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "green offset in highlights"},
			{Name: "highlight_b", Type: "float", Default: "0", Min: lim(-1), Max: lim(1), Description: "blue offset in highlights"},
		},
		Usage:       "colorgrade [shadow_r=0] [midtone_r=0] [highlight_r=0] ...",
		Description: "Shift shadows, midtones and highlights independently.",
	},
	{
		Name:        "grayscale",
		Group:       "tone",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Convert to Rec.601 luminance.",
	},
	{
		Name:        "equalize",
		Group:       "tone",
		Args:        []ArgSpec{},
		Usage:       "equalize",
		Description: "Equalize histogram per channel.",
	},
	{
		Name:  "blur",
		Group: "focus",
		Args: []ArgSpec{
			{Name: "sigma", Type: "float", Required: true, Max: lim(100), Description: "gaussian sigma, must be > 0"},
		},
		Usage:       "blur sigma=<f>",
		Description: "Separable Gaussian blur.",
	},
	{
		Name:  "sharpen",
		Group: "focus",
		Args: []ArgSpec{
			{Name: "strength", Type: "float", Required: true, Min: lim(0), Max: lim(10), Description: "unsharp mask amount"},
			{Name: "sigma", Type: "float", Default: "1", Min: lim(0.01), Max: lim(50), Description: "blur sigma for the mask"},
		},
		Usage:       "sharpen strength=<f> [sigma=1]",
		Description: "Unsharp mask: src + strength*(src-blur).",
	},
	{
		Name:  "radialblur",
		Group: "focus",
		Args: []ArgSpec{
			{Name: "strength", Type: "float", Required: true, Min: lim(0), Max: lim(1), Description: "zoom blur amount"},
		},
		Usage:       "radialblur strength=<f>",
		Description: "Zoom blur toward the image center.",
	},
	{
		Name:  "tiltshift",
		Group: "focus",
		Args: []ArgSpec{
			{Name: "center", Type: "float", Default: "0.5", Min: lim(0), Max: lim(1), Description: "sharp band center as height fraction"},
			{Name: "band", Type: "float", Default: "0.3", Min: lim(0), Max: lim(1), Description: "sharp band height fraction"},
			{Name: "sigma", Type: "float", Default: "3", Min: lim(0.01), Max: lim(50), Description: "blur sigma outside the band"},
		},
		Usage:       "tiltshift [center=0.5] [band=0.3] [sigma=3]",
		Description: "Keep a horizontal band sharp, blur the rest.",
	},
	{
		Name:  "vignette",
		Group: "lens",
		Args: []ArgSpec{
			{Name: "strength", Type: "float", Required: true, Min: lim(0), Max: lim(1), Description: "corner darkening amount"},
		},
		Usage:       "vignette strength=<f>",
		Description: "Darken toward the corners.",
	},
	{
		Name:  "chromatic",
		Group: "lens",
		Args: []ArgSpec{
			{Name: "shift", Type: "int", Required: true, Min: lim(-50), Max: lim(50), Description: "red/blue channel shift in pixels"},
		},
		Usage:       "chromatic shift=<px>",
		Description: "Simulate lateral chromatic aberration.",
	},
	{
		Name:  "distort",
		Group: "lens",
		Args: []ArgSpec{
			{Name: "k", Type: "float", Required: true, Min: lim(-1), Max: lim(1), Description: "barrel (+) or pincushion (-) amount"},
		},
		Usage:       "distort k=<f>",
		Description: "Barrel or pincushion lens distortion.",
	},
	{
		Name:  "grain",
		Group: "texture",
		Args: []ArgSpec{
			{Name: "intensity", Type: "float", Required: true, Min: lim(0), Max: lim(1), Description: "noise stddev = intensity*30 levels"},
			{Name: "seed", Type: "int", Default: "0", Description: "random seed (0 = fixed default)"},
		},
		Usage:       "grain intensity=<f> [seed=0]",
		Description: "Add monochromatic film grain.",
	},
	{
		Name:  "clarity",
		Group: "texture",
		Args: []ArgSpec{
			{Name: "strength", Type: "float", Required: true, Min: lim(-5), Max: lim(5), Description: "midtone contrast; negative softens"},
		},
		Usage:       "clarity strength=<f>",
		Description: "Midtone-weighted local contrast.",
	},
	{
		Name:  "detail",
		Group: "texture",
		Args: []ArgSpec{
			{Name: "strength", Type: "float", Required: true, Min: lim(0), Max: lim(10), Description: "fine detail boost"},
		},
		Usage:       "detail strength=<f>",
		Description: "Fine-radius high-pass detail boost.",
	},
	{
		Name:  "denoise",
		Group: "texture",
		Args: []ArgSpec{
			{Name: "radius", Type: "int", Required: true, Min: lim(1), Max: lim(16), Description: "median window radius"},
		},
		Usage:       "denoise radius=<n>",
		Description: "Median filter noise reduction.",
	},
	{
		Name:  "resize",
		Group: "geometry",
		Args: []ArgSpec{
			{Name: "width", Type: "int", Required: true, Min: lim(1), Description: "output width"},
			{Name: "height", Type: "int", Required: true, Min: lim(1), Description: "output height"},
		},
		Usage:       "resize width=<n> height=<n>",
		Description: "Resize (Lanczos for downscale, bilinear for upscale).",
	},
	{
		Name:  "crop",
		Group: "geometry",
		Args: []ArgSpec{
			{Name: "x", Type: "int", Required: true, Min: lim(0), Description: "left edge"},
			{Name: "y", Type: "int", Required: true, Min: lim(0), Description: "top edge"},
			{Name: "width", Type: "int", Required: true, Min: lim(1), Description: "crop width"},
			{Name: "height", Type: "int", Required: true, Min: lim(1), Description: "crop height"},
		},
		Usage:       "crop x=<n> y=<n> width=<n> height=<n>",
		Description: "Crop a rectangle that must lie within the image.",
	},
	{
		Name:        "fliph",
		Group:       "geometry",
		Args:        []ArgSpec{},
		Usage:       "fliph",
		Description: "Mirror horizontally.",
	},
	{
		Name:        "flipv",
		Group:       "geometry",
		Args:        []ArgSpec{},
		Usage:       "flipv",
		Description: "Mirror vertically.",
	},
	{
		Name:  "rotate",
		Group: "geometry",
		Args: []ArgSpec{
			{Name: "degrees", Type: "int", Required: true, Description: "90, 180 or 270 (clockwise)"},
		},
		Usage:       "rotate degrees=<90|180|270>",
		Description: "Rotate by a right angle.",
	},
	{
		Name:  "watermark",
		Group: "overlay",
		Args: []ArgSpec{
			{Name: "text", Type: "string", Required: true, Description: "text to draw"},
			{Name: "x", Type: "int", Required: true, Min: lim(0), Description: "baseline x"},
			{Name: "y", Type: "int", Required: true, Min: lim(0), Description: "baseline y"},
			{Name: "color", Type: "string", Default: "#ffffff", Description: "text color (name or hex)"},
			{Name: "size", Type: "float", Default: "16", Min: lim(4), Max: lim(512), Description: "font size in points (TTF only)"},
			{Name: "font", Type: "string", Default: "", Description: "path to a TTF/OTF font; empty = built-in"},
		},
		Usage:       "watermark text=<s> x=<n> y=<n> [color=#ffffff] [size=16] [font=]",
		Description: "Draw text onto the image.",
	},
}

// LookupOp returns the spec for name, or false when the operation is unknown.
func LookupOp(name string) (OpSpec, bool) {
	for _, op := range Ops {
		if op.Name == name {
			return op, true
		}
	}
	return OpSpec{}, false
}
