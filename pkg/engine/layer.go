package engine

import (
	"fmt"
	"strings"
)

// BlendMode selects the per-pixel rule used to combine a layer with the
// pixels beneath it during flatten.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendSoftLight
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	case BlendSoftLight:
		return "soft-light"
	}
	return "unknown"
}

// ParseBlendMode maps a mode name to its BlendMode. Matching is
// case-insensitive; "soft-light", "soft_light" and "softlight" are all
// accepted. An empty string means normal.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return BlendNormal, nil
	case "multiply":
		return BlendMultiply, nil
	case "screen":
		return BlendScreen, nil
	case "overlay":
		return BlendOverlay, nil
	case "soft-light", "soft_light", "softlight":
		return BlendSoftLight, nil
	}
	return BlendNormal, fmt.Errorf("blend mode %q: %w", s, ErrNotFound)
}

// Layer is one entry in a LayerStack: an owned image plus compositing
// metadata. Layers are created by a stack's AddLayer and mutated only through
// the stack's setters, so the stack can invalidate its flatten cache.
type Layer struct {
	id      string
	name    string
	img     Image
	opacity float64
	visible bool
	mode    BlendMode
}

func (l *Layer) ID() string { return l.id }
func (l *Layer) Name() string { return l.name }

// Image returns the layer's image handle. Handles are immutable, so the
// caller cannot affect the layer through it.
func (l *Layer) Image() Image { return l.img }

// Opacity is in [0,1]; the stack clamps on set.
func (l *Layer) Opacity() float64 { return l.opacity }

func (l *Layer) Visible() bool { return l.visible }

func (l *Layer) Mode() BlendMode { return l.mode }
