package engine

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// LayerStack owns a base image and an ordered set of layers above it, bottom
// to top, and flattens them into a single image. The flattened result is
// cached and invalidated by every mutation. A LayerStack instance is not safe
// for concurrent use; independent instances share nothing.
type LayerStack struct {
	base   Image
	layers []*Layer
	nextID int
	flat   Image
	flatOK bool
}

// NewLayerStack returns a stack over the given base image.
func NewLayerStack(base Image) *LayerStack {
	return &LayerStack{base: base, nextID: 1}
}

// Base returns the stack's base image.
func (s *LayerStack) Base() Image { return s.base }

// Len returns the number of layers (visible or not).
func (s *LayerStack) Len() int { return len(s.layers) }

// Layers returns the layers bottom to top. The slice is a copy; the layers
// themselves are the stack's (mutate them through the stack's setters).
func (s *LayerStack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Layer returns the layer with the given id, or ErrNotFound.
func (s *LayerStack) Layer(id string) (*Layer, error) {
	return s.find(id)
}

// AddLayer appends a fully opaque, visible, normal-mode layer on top of the
// stack and returns it. Image handles are immutable, so the layer keeping the
// handle is equivalent to a defensive copy.
func (s *LayerStack) AddLayer(img Image, name string) *Layer {
	return s.AddLayerWith(img, name, 1.0, BlendNormal)
}

// AddLayerWith appends a visible layer with the given opacity (clamped to
// [0,1]) and blend mode.
func (s *LayerStack) AddLayerWith(img Image, name string, opacity float64, mode BlendMode) *Layer {
	l := &Layer{
		id:      fmt.Sprintf("layer_%d", s.nextID),
		name:    name,
		img:     img,
		opacity: clamp01(opacity),
		visible: true,
		mode:    mode,
	}
	s.nextID++
	s.layers = append(s.layers, l)
	s.invalidate()
	return l
}

// SetOpacity sets the layer's opacity, clamped to [0,1].
func (s *LayerStack) SetOpacity(id string, v float64) error {
	l, err := s.find(id)
	if err != nil {
		return err
	}
	l.opacity = clamp01(v)
	s.invalidate()
	return nil
}

// SetVisibility toggles a layer without removing it: a hidden layer keeps its
// stack position and is only skipped during flatten.
func (s *LayerStack) SetVisibility(id string, visible bool) error {
	l, err := s.find(id)
	if err != nil {
		return err
	}
	l.visible = visible
	s.invalidate()
	return nil
}

// SetBlendMode sets the layer's blend mode.
func (s *LayerStack) SetBlendMode(id string, mode BlendMode) error {
	l, err := s.find(id)
	if err != nil {
		return err
	}
	l.mode = mode
	s.invalidate()
	return nil
}

// MoveLayer moves the layer to the given position (0 = bottom).
func (s *LayerStack) MoveLayer(id string, index int) error {
	if index < 0 || index >= len(s.layers) {
		return fmt.Errorf("move to %d with %d layers: %w", index, len(s.layers), ErrIndexOutOfRange)
	}
	from := -1
	for i, l := range s.layers {
		if l.id == id {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("layer %q: %w", id, ErrNotFound)
	}
	l := s.layers[from]
	s.layers = append(s.layers[:from], s.layers[from+1:]...)
	s.layers = append(s.layers, nil)
	copy(s.layers[index+1:], s.layers[index:])
	s.layers[index] = l
	s.invalidate()
	return nil
}

// RemoveLayer removes the layer with the given id.
func (s *LayerStack) RemoveLayer(id string) error {
	for i, l := range s.layers {
		if l.id == id {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			s.invalidate()
			return nil
		}
	}
	return fmt.Errorf("layer %q: %w", id, ErrNotFound)
}

func (s *LayerStack) find(id string) (*Layer, error) {
	for _, l := range s.layers {
		if l.id == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("layer %q: %w", id, ErrNotFound)
}

func (s *LayerStack) invalidate() {
	s.flat = Image{}
	s.flatOK = false
}

// Flatten composes the base image and every visible layer bottom to top:
// for each layer, result = blend(result, layer.image, layer.mode,
// layer.opacity). A visible layer whose dimensions differ from the base fails
// with *DimensionMismatchError. The result is cached until the next mutation,
// so calling Flatten twice without mutating returns identical pixels.
func (s *LayerStack) Flatten() (Image, error) {
	if s.flatOK {
		return s.flat, nil
	}
	if s.base.Empty() {
		return Image{}, errors.New("layer stack has no base image")
	}
	acc := s.base.NRGBA()
	bw, bh := s.base.Width(), s.base.Height()
	for _, l := range s.layers {
		if !l.visible {
			continue
		}
		if l.img.Width() != bw || l.img.Height() != bh {
			return Image{}, &DimensionMismatchError{
				LayerID: l.id,
				BaseW:   bw, BaseH: bh,
				LayerW: l.img.Width(), LayerH: l.img.Height(),
			}
		}
		blendInto(acc, l.img.nrgba, l.mode, l.opacity)
	}
	s.flat = own(acc)
	s.flatOK = true
	return s.flat, nil
}

// Per-channel blend rules. top is the layer value, bottom the accumulated
// value beneath it, both in [0,1].

func blendMultiply(top, bottom float64) float64 { return top * bottom }

func blendScreen(top, bottom float64) float64 { return 1 - (1-top)*(1-bottom) }

func blendOverlay(top, bottom float64) float64 {
	if bottom < 0.5 {
		return 2 * top * bottom
	}
	return 1 - 2*(1-top)*(1-bottom)
}

// blendSoftLight branches on the bottom value like overlay, with the W3C
// curve on each side (square root on the high branch). A top of 0.5 leaves
// the bottom unchanged.
func blendSoftLight(top, bottom float64) float64 {
	if bottom < 0.5 {
		return bottom - (1-2*top)*bottom*(1-bottom)
	}
	return bottom + (2*top-1)*(math.Sqrt(bottom)-bottom)
}

// blendInto composites top into dst in place. Channels are normalized to
// [0,1], blended per mode, mixed by opacity against the bottom value, and
// written back with round-half-up. Alpha always mixes normally. dst and top
// must have equal dimensions with origin (0,0).
func blendInto(dst, top *image.NRGBA, mode BlendMode, opacity float64) {
	var f func(top, bottom float64) float64
	switch mode {
	case BlendMultiply:
		f = blendMultiply
	case BlendScreen:
		f = blendScreen
	case BlendOverlay:
		f = blendOverlay
	case BlendSoftLight:
		f = blendSoftLight
	}
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := dst.PixOffset(x, y)
			ti := top.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				bottom := float64(dst.Pix[i+c]) / 255.0
				tv := float64(top.Pix[ti+c]) / 255.0
				var out float64
				if f == nil {
					out = tv*opacity + bottom*(1-opacity)
				} else {
					out = f(tv, bottom)*opacity + bottom*(1-opacity)
				}
				dst.Pix[i+c] = uint8(clampFloatToUint8(out*255.0 + 0.5))
			}
			ba := float64(dst.Pix[i+3]) / 255.0
			ta := float64(top.Pix[ti+3]) / 255.0
			dst.Pix[i+3] = uint8(clampFloatToUint8((ta*opacity+ba*(1-opacity))*255.0 + 0.5))
		}
	}
}
