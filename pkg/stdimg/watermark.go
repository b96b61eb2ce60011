package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Watermark draws text onto the image with its baseline at (x,y). fontPath
// may be empty to use the built-in 7x13 face; size is in points and only
// applies to TTF/OTF fonts. A font that cannot be read or parsed falls back
// to the built-in face rather than failing the whole pipeline.
func Watermark(src *image.NRGBA, text, fontPath string, size float64, x, y int, col color.Color) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	out := CloneNRGBA(src)
	face := loadFace(fontPath, size)
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
	return out, nil
}

func loadFace(fontPath string, size float64) font.Face {
	if fontPath == "" {
		return basicfont.Face7x13
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// common watermark colors; anything else must be given in hex
var colorNames = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"silver":  "#c0c0c0",
}

// ParseColor accepts a small set of named colors plus #rgb, #rgba, #rrggbb
// and #rrggbbaa hex forms.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	if hex, ok := colorNames[strings.ToLower(s)]; ok {
		s = hex
	}
	if s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q (want a name or hex)", s)
	}
	hex := s[1:]
	// expand short forms to two digits per channel
	switch len(hex) {
	case 3, 4:
		var sb strings.Builder
		for _, c := range hex {
			sb.WriteRune(c)
			sb.WriteRune(c)
		}
		hex = sb.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("unsupported hex color length: %d", len(hex))
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
