package stdimg

import (
	"image"
)

// GradeOffsets carries per-zone RGB offsets for ColorGrade, each in [-1,1].
type GradeOffsets struct {
	ShadowR, ShadowG, ShadowB          float64
	MidtoneR, MidtoneG, MidtoneB       float64
	HighlightR, HighlightG, HighlightB float64
}

// ColorGrade shifts shadows, midtones and highlights independently. Pixels
// are assigned to zones by luminance with thresholds at 85 and 170 and a
// 30-level linear transition around each, so neighboring zones blend. An
// offset of 1.0 shifts a fully weighted pixel by 50 levels.
func ColorGrade(src *image.NRGBA, o GradeOffsets) *image.NRGBA {
	if src == nil {
		return nil
	}
	const scale = 50.0
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0])
			g := float64(src.Pix[i+1])
			bl := float64(src.Pix[i+2])
			lum := luma601(r, g, bl)

			shadowW := clamp01((100.0 - lum) / 30.0)
			highW := clamp01((lum - 155.0) / 30.0)
			midW := clamp01(1.0 - shadowW - highW)

			dr := (o.ShadowR*shadowW + o.MidtoneR*midW + o.HighlightR*highW) * scale
			dg := (o.ShadowG*shadowW + o.MidtoneG*midW + o.HighlightG*highW) * scale
			db := (o.ShadowB*shadowW + o.MidtoneB*midW + o.HighlightB*highW) * scale

			out.Pix[i+0] = uint8(clampFloatToUint8(r + dr))
			out.Pix[i+1] = uint8(clampFloatToUint8(g + dg))
			out.Pix[i+2] = uint8(clampFloatToUint8(bl + db))
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}
