package cli

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EXIF is the subset of camera metadata the CLI reports. IFD0 and the Exif
// sub-IFD are read; maker notes and GPS are not.
type EXIF struct {
	Make             string  `json:"make,omitempty"`
	Model            string  `json:"model,omitempty"`
	Software         string  `json:"software,omitempty"`
	Orientation      int     `json:"orientation,omitempty"`
	DateTime         string  `json:"datetime,omitempty"`
	DateTimeOriginal string  `json:"datetime_original,omitempty"`
	ExposureTime     string  `json:"exposure_time,omitempty"` // raw "num/den"
	Exposure         float64 `json:"exposure,omitempty"`      // seconds
	FNumber          float64 `json:"f_number,omitempty"`
	ISOSpeed         int     `json:"iso,omitempty"`
	FocalLength      float64 `json:"focal_length_mm,omitempty"`
	LensModel        string  `json:"lens_model,omitempty"`
}

const (
	ifdType0    = 0
	ifdTypeExif = 1
)

// ExtractEXIF reads the JPEG at path and returns its parsed EXIF fields.
func ExtractEXIF(path string) (EXIF, error) {
	var out EXIF
	b, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	return extractEXIFBytes(b)
}

func extractEXIFBytes(b []byte) (EXIF, error) {
	var out EXIF
	if len(b) < 3 || !bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}) {
		return out, fmt.Errorf("not a JPEG, cannot read EXIF")
	}
	tiffStart, err := findEXIFBlock(b)
	if err != nil {
		return out, err
	}
	tags, err := readTIFFTags(b, tiffStart)
	if err != nil {
		return out, err
	}
	return tagsToEXIF(tags), nil
}

// findEXIFBlock scans JPEG segments for an APP1 Exif block and returns the
// offset where the TIFF header begins.
func findEXIFBlock(data []byte) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("data too short")
	}
	i := 2 // past SOI
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan; no EXIF past this
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 {
			if i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
				return i + 10, nil
			}
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("no exif segment")
}

// tiffTypeSize returns the byte size of one element of a TIFF field type, or
// 0 for types the reader skips.
func tiffTypeSize(typ uint16) int {
	switch typ {
	case 1, 2: // BYTE, ASCII
		return 1
	case 3: // SHORT
		return 2
	case 4: // LONG
		return 4
	case 5: // RATIONAL
		return 8
	default:
		return 0
	}
}

// decodeTagValue renders a TIFF field as a string: integers joined with
// commas, ASCII cut at the first NUL, rationals as "num/den".
func decodeTagValue(order binary.ByteOrder, typ uint16, count uint32, raw []byte) string {
	switch typ {
	case 1:
		vals := make([]string, 0, len(raw))
		for _, b := range raw {
			vals = append(vals, strconv.Itoa(int(b)))
		}
		return strings.Join(vals, ",")
	case 2:
		if idx := bytes.IndexByte(raw, 0); idx >= 0 {
			return string(raw[:idx])
		}
		return string(raw)
	case 3:
		vals := make([]string, 0, count)
		for i := 0; i+2 <= len(raw); i += 2 {
			vals = append(vals, strconv.Itoa(int(order.Uint16(raw[i:i+2]))))
		}
		return strings.Join(vals, ",")
	case 4:
		vals := make([]string, 0, count)
		for i := 0; i+4 <= len(raw); i += 4 {
			vals = append(vals, strconv.FormatUint(uint64(order.Uint32(raw[i:i+4])), 10))
		}
		return strings.Join(vals, ",")
	case 5:
		vals := make([]string, 0, count)
		for i := 0; i+8 <= len(raw); i += 8 {
			num := order.Uint32(raw[i : i+4])
			den := order.Uint32(raw[i+4 : i+8])
			vals = append(vals, fmt.Sprintf("%d/%d", num, den))
		}
		return strings.Join(vals, ",")
	}
	return ""
}

// readTIFFTags walks IFD0 (and the Exif sub-IFD via tag 0x8769) starting at
// tiffStart. Keys encode the IFD in the high 16 bits and the tag in the low:
// (ifdType<<16)|tag. Truncated or cyclic structures stop the walk without
// failing; whatever parsed before the damage is returned.
func readTIFFTags(data []byte, tiffStart int) (map[uint32]string, error) {
	res := map[uint32]string{}
	if tiffStart+8 > len(data) {
		return res, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch {
	case data[tiffStart] == 'M' && data[tiffStart+1] == 'M':
		order = binary.BigEndian
	case data[tiffStart] == 'I' && data[tiffStart+1] == 'I':
		order = binary.LittleEndian
	default:
		return res, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return res, fmt.Errorf("invalid tiff magic")
	}

	visited := map[int]bool{}
	var readIFD func(ifdOffset, ifdType int)
	readIFD = func(ifdOffset, ifdType int) {
		abs := tiffStart + ifdOffset
		if abs+2 > len(data) || visited[abs] {
			return
		}
		visited[abs] = true
		nEntries := int(order.Uint16(data[abs : abs+2]))
		base := abs + 2
		for e := 0; e < nEntries; e++ {
			ent := base + e*12
			if ent+12 > len(data) {
				return
			}
			tag := order.Uint16(data[ent : ent+2])
			typ := order.Uint16(data[ent+2 : ent+4])
			count := order.Uint32(data[ent+4 : ent+8])
			valOff := data[ent+8 : ent+12]

			if tag == 0x8769 { // Exif sub-IFD pointer
				off := int(order.Uint32(valOff))
				if off > 0 && tiffStart+off < len(data) {
					readIFD(off, ifdTypeExif)
				}
				continue
			}

			sizePer := tiffTypeSize(typ)
			if sizePer == 0 {
				continue
			}
			total := int(count) * sizePer
			var raw []byte
			if total <= 4 {
				buf := make([]byte, 4)
				copy(buf, valOff)
				raw = buf[:total]
			} else {
				off := int(order.Uint32(valOff))
				if off < 0 || tiffStart+off+total > len(data) {
					continue
				}
				raw = data[tiffStart+off : tiffStart+off+total]
			}
			if sval := decodeTagValue(order, typ, count, raw); sval != "" {
				res[(uint32(ifdType)<<16)|uint32(tag)] = sval
			}
		}
		// chained IFD (thumbnail IFD1 in practice)
		next := base + nEntries*12
		if next+4 <= len(data) {
			off := int(order.Uint32(data[next : next+4]))
			if off > 0 && tiffStart+off < len(data) {
				readIFD(off, ifdType)
			}
		}
	}

	off := int(order.Uint32(data[tiffStart+4 : tiffStart+8]))
	if off > 0 && tiffStart+off < len(data) {
		readIFD(off, ifdType0)
	}
	return res, nil
}

// parseRational parses "num/den" into a float64.
func parseRational(s string) (float64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid rational: %s", s)
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, err
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, fmt.Errorf("zero denominator")
	}
	return num / den, nil
}

// tagsToEXIF picks the fields the CLI reports out of the raw tag map.
func tagsToEXIF(tags map[uint32]string) EXIF {
	var out EXIF
	get := func(ifd int, tag uint16) (string, bool) {
		v, ok := tags[(uint32(ifd)<<16)|uint32(tag)]
		return v, ok
	}
	firstInt := func(s string) (int, bool) {
		v, err := strconv.Atoi(strings.SplitN(s, ",", 2)[0])
		return v, err == nil
	}

	if v, ok := get(ifdType0, 0x010F); ok {
		out.Make = v
	}
	if v, ok := get(ifdType0, 0x0110); ok {
		out.Model = v
	}
	if v, ok := get(ifdType0, 0x0131); ok {
		out.Software = v
	}
	if v, ok := get(ifdType0, 0x0112); ok {
		if n, good := firstInt(v); good {
			out.Orientation = n
		}
	}
	if v, ok := get(ifdType0, 0x0132); ok {
		out.DateTime = v
	}
	if v, ok := get(ifdTypeExif, 0x9003); ok {
		out.DateTimeOriginal = v
	}
	if v, ok := get(ifdTypeExif, 0x829A); ok { // ExposureTime
		out.ExposureTime = v
		if f, err := parseRational(v); err == nil {
			out.Exposure = f
		}
	}
	if v, ok := get(ifdTypeExif, 0x829D); ok { // FNumber
		if f, err := parseRational(v); err == nil {
			out.FNumber = f
		}
	}
	if v, ok := get(ifdTypeExif, 0x8827); ok { // ISOSpeedRatings
		if n, good := firstInt(v); good {
			out.ISOSpeed = n
		}
	}
	if v, ok := get(ifdTypeExif, 0x920A); ok { // FocalLength
		if f, err := parseRational(v); err == nil {
			out.FocalLength = f
		}
	}
	if v, ok := get(ifdTypeExif, 0xA434); ok {
		out.LensModel = v
	}
	return out
}

// jpegOrientation returns the EXIF orientation (1..8) from raw JPEG bytes.
func jpegOrientation(data []byte) (int, error) {
	tiffStart, err := findEXIFBlock(data)
	if err != nil {
		return 0, err
	}
	tags, err := readTIFFTags(data, tiffStart)
	if err != nil {
		return 0, err
	}
	if v, ok := tags[(uint32(ifdType0)<<16)|0x0112]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("orientation tag not found")
}

// summary renders the EXIF fields as "Key: value" lines, skipping zero
// values, in a stable order.
func (e EXIF) summary() []string {
	var lines []string
	add := func(k, v string) {
		if v != "" {
			lines = append(lines, k+": "+v)
		}
	}
	add("Make", e.Make)
	add("Model", e.Model)
	add("Software", e.Software)
	if e.Orientation != 0 {
		add("Orientation", strconv.Itoa(e.Orientation))
	}
	add("DateTime", e.DateTime)
	add("DateTimeOriginal", e.DateTimeOriginal)
	if e.ExposureTime != "" {
		add("ExposureTime", e.ExposureTime+" sec")
	}
	if e.FNumber != 0 {
		add("FNumber", fmt.Sprintf("f/%.1f", e.FNumber))
	}
	if e.ISOSpeed != 0 {
		add("ISO", strconv.Itoa(e.ISOSpeed))
	}
	if e.FocalLength != 0 {
		add("FocalLength", fmt.Sprintf("%.1f mm", e.FocalLength))
	}
	add("LensModel", e.LensModel)
	return lines
}
