package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal inline preview. Protocol support, in the order tried:
//   - iTerm2-style OSC 1337 inline images (iTerm2, WezTerm, Warp, Tabby, ...)
//   - kitty graphics protocol (kitty, ghostty, Konsole compatibility mode)
//   - sixel via an external img2sixel
//   - chafa block rendering for everything else
//
// DARKROOM_PREVIEW forces a specific backend ("inline", "kitty", "sixel",
// "chafa") or disables previews entirely ("off").

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "warp")
}

func isSixelCapable() bool {
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") {
		return true
	}
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any preview path is likely to work in the
// current terminal.
func PreviewSupported() bool {
	return isInlineImageCapable() || isKitty() || isSixelCapable() || hasChafa()
}

// previewSize is the target terminal placement for a preview.
type previewSize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// computePreviewSize fits the image into a bounded cell area, preserving
// aspect ratio and never scaling up.
func computePreviewSize(img image.Image) previewSize {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	const charW = 8
	const charH = 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 80, 40

	scaleW := float64(maxCols*charW) / float64(w)
	scaleH := float64(maxRows*charH) / float64(h)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	if cols < minCols {
		cols = minCols
	}
	if cols > maxCols {
		cols = maxCols
	}
	if rows < minRows {
		rows = minRows
	}
	if rows > maxRows {
		rows = maxRows
	}
	return previewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// postImageNewlines picks how many blank lines to emit after an image so the
// next prompt lands below it rather than over it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 0:
		return 1
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	default:
		return 4
	}
}

// PreviewImage renders img inline in the terminal. backend selects a specific
// protocol; empty means detect. All protocols receive PNG bytes, which every
// supported renderer accepts and kitty requires.
func PreviewImage(img image.Image, backend string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	blob := buf.Bytes()
	size := computePreviewSize(img)

	type protocol struct {
		name      string
		available func() bool
		send      func([]byte, previewSize) error
	}
	protocols := []protocol{
		{"inline", isInlineImageCapable, sendInlineImage},
		{"kitty", isKitty, sendKittyImage},
		{"sixel", isSixelCapable, sendSixelImage},
		{"chafa", hasChafa, sendChafaImage},
	}

	if backend != "" {
		for _, p := range protocols {
			if p.name == backend {
				return p.send(blob, size)
			}
		}
		return fmt.Errorf("unknown preview backend %q", backend)
	}

	var firstErr error
	for _, p := range protocols {
		if !p.available() {
			continue
		}
		if err := p.send(blob, size); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return nil
	}
	if firstErr != nil {
		return fmt.Errorf("terminal preview failed: %w", firstErr)
	}
	return fmt.Errorf("no terminal preview protocol available")
}

// sendKittyImage transmits PNG bytes with the kitty graphics protocol,
// chunking the base64 payload to 4096 bytes per escape sequence. The first
// chunk carries the control keys (a=T transmit+display, f=100 PNG, q=2
// suppress responses) and the requested cell placement.
func sendKittyImage(data []byte, size previewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	first := true
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := pos + chunkSize
		if end > len(enc) {
			end = len(enc)
		}
		chunk := enc[pos:end]
		mVal := "0"
		if end < len(enc) {
			mVal = "1"
		}
		var seq string
		if first {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, mVal, chunk)
			first = false
		} else {
			seq = "\x1b_Gm=" + mVal + ";" + chunk + "\x1b\\"
		}
		if _, err := os.Stdout.WriteString(seq); err != nil {
			return err
		}
	}
	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}

// sendInlineImage emits the iTerm2-style OSC 1337 inline file sequence.
func sendInlineImage(data []byte, size previewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + enc + "\a"
	if _, err := os.Stdout.WriteString(seq); err != nil {
		return err
	}
	for i := 0; i < postImageNewlines(0); i++ {
		fmt.Println()
	}
	return nil
}

// sendSixelImage pipes the PNG through an external img2sixel.
func sendSixelImage(data []byte, size previewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("img2sixel failed: %w", err)
	}
	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}

// sendChafaImage renders the PNG with chafa block symbols.
func sendChafaImage(data []byte, size previewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}
