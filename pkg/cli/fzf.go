package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

// SelectOpWithFzf shows the operation catalog in fzf and returns the chosen
// operation name.
func SelectOpWithFzf(ops []stdimg.OpSpec) (string, error) {
	var b strings.Builder
	for _, op := range ops {
		fmt.Fprintf(&b, "%s: %s\n", op.Name, op.Description)
	}

	cmd := exec.Command("fzf")
	cmd.Stdin = strings.NewReader(b.String())

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	name, _, _ := strings.Cut(selection, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("no operation selected")
	}
	return name, nil
}

// SelectFileWithFzf launches fzf over the image files under startDir and
// returns the selected path. The preview pane uses the most capable renderer
// the terminal detection finds, falling back to chafa. Requires find and fzf
// on PATH.
func SelectFileWithFzf(startDir string) (string, error) {
	quotedDir := strconv.Quote(startDir)

	// fzf's --preview takes a single command line, so fallbacks chain with ||.
	var previewCmd string
	switch {
	case isKitty():
		previewCmd = "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	case isInlineImageCapable():
		previewCmd = "imgcat {} 2>/dev/null || chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	case isSixelCapable():
		previewCmd = "img2sixel {} 2>/dev/null || chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	default:
		previewCmd = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	}

	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' -o -iname '*.webp' -o -iname '*.bmp' -o -iname '*.tif' -o -iname '*.tiff' \\) | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		quotedDir,
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		clearKittyImages()
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}
	clearKittyImages()

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics delete sequence. Terminals that
// don't understand it ignore it.
func clearKittyImages() {
	fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
}
