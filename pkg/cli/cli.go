package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Run executes one CLI invocation and returns the process exit code.
func Run(args []string) int {
	cfg := LoadConfig()
	log := newLogger(cfg.Debug)

	if len(args) == 0 {
		usage(os.Stderr)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "analyze":
		return cmdAnalyze(rest, cfg, log)
	case "process":
		return cmdProcess(rest, cfg, log)
	case "pipeline":
		return cmdPipeline(rest, cfg, log)
	case "styles":
		return cmdStyles(rest)
	case "ops":
		return cmdOps(rest)
	case "convert":
		return cmdConvert(rest, cfg, log)
	case "version":
		fmt.Printf("darkroom %s\n", Version)
		return 0
	case "update":
		if err := CheckForUpdates(); err != nil {
			log.WithError(err).Error("update check failed")
			return 1
		}
		return 0
	case "help", "-h", "--help":
		usage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage(os.Stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: darkroom <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  analyze <image>          print image statistics and EXIF (--json)")
	fmt.Fprintln(w, "  process <image> -o out   apply adjustments and/or a style, save the result")
	fmt.Fprintln(w, "  pipeline run|save|presets  execute or export pipeline files")
	fmt.Fprintln(w, "  styles                   list the built-in styles")
	fmt.Fprintln(w, "  ops [name]               show the operation catalog (--json, --pick)")
	fmt.Fprintln(w, "  convert <in> <out>       decode and re-encode an image")
	fmt.Fprintln(w, "  version                  print the version")
	fmt.Fprintln(w, "  update                   check GitHub releases and self-update")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'darkroom <command> -h' for command flags.")
}

// PromptLine displays a prompt and reads one line from stdin, trimmed of
// surrounding whitespace.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf reads one full line and treats a lone "/" as a request to
// pick a file with fzf. Reading the whole line keeps paths with spaces
// intact. When fzf is unavailable or cancelled it falls back to a plain
// typed prompt.
func PromptLineOrFzf(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	input := strings.TrimSpace(line)
	if input == "/" {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Printf(" [fzf] %s\n", sel)
			return sel, nil
		}
		return PromptLine(prompt)
	}
	return input, nil
}

// resolveImageArg returns the positional image path, prompting (with fzf
// support) when the command line did not carry one.
func resolveImageArg(args []string) (string, error) {
	if len(args) >= 1 && args[0] != "" {
		return args[0], nil
	}
	path, err := PromptLineOrFzf("Image path (or '/' to pick with fzf): ")
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("no image given")
	}
	return path, nil
}
