package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/darkroom/pkg/engine"
	"github.com/Fepozopo/darkroom/pkg/stdimg"
	"github.com/Fepozopo/darkroom/pkg/style"
)

// presetBuilders maps the preset flag names to their pipeline constructors.
func presetBuilders() map[string]func() (*engine.Pipeline, error) {
	return map[string]func() (*engine.Pipeline, error){
		"portrait-retouch":      style.PortraitRetouch,
		"landscape-enhancement": style.LandscapeEnhancement,
		"cinematic-look":        style.CinematicLook,
	}
}

func cmdPipeline(args []string, cfg Config, log *logrus.Logger) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "pipeline: expected run, save or presets")
		return 2
	}
	switch args[0] {
	case "run":
		return cmdPipelineRun(args[1:], cfg, log)
	case "save":
		return cmdPipelineSave(args[1:], log)
	case "presets":
		return cmdPipelinePresets(log)
	default:
		fmt.Fprintf(os.Stderr, "pipeline: unknown subcommand %q\n", args[0])
		return 2
	}
}

func cmdPipelineRun(args []string, cfg Config, log *logrus.Logger) int {
	fs := flag.NewFlagSet("pipeline run", flag.ContinueOnError)
	file := fs.String("f", "", "pipeline JSON file (required)")
	out := fs.String("o", "", "output file (required)")
	snapshots := fs.String("snapshots", "", "directory to write per-step snapshot images")
	preview := fs.Bool("preview", false, "render the result inline in the terminal")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, err := resolveImageArg(fs.Args())
	if err != nil {
		log.WithError(err).Error("no input image")
		return 2
	}
	if *file == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "pipeline run: -f pipeline file and -o output file are required")
		return 2
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.WithError(err).WithField("path", *file).Error("read pipeline")
		return 1
	}
	p, err := engine.Restore(data, stdimg.Transforms())
	if err != nil {
		log.WithError(err).WithField("path", *file).Error("restore pipeline")
		return 1
	}

	img, _, err := LoadImage(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("load failed")
		return 1
	}

	capture := *snapshots != ""
	result, err := p.Execute(engine.NewImage(img), capture)
	if err != nil {
		log.WithError(err).WithField("pipeline", p.Name()).Error("pipeline failed")
		return 1
	}
	if capture {
		if err := writeSnapshots(p, *snapshots, cfg.JPEGQuality); err != nil {
			log.WithError(err).WithField("dir", *snapshots).Error("write snapshots")
			return 1
		}
	}
	if err := SaveImage(*out, result.NRGBA(), cfg.JPEGQuality); err != nil {
		log.WithError(err).WithField("path", *out).Error("save failed")
		return 1
	}
	log.WithFields(logrus.Fields{
		"pipeline": p.Name(),
		"steps":    len(p.Operations()),
		"output":   *out,
	}).Info("pipeline executed")
	fmt.Printf("Saved %s\n", *out)

	if *preview && cfg.Preview != "off" {
		if err := PreviewImage(result.NRGBA(), previewBackend(cfg)); err != nil {
			log.WithError(err).Debug("preview unavailable")
		}
	}
	return 0
}

func cmdPipelineSave(args []string, log *logrus.Logger) int {
	fs := flag.NewFlagSet("pipeline save", flag.ContinueOnError)
	file := fs.String("f", "", "output JSON file (required)")
	preset := fs.String("preset", "", "preset to export (see 'pipeline presets')")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" || *preset == "" {
		fmt.Fprintln(os.Stderr, "pipeline save: -f output file and --preset name are required")
		return 2
	}

	build, ok := presetBuilders()[*preset]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown preset %q; run 'darkroom pipeline presets'\n", *preset)
		return 1
	}
	p, err := build()
	if err != nil {
		log.WithError(err).Error("build preset")
		return 1
	}
	data, err := p.Serialize()
	if err != nil {
		log.WithError(err).Error("serialize pipeline")
		return 1
	}
	if err := os.WriteFile(*file, data, 0o644); err != nil {
		log.WithError(err).WithField("path", *file).Error("write pipeline")
		return 1
	}
	fmt.Printf("Wrote %s (%s, %d steps)\n", *file, p.Name(), len(p.Operations()))
	return 0
}

func cmdPipelinePresets(log *logrus.Logger) int {
	builders := presetBuilders()
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := builders[name]()
		if err != nil {
			log.WithError(err).WithField("preset", name).Error("build preset")
			return 1
		}
		fmt.Printf("%-22s %s\n", name, p.Name())
		for _, info := range p.Operations() {
			fmt.Printf("    %s\n", info.Name)
		}
	}
	return 0
}
