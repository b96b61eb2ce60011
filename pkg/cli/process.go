package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/darkroom/pkg/engine"
	"github.com/Fepozopo/darkroom/pkg/stdimg"
	"github.com/Fepozopo/darkroom/pkg/style"
)

func cmdProcess(args []string, cfg Config, log *logrus.Logger) int {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	out := fs.String("o", "", "output file (required)")
	temperature := fs.Float64("temperature", 0, "white balance temperature shift, -1..1")
	tint := fs.Float64("tint", 0, "white balance tint shift, -1..1")
	exposure := fs.Float64("exposure", 0, "exposure adjustment in stops")
	contrast := fs.Float64("contrast", 1, "contrast factor, 1 = unchanged")
	saturation := fs.Float64("saturation", 1, "saturation factor, 1 = unchanged")
	clarity := fs.Float64("clarity", 0, "local contrast strength, negative softens")
	vignette := fs.Float64("vignette", 0, "corner darkening strength, 0..1")
	grain := fs.Float64("grain", 0, "film grain intensity, 0..1")
	styleName := fs.String("style", "", "apply a named style before the adjustments")
	intensity := fs.Float64("intensity", 1, "style intensity, 0..1")
	preview := fs.Bool("preview", false, "render the result inline in the terminal")
	snapshots := fs.String("snapshots", "", "directory to write per-step snapshot images")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, err := resolveImageArg(fs.Args())
	if err != nil {
		log.WithError(err).Error("no input image")
		return 2
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "process: -o output file is required")
		return 2
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := engine.NewPipeline(name)

	if *styleName != "" {
		reg := style.NewRegistry()
		if err := reg.Apply(p, *styleName, *intensity); err != nil {
			log.WithError(err).WithField("style", *styleName).Error("style failed")
			return 1
		}
	}

	// Adjustments apply in a fixed order regardless of flag position:
	// white balance, exposure, contrast, saturation, clarity, vignette, grain.
	adjustments := []struct {
		wanted bool
		op     string
		params engine.Params
	}{
		{set["temperature"] || set["tint"], "whitebalance", engine.Params{"temperature": *temperature, "tint": *tint}},
		{set["exposure"], "exposure", engine.Params{"ev": *exposure}},
		{set["contrast"], "contrast", engine.Params{"factor": *contrast}},
		{set["saturation"], "saturation", engine.Params{"factor": *saturation}},
		{set["clarity"], "clarity", engine.Params{"strength": *clarity}},
		{set["vignette"], "vignette", engine.Params{"strength": *vignette}},
		{set["grain"], "grain", engine.Params{"intensity": *grain}},
	}
	for _, a := range adjustments {
		if !a.wanted {
			continue
		}
		fn, err := stdimg.Transform(a.op)
		if err != nil {
			log.WithError(err).Error("resolve operation")
			return 1
		}
		if err := p.AddOperation(a.op, fn, a.params); err != nil {
			log.WithError(err).WithField("op", a.op).Error("add operation")
			return 1
		}
	}

	if len(p.Operations()) == 0 {
		fmt.Fprintln(os.Stderr, "process: nothing to do; pass adjustment flags or --style")
		return 2
	}

	img, _, err := LoadImage(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("load failed")
		return 1
	}

	capture := *snapshots != ""
	result, err := p.Execute(engine.NewImage(img), capture)
	if err != nil {
		log.WithError(err).Error("pipeline failed")
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
		"input":  path,
		"output": *out,
		"steps":  len(p.Operations()),
	}).Info("processed")
	fmt.Printf("Saved %s\n", *out)

	if *preview && cfg.Preview != "off" {
		if err := PreviewImage(result.NRGBA(), previewBackend(cfg)); err != nil {
			log.WithError(err).Debug("preview unavailable")
		}
	}
	return 0
}

// previewBackend maps the config preview setting to a PreviewImage backend
// argument; "auto" and empty both mean detect.
func previewBackend(cfg Config) string {
	if cfg.Preview == "" || cfg.Preview == "auto" || cfg.Preview == "off" {
		return ""
	}
	return cfg.Preview
}

// writeSnapshots saves every captured intermediate image into dir, numbered
// in execution order.
func writeSnapshots(p *engine.Pipeline, dir string, jpegQuality int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	infos := p.Operations()
	for i := 0; i < p.SnapshotCount(); i++ {
		snap, err := p.Snapshot(i)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%02d_%s.png", i+1, infos[i].Name)
		if err := SaveImage(filepath.Join(dir, name), snap.NRGBA(), jpegQuality); err != nil {
			return err
		}
	}
	return nil
}
