package cli

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

// analysisOutput is the analyze --json document.
type analysisOutput struct {
	Path   string        `json:"path"`
	Format string        `json:"format"`
	Report stdimg.Report `json:"report"`
	EXIF   *EXIF         `json:"exif,omitempty"`
}

func cmdAnalyze(args []string, cfg Config, log *logrus.Logger) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	path, err := resolveImageArg(fs.Args())
	if err != nil {
		log.WithError(err).Error("no input image")
		return 2
	}

	img, format, err := LoadImage(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("load failed")
		return 1
	}
	report := stdimg.Analyze(stdimg.ToNRGBA(img))

	var exif *EXIF
	if format == "jpeg" {
		if ex, exErr := ExtractEXIF(path); exErr == nil {
			exif = &ex
		} else {
			log.WithError(exErr).Debug("no EXIF data")
		}
	}

	if *asJSON {
		data, err := json.MarshalIndent(analysisOutput{
			Path:   path,
			Format: format,
			Report: report,
			EXIF:   exif,
		}, "", "  ")
		if err != nil {
			log.WithError(err).Error("encode report")
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Println(imageInfo(img, format))
	fmt.Printf("Brightness: mean %.1f, stddev %.1f\n", report.BrightnessMean, report.BrightnessStddev)
	fmt.Printf("Sharpness:  %.1f\n", report.Sharpness)
	fmt.Printf("Aspect:     %.3f\n", report.AspectRatio)
	if exif != nil {
		for _, line := range exif.summary() {
			fmt.Println(line)
		}
	}
	return 0
}
