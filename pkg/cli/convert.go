package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/darkroom/pkg/magick"
	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

func cmdConvert(args []string, cfg Config, log *logrus.Logger) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	maxWidth := fs.Int("max-width", 0, "downscale to at most this width, 0 keeps the size")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "convert: expected <input> <output>")
		return 2
	}
	src, dst := rest[0], rest[1]

	if cfg.Engine == "imagick" {
		if magick.Available() {
			if err := magick.ConvertFile(src, dst, *maxWidth); err != nil {
				log.WithError(err).Error("imagick conversion failed")
				return 1
			}
			fmt.Printf("Converted %s -> %s\n", src, dst)
			return 0
		}
		log.Warn("DARKROOM_ENGINE=imagick but this build has no imagick support; using the pure-Go path")
	}

	img, _, err := LoadImage(src)
	if err != nil {
		log.WithError(err).WithField("path", src).Error("load failed")
		return 1
	}
	if *maxWidth > 0 && img.Bounds().Dx() > *maxWidth {
		n := stdimg.ToNRGBA(img)
		h := img.Bounds().Dy() * *maxWidth / img.Bounds().Dx()
		if h < 1 {
			h = 1
		}
		img = stdimg.Resize(n, *maxWidth, h)
	}
	if err := SaveImage(dst, img, cfg.JPEGQuality); err != nil {
		log.WithError(err).WithField("path", dst).Error("save failed")
		return 1
	}
	fmt.Printf("Converted %s -> %s\n", src, dst)
	return 0
}
