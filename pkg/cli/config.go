package cli

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings. Library packages read no
// environment; everything configurable funnels through here.
type Config struct {
	Debug       bool   // DARKROOM_DEBUG
	JPEGQuality int    // DARKROOM_JPEG_QUALITY, encoder quality 1..100
	Preview     string // DARKROOM_PREVIEW: "", "off", or a backend name (kitty/inline/sixel/chafa)
	Engine      string // DARKROOM_ENGINE: "std" (default) or "imagick"
}

// LoadConfig loads .env if present and reads the DARKROOM_* variables.
// Missing or malformed values fall back to defaults.
func LoadConfig() Config {
	// .env is optional
	_ = godotenv.Load()

	cfg := Config{
		JPEGQuality: 92,
		Engine:      "std",
	}
	if v := os.Getenv("DARKROOM_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("DARKROOM_JPEG_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil && q >= 1 && q <= 100 {
			cfg.JPEGQuality = q
		}
	}
	if v := os.Getenv("DARKROOM_PREVIEW"); v != "" {
		cfg.Preview = v
	}
	if v := os.Getenv("DARKROOM_ENGINE"); v != "" {
		cfg.Engine = v
	}
	return cfg
}
