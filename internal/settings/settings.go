// Package settings resolves tool settings from the environment. There is no
// config file; a .env in the working directory is honored for convenience,
// with the process environment taking precedence.
package settings

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLatexmkBin = "TEXBUILD_LATEXMK"
	EnvEngine     = "TEXBUILD_ENGINE"
	EnvDebounceMS = "TEXBUILD_DEBOUNCE_MS"
)

// Defaults.
const (
	DefaultLatexmkBin = "latexmk"
	DefaultEngine     = "lualatex"
	DefaultDebounce   = 250 * time.Millisecond
)

// Settings holds the resolved runtime settings.
type Settings struct {
	// LatexmkBin is the compiler driver binary invoked in the build directory.
	LatexmkBin string
	// Engine is the TeX engine latexmk delegates to for PDF output.
	Engine string
	// Debounce is how long the change watcher coalesces event bursts.
	Debounce time.Duration
}

// Load resolves settings from .env (if present) and the process environment.
// godotenv never overrides variables already set on the process.
func Load() Settings {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment variables from .env")
	}

	s := Settings{
		LatexmkBin: DefaultLatexmkBin,
		Engine:     DefaultEngine,
		Debounce:   DefaultDebounce,
	}
	if v := os.Getenv(EnvLatexmkBin); v != "" {
		s.LatexmkBin = v
	}
	if v := os.Getenv(EnvEngine); v != "" {
		s.Engine = v
	}
	if v := os.Getenv(EnvDebounceMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			slog.Warn("ignoring invalid debounce setting", "value", v)
		} else {
			s.Debounce = time.Duration(ms) * time.Millisecond
		}
	}
	return s
}
