// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type Options struct {
	Level  string // zerolog level name
	Format string // console or json
	Color  string // auto, always or never
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "log level %q", opts.Level)
		}
		level = l
	}

	out := w
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    !ColorEnabled(w, opts.Color),
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// ColorEnabled resolves a color mode against w. auto enables color only
// for terminals.
func ColorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
