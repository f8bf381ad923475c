// Package logging builds the slog logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-bsmodal/internal/config"
)

// Level maps a configured level name to a slog level. Unknown names map to
// INFO.
func Level(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to cfg.File, or to fallback when no file
// is configured. The returned closer is nil unless a file was opened.
func New(cfg config.Log, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{
		Level: Level(cfg.Level),
	}

	if cfg.File == "" {
		if fallback == nil {
			fallback = os.Stderr
		}
		return slog.New(slog.NewTextHandler(fallback, opts)), nil, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, opts)), file, nil
}
