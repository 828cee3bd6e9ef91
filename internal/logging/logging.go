// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomber-legend/internal/config"
)

// DefaultFile is where interactive commands log, so output stays off the
// alternate screen.
const DefaultFile = "~/.arcade/arcade.log"

// New creates a logger for cfg and returns a close function for its file.
// An empty cfg.File logs to stderr.
func New(cfg config.LoggingConfig, prefix string) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = log.ParseLevel(cfg.Level); err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if cfg.File != "" {
		f, err := openFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// Install makes logger the package default used by games and services.
func Install(logger *log.Logger) {
	log.SetDefault(logger)
}

func openFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("logging: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}
