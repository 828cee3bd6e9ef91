package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomber-legend/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arcade.log")

	logger, closeFn, err := New(config.LoggingConfig{Level: "debug", File: path}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("hello", "key", 7)
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "key=7") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewLevel(t *testing.T) {
	logger, closeFn, err := New(config.LoggingConfig{Level: "warn"}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closeFn()
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, expected warn", logger.GetLevel())
	}

	if _, _, err := New(config.LoggingConfig{Level: "loud"}, ""); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
