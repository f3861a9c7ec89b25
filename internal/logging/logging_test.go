package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostforge.log")
	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("allocated")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"allocated"`) {
		t.Errorf("Expected JSON entry in log file, got %q", string(data))
	}
	if !strings.Contains(string(data), `"timestamp"`) {
		t.Errorf("Expected timestamp key, got %q", string(data))
	}
}

func TestNewFallsBackOnBadLevel(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Core().Enabled(0) {
		t.Error("Expected info level to be enabled after fallback")
	}
}

func TestGlobalLoggerInitialized(t *testing.T) {
	if Logger == nil || Sugar == nil {
		t.Fatal("Expected package init to install a default logger")
	}
}
