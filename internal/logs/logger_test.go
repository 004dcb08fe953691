package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize_WritesToLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Initialize(dir, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		Close()
		Silence()
	})

	Logger.Info("scan complete", "notes", 3)
	if err := Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "scan complete") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestClose_WithoutFile(t *testing.T) {
	Silence()
	if err := Close(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
