package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "garmin")

	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}

	if w.ExportID() == "" {
		t.Error("ExportID should not be empty")
	}
}

func TestNewWriter_RequiresDir(t *testing.T) {
	_, err := NewWriter("")
	if err == nil {
		t.Fatal("expected error for empty data directory")
	}
}

func TestNewWriter_FreshExportIDs(t *testing.T) {
	first, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	second, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if first.ExportID() == second.ExportID() {
		t.Errorf("writers share export ID %q", first.ExportID())
	}
}
