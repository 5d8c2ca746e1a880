package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"garminexport/pkg/connect"
)

func TestWriteFullDump(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	path, err := w.WriteFullDump(testRecord())
	if err != nil {
		t.Fatalf("WriteFullDump failed: %v", err)
	}
	if filepath.Base(path) != FullDumpFile {
		t.Errorf("path = %q, want base %q", path, FullDumpFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"") {
		t.Error("dump should be indented with two spaces")
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("dump should end with a newline")
	}

	var decoded connect.Payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["fetched_at"] != "2026-08-23T12:00:00Z" {
		t.Errorf("fetched_at = %v, want 2026-08-23T12:00:00Z", decoded["fetched_at"])
	}
	if _, ok := decoded["daily_stats"].([]any); !ok {
		t.Errorf("daily_stats should decode as a list, got %T", decoded["daily_stats"])
	}
}
