package report

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"garminexport/pkg/export"
)

// FullDumpFile is the file name of the complete export dump.
const FullDumpFile = "garmin_full_data.json"

// WriteFullDump writes the complete aggregate record as indented JSON
// and returns the artifact path.
func (w *Writer) WriteFullDump(rec *export.AggregateRecord) (string, error) {
	path := filepath.Join(w.dataDir, FullDumpFile)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode full dump: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write full dump: %w", err)
	}

	w.logger.Info().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("Full dump written")

	return path, nil
}
