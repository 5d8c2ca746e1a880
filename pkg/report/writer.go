// Package report renders export artifacts: the full JSON dump, the
// compact health summary, per-category split files, and a Markdown
// digest. Formatters never fetch; they only reshape an AggregateRecord.
package report

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Writer writes export artifacts into a data directory.
type Writer struct {
	dataDir  string
	exportID string
	logger   zerolog.Logger
}

// NewWriter creates a writer rooted at dataDir, creating the directory
// if needed. Every writer carries a fresh export ID that tags the
// per-category files of one run.
func NewWriter(dataDir string) (*Writer, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &Writer{
		dataDir:  dataDir,
		exportID: uuid.NewString(),
		logger:   log.With().Str("component", "report-writer").Logger(),
	}, nil
}

// ExportID returns the run identifier stamped into category metadata.
func (w *Writer) ExportID() string {
	return w.exportID
}
