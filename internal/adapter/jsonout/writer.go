// Package jsonout writes the heatmap artifact to a JSON file.
package jsonout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blackdede/carbura/internal/domain"
)

// Writer persists heatmaps as a single JSON document. The target file is
// replaced atomically so readers never observe a partial artifact.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter builds a writer targeting path. Parent directories are created
// on demand.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Emit marshals the heatmap and moves it into place in one rename.
func (w *Writer) Emit(_ context.Context, heatmap domain.Heatmap) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	if err := enc.Encode(heatmap); err != nil {
		tmp.Close()
		return fmt.Errorf("encode heatmap: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}

	w.logger.Info("artifact written", "path", w.path, "stations", len(heatmap.Stations))
	return nil
}
