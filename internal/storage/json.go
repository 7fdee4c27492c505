package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"zonaprop-hunter/internal/scraper"
)

// JSONWriter writes a pretty-printed JSON array to a file.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

func (w *JSONWriter) Write(listings []*scraper.Listing) error {
	data, err := json.MarshalIndent(listings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal listings: %w", err)
	}

	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	return nil
}
