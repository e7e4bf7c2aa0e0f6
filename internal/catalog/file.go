package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource loads the price list from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the price list file.
func (s *FileSource) Load(_ context.Context) ([]ServiceOffer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", s.path, err)
	}
	var offers []ServiceOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode %s: %w", s.path, err)
	}
	return offers, nil
}
