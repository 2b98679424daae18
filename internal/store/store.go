// Package store keeps the development backend's records in a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pablasso/hobbytrack/internal/hobby"
)

// Catalog is everything the backend has persisted.
type Catalog struct {
	Hobbies   []hobby.Hobby `json:"hobbies"`
	Goals     []hobby.Goal  `json:"goals"`
	Tasks     []hobby.Task  `json:"tasks"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// FileStore persists a Catalog to a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the catalog. A missing file yields an empty catalog.
func (s *FileStore) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Save writes the catalog atomically.
func (s *FileStore) Save(c *Catalog) error {
	c.UpdatedAt = time.Now()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	// Write to temp file then rename
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog temp file: %w", err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename catalog temp file: %w", err)
	}
	return nil
}
