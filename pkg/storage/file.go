package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexiclass/lexiclass/pkg/classifier"
)

// FileStore persists snapshots as a pretty-printed JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the snapshot to the store's path, creating parent
// directories as needed.
func (fs *FileStore) Save(_ context.Context, snap *classifier.Snapshot) error {
	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	file, err := os.Create(fs.path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// Load reads the snapshot back. A missing file maps to ErrNoModel.
func (fs *FileStore) Load(_ context.Context) (*classifier.Snapshot, error) {
	file, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoModel
		}
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	var snap classifier.Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return &snap, nil
}

// Close is a no-op for the file backend
func (fs *FileStore) Close() error {
	return nil
}
