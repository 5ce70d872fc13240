package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per slot under a base directory. This is the
// default backend.
type FileStore struct {
	basePath string
}

// NewFileStore creates a FileStore and ensures the base directory exists.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) slotPath(slot string) string {
	return filepath.Join(s.basePath, slot+".json")
}

// Load reads the snapshot file for slot.
func (s *FileStore) Load(slot string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.slotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return data, true, nil
}

// Save rewrites the snapshot file for slot.
func (s *FileStore) Save(slot string, data []byte) error {
	if err := os.WriteFile(s.slotPath(slot), data, 0644); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}
