// Package persistence holds the pluggable snapshot backends sitting behind
// the store. The store saves the whole aggregate after every mutation and
// loads it once at startup; which backend receives it is a config concern.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/raziqtech/portal-api/internal/models"
)

// SnapshotKey is the versioned document key. Bump the suffix when the
// snapshot shape changes incompatibly.
const SnapshotKey = "raziqtech_db_v3"

// Snapshotter loads and saves the full store aggregate. Load returns
// (nil, nil) when no snapshot exists yet.
type Snapshotter interface {
	Load() (*models.Snapshot, error)
	Save(snapshot *models.Snapshot) error
}

// MemorySnapshotter keeps nothing: state lives only for the process
// lifetime. This is the default driver.
type MemorySnapshotter struct{}

func NewMemorySnapshotter() *MemorySnapshotter {
	return &MemorySnapshotter{}
}

func (s *MemorySnapshotter) Load() (*models.Snapshot, error) {
	return nil, nil
}

func (s *MemorySnapshotter) Save(snapshot *models.Snapshot) error {
	return nil
}

// FileSnapshotter stores the aggregate as a JSON document on disk.
type FileSnapshotter struct {
	path string
}

func NewFileSnapshotter(path string) *FileSnapshotter {
	return &FileSnapshotter{path: path}
}

func (s *FileSnapshotter) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot file: %w", err)
	}
	return &snapshot, nil
}

func (s *FileSnapshotter) Save(snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}
