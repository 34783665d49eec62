// Package file implements snapshot persistence as a single JSON artifact.
// Every save rewrites the whole file through a temp-file + rename so a crash
// mid-write never leaves a truncated snapshot behind.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/taskhub/internal/todo/store"
)

type Store struct {
	path string
}

// NewStore creates a file-backed snapshot store at the given path. The file
// is created lazily on the first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() (store.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return store.Snapshot{}, nil
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("file: read snapshot: %w", err)
	}

	if len(data) == 0 {
		return store.Snapshot{}, nil
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("file: decode snapshot: %w", err)
	}
	return snap, nil
}

func (s *Store) Save(snap store.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("file: encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".taskhub-snapshot-*")
	if err != nil {
		return fmt.Errorf("file: create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file: close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file: replace snapshot: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
