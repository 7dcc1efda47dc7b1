package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the game in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the save file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat save file: %w", err)
}

func (s *FileStore) Load(ctx context.Context) (State, error) {
	var state State

	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, ErrNoSave
	}
	if err != nil {
		return state, fmt.Errorf("read save file: %w", err)
	}

	if err := json.Unmarshal(content, &state); err != nil {
		return state, fmt.Errorf("parse save file %s: %w", s.path, err)
	}
	return state, nil
}

// Save writes to a temporary file in the same directory and renames it over
// the old save so a crash never leaves a half-written file.
func (s *FileStore) Save(ctx context.Context, state State) error {
	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
