package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one YAML file per key in a directory.
type FileStore struct {
	rootDir string
}

// NewFileStore creates the directory if needed and returns a FileStore.
func NewFileStore(directory string) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}
	return &FileStore{rootDir: directory}, nil
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.rootDir, key+".yml")
}

// Get reads the file of key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	contents, err := os.ReadFile(s.filePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", key, err)
	}
	return contents, nil
}

// Put writes the value to a temporary file and renames it over the key's file.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	file, err := os.CreateTemp(s.rootDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", key, err)
	}
	tmpPath := file.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.Write(%s) > %w", key, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", key, err)
	}
	if err := os.Rename(tmpPath, s.filePath(key)); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", key, err)
	}
	return nil
}

// Delete removes the key's file. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove(%s) > %w", key, err)
	}
	return nil
}
