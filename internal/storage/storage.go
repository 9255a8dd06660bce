// Package storage is the local-disk blob store backing document, meeting
// and report files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Storage struct {
	root string
}

func New(root string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Storage{root: abs}, nil
}

// Root returns the absolute storage root directory.
func (s *Storage) Root() string {
	return s.root
}

// FullPath resolves a stored relative path, rejecting traversal outside the
// root.
func (s *Storage) FullPath(relPath string) (string, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+relPath))
	if !strings.HasPrefix(full, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage path: %s", relPath)
	}
	return full, nil
}

// Save writes the reader's content under relPath, creating parent
// directories as needed. Returns the number of bytes written.
func (s *Storage) Save(relPath string, r io.Reader) (int64, error) {
	full, err := s.FullPath(relPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return size, nil
}

func (s *Storage) Open(relPath string) (*os.File, error) {
	full, err := s.FullPath(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (s *Storage) Exists(relPath string) bool {
	full, err := s.FullPath(relPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (s *Storage) Delete(relPath string) error {
	full, err := s.FullPath(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
