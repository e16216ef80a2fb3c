package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants
const (
	FileModeDir  os.FileMode = 0755
	FileModeFile os.FileMode = 0644
)

// FileStorage stores each key in its own file under dir.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file storage: dir cannot be empty")
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return nil, fmt.Errorf("file storage: create dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// fileName maps "@alonix/badge_count" to "alonix_badge_count.json".
func fileName(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_") + ".json"
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, fileName(key))
}

func (fs *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("file storage: read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes to a temp file and renames it over the target under the lock.
func (fs *FileStorage) Set(_ context.Context, key, value string) error {
	return WithLock(filepath.Join(fs.dir, ".lock"), func() error {
		target := fs.path(key)
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, []byte(value), FileModeFile); err != nil {
			return fmt.Errorf("file storage: write %s: %w", key, err)
		}
		if err := os.Rename(tmp, target); err != nil {
			return fmt.Errorf("file storage: replace %s: %w", key, err)
		}
		return nil
	})
}

func (fs *FileStorage) Delete(_ context.Context, key string) error {
	return WithLock(filepath.Join(fs.dir, ".lock"), func() error {
		err := os.Remove(fs.path(key))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file storage: delete %s: %w", key, err)
		}
		return nil
	})
}

func (fs *FileStorage) Close() error { return nil }
