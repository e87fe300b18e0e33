package filecache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps one file per cache key under a base directory. Entries are
// written once and never expired; a hit is authoritative regardless of age.
// The directory is created lazily on first write.
type Store struct {
	base string
}

func New(base string) *Store {
	if base == "" {
		base = "./quiz_cache"
	}
	return &Store{base: base}
}

// Get returns the entry for key, or (nil, false, nil) when absent. Absence
// is a normal outcome, not an error.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Store) Put(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// path resolves key under the base directory, refusing keys that would
// escape it.
func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty cache key")
	}
	clean := filepath.Clean(key)
	if clean == ".." || filepath.IsAbs(clean) || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("cache key escapes base directory")
	}
	return filepath.Join(s.base, clean), nil
}
