package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// fileStore keeps one file per key under a root directory.
type fileStore struct {
	mu   sync.Mutex
	root string // absolute root directory
}

// NewFileStore creates a file-backed store rooted at root, creating the
// directory if needed. A relative root is resolved against the working
// directory.
func NewFileStore(root string) (Store, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("kv/file: getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("kv/file: mkdir %s: %w", root, err)
	}
	return &fileStore{root: root}, nil
}

// path maps a key onto a file name. Keys are flat identifiers ("cart",
// "orders"); anything resembling a path separator is rejected at write time.
func (s *fileStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return fmt.Errorf("kv/file: invalid key %q", key)
	}
	return nil
}

func (s *fileStore) Read(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/file: read %s: %w", key, err)
	}
	return data, nil
}

func (s *fileStore) Write(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temp file then rename so a crash mid-write never leaves a
	// truncated value behind.
	full := s.path(key)
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("kv/file: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		return fmt.Errorf("kv/file: rename %s: %w", key, err)
	}
	return nil
}

func (s *fileStore) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kv/file: delete %s: %w", key, err)
	}
	return nil
}
