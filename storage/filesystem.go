// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore implements ObjectStore on a root directory, mapping keys to
// filesystem paths. Key "skills/foo/1.0.0/foo.skill" becomes
// {root}/skills/foo/1.0.0/foo.skill.
type FileStore struct {
	root string
}

// Compile-time interface check.
var _ ObjectStore = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir, creating it if absent.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return &FileStore{root: dir}, nil
}

// FileStoreAt returns a store rooted at dir without creating the
// directory. Reads against a missing root behave as an empty store.
func FileStoreAt(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Root returns the store root directory.
func (f *FileStore) Root() string {
	return f.root
}

// Put writes data at key, creating parent directories as needed.
func (f *FileStore) Put(_ context.Context, key string, data []byte) error {
	path := f.keyToPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Get reads the object at key.
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.keyToPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the object at key, then prunes any now-empty parent
// directories up to (but excluding) the store root.
func (f *FileStore) Delete(_ context.Context, key string) error {
	path := f.keyToPath(key)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	for dir := filepath.Dir(path); dir != f.root; dir = filepath.Dir(dir) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			break
		}
		if err := os.Remove(dir); err != nil {
			break
		}
	}
	return nil
}

// List returns every key under prefix in depth-first traversal order.
// A prefix that names a partial final component (e.g. "skills/fo") still
// matches entries whose names start with it.
func (f *FileStore) List(_ context.Context, prefix string) ([]string, error) {
	base := f.keyToPath(prefix)
	var keys []string

	info, err := os.Stat(base)
	switch {
	case err == nil && info.IsDir():
		if err := f.collect(base, &keys); err != nil {
			return nil, err
		}
	case err == nil:
		keys = append(keys, f.pathToKey(base))
	default:
		// The prefix may partially name entries in its parent directory.
		parent := filepath.Dir(base)
		partial := filepath.Base(base)
		entries, err := os.ReadDir(parent)
		if err != nil {
			return keys, nil
		}
		for _, entry := range entries {
			if !strings.HasPrefix(entry.Name(), partial) {
				continue
			}
			full := filepath.Join(parent, entry.Name())
			if entry.IsDir() {
				if err := f.collect(full, &keys); err != nil {
					return nil, err
				}
			} else {
				keys = append(keys, f.pathToKey(full))
			}
		}
	}

	return keys, nil
}

// Exists reports whether key names a regular file.
func (f *FileStore) Exists(_ context.Context, key string) bool {
	info, err := os.Stat(f.keyToPath(key))
	return err == nil && info.Mode().IsRegular()
}

// collect appends the keys of all files under dir, depth-first.
func (f *FileStore) collect(dir string, keys *[]string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("listing %s: %w", dir, err)
		}
		if !d.IsDir() {
			*keys = append(*keys, f.pathToKey(path))
		}
		return nil
	})
}

func (f *FileStore) keyToPath(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func (f *FileStore) pathToKey(path string) string {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}
