// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage provides a flat key-to-bytes object store abstraction
// with filesystem, S3-compatible, and in-memory backends.
package storage

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

import (
	"context"
	"errors"
)

// ErrNotFound reports that no object exists at the requested key.
// Backends wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("object not found")

// ObjectStore is a flat key namespace over whole-object reads and writes.
// Keys are slash-separated path-like strings; there is no hierarchy beyond
// prefix-based listing.
type ObjectStore interface {
	// Put stores data at key, overwriting any prior content and creating
	// any implied parent structure.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the object bytes at key. A missing key yields an error
	// wrapping ErrNotFound, distinct from transport or permission failures.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object at key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// List returns every key starting with prefix. Order is unspecified.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether an object is present at key. It never errors:
	// transport failures collapse to false.
	Exists(ctx context.Context, key string) bool
}
