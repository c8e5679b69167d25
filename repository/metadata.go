// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/skillvault/skillvault-core/storage"
)

// CacheMetadata is stored alongside a cached skill payload.
type CacheMetadata struct {
	// Name of the cached skill.
	Name string `json:"name"`

	// Version of the cached payload.
	Version string `json:"version"`

	// Source labels where the payload came from, e.g. "s3://bucket".
	Source string `json:"source"`

	// Digest is the sha256 digest of the payload.
	Digest string `json:"digest"`

	// CachedAt is the RFC 3339 timestamp of cache entry creation.
	CachedAt string `json:"cached_at"`
}

// writeCacheMetadata records metadata for a cached payload. Failures are
// returned for the caller to log; cache metadata is never load-bearing.
func writeCacheMetadata(ctx context.Context, cache storage.ObjectStore, name, version, source string, payload []byte) error {
	meta := CacheMetadata{
		Name:     name,
		Version:  version,
		Source:   source,
		Digest:   digest.FromBytes(payload).String(),
		CachedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return cache.Put(ctx, cacheMetadataKey(name, version), data)
}
