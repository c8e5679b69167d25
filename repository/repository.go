// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package repository orchestrates an object store and the versions index
// into skill-level operations: upload, download, install, delete, list.
// An optional second store acts as a read-through cache in front of the
// primary.
package repository

import (
	"context"
	"fmt"

	"github.com/skillvault/skillvault-core/config"
	"github.com/skillvault/skillvault-core/index"
	"github.com/skillvault/skillvault-core/logger"
	"github.com/skillvault/skillvault-core/pack"
	"github.com/skillvault/skillvault-core/storage"
)

// Extractor unpacks a downloaded skill payload into a directory.
type Extractor interface {
	Extract(data []byte, installDir string) (*pack.ExtractResult, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte, installDir string) (*pack.ExtractResult, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(data []byte, installDir string) (*pack.ExtractResult, error) {
	return f(data, installDir)
}

// Repository manages skills in a primary object store, optionally fronted
// by a cache store. Each operation loads the index fresh; nothing is
// retained between calls.
type Repository struct {
	primary     storage.ObjectStore
	cache       storage.ObjectStore
	sourceLabel string
}

// Option configures a Repository.
type Option func(*Repository)

// WithCache fronts the primary store with a cache store. Downloads
// consult the cache first and populate it best-effort.
func WithCache(cache storage.ObjectStore) Option {
	return func(r *Repository) {
		r.cache = cache
	}
}

// WithSourceLabel sets the provenance label recorded in cache metadata.
func WithSourceLabel(label string) Option {
	return func(r *Repository) {
		r.sourceLabel = label
	}
}

// New creates a repository over a primary store.
func New(primary storage.ObjectStore, opts ...Option) *Repository {
	r := &Repository{primary: primary, sourceLabel: "primary"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds a repository from configuration. A remote config
// yields an S3-backed repository, with the local path as cache when the
// cache flag is set; a local-only config yields a filesystem-backed
// repository.
func FromConfig(ctx context.Context, rc *config.RepositoryConfig) (*Repository, error) {
	if rc == nil {
		return nil, config.ErrNoRepository
	}

	if rc.HasRemote() {
		primary, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:   rc.BucketName,
			Region:   rc.Region,
			Endpoint: rc.Endpoint,
		})
		if err != nil {
			return nil, err
		}

		opts := []Option{WithSourceLabel("s3://" + rc.BucketName)}
		if rc.CacheEnabled() {
			cache, err := storage.NewFileStore(rc.LocalRepoPath())
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithCache(cache))
		}
		return New(primary, opts...), nil
	}

	if rc.HasLocal() {
		path := rc.LocalRepoPath()
		primary, err := storage.NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return New(primary, WithSourceLabel("file://"+path)), nil
	}

	return nil, config.ErrNoRemote
}

// UploadParams carries everything an upload writes. Changelog and
// SourceArchive are optional.
type UploadParams struct {
	Name        string
	Version     string
	Description string
	LLMSTxtURL  string

	// Skill is the packaged .skill payload.
	Skill []byte

	// Changelog is the CHANGELOG.md content for this version.
	Changelog []byte

	// SourceArchive is a zip of the skill's source directory.
	SourceArchive []byte
}

// Upload writes a skill version's objects and then records it in the
// index. The index is updated only after every object write succeeded, so
// a failed upload never leaves an index entry pointing at missing
// objects. The inverse can happen: objects written before a later
// failure are not rolled back.
func (r *Repository) Upload(ctx context.Context, params UploadParams) error {
	if params.Name == "" || params.Version == "" {
		return fmt.Errorf("upload requires a skill name and version")
	}
	if len(params.Skill) == 0 {
		return fmt.Errorf("upload requires a skill payload")
	}

	skillKey := SkillKey(params.Name, params.Version)
	if err := r.primary.Put(ctx, skillKey, params.Skill); err != nil {
		return fmt.Errorf("uploading skill object: %w", err)
	}
	logger.Debugf("uploaded %s", skillKey)

	if len(params.Changelog) > 0 {
		key := ChangelogKey(params.Name, params.Version)
		if err := r.primary.Put(ctx, key, params.Changelog); err != nil {
			return fmt.Errorf("uploading changelog: %w", err)
		}
		logger.Debugf("uploaded %s", key)
	}

	if len(params.SourceArchive) > 0 {
		key := SourceArchiveKey(params.Name, params.Version)
		if err := r.primary.Put(ctx, key, params.SourceArchive); err != nil {
			return fmt.Errorf("uploading source archive: %w", err)
		}
		logger.Debugf("uploaded %s", key)
	}

	idx, err := index.Load(ctx, r.primary)
	if err != nil {
		return err
	}
	idx.Upsert(params.Name, params.Description, params.LLMSTxtURL, params.Version, skillKey)
	return index.Save(ctx, r.primary, idx)
}

// Download fetches a skill payload, resolving an empty version to the
// latest recorded one. A configured cache is consulted first; on a cache
// miss the payload is read from the primary store and written into the
// cache best-effort. Absence from the index is NotFound regardless of
// what objects the stores still hold.
func (r *Repository) Download(ctx context.Context, name, version string) ([]byte, string, error) {
	idx, err := index.Load(ctx, r.primary)
	if err != nil {
		return nil, "", err
	}

	entry := idx.Find(name)
	if entry == nil {
		return nil, "", fmt.Errorf("skill %q: %w", name, storage.ErrNotFound)
	}

	resolved := version
	if resolved == "" {
		resolved = idx.Latest(name)
	}

	key, ok := entry.Versions[resolved]
	if !ok {
		return nil, "", fmt.Errorf("skill %q version %q: %w", name, resolved, storage.ErrNotFound)
	}

	if r.cache != nil {
		if data, err := r.cache.Get(ctx, SkillKey(name, resolved)); err == nil {
			logger.Debugf("cache hit for %s@%s", name, resolved)
			return data, resolved, nil
		}
	}

	data, err := r.primary.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("downloading %s: %w", key, err)
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, SkillKey(name, resolved), data); err != nil {
			logger.Warnf("caching %s@%s failed: %v", name, resolved, err)
		} else if err := writeCacheMetadata(ctx, r.cache, name, resolved, r.sourceLabel, data); err != nil {
			logger.Warnf("writing cache metadata for %s@%s failed: %v", name, resolved, err)
		}
	}

	return data, resolved, nil
}

// Install downloads a skill and extracts it into installDir. A nil
// extractor uses the standard zip extraction.
func (r *Repository) Install(ctx context.Context, name, version, installDir string, extractor Extractor) (*pack.ExtractResult, string, error) {
	if extractor == nil {
		extractor = ExtractorFunc(pack.Extract)
	}

	data, resolved, err := r.Download(ctx, name, version)
	if err != nil {
		return nil, "", err
	}

	result, err := extractor.Extract(data, installDir)
	if err != nil {
		return nil, "", fmt.Errorf("installing %s@%s: %w", name, resolved, err)
	}
	return result, resolved, nil
}

// Delete removes a skill version, or every version when version is
// empty. Object deletions are best-effort: individual failures are
// logged and the index is saved once afterwards, recording the final
// state. Orphaned objects can outlive their index entry if deletes fail.
func (r *Repository) Delete(ctx context.Context, name, version string) error {
	idx, err := index.Load(ctx, r.primary)
	if err != nil {
		return err
	}

	versions := []string{version}
	if version == "" {
		versions = nil
		if entry := idx.Find(name); entry != nil {
			for v := range entry.Versions {
				versions = append(versions, v)
			}
		}
	}

	for _, v := range versions {
		r.deleteObjects(ctx, r.primary, name, v)
		if r.cache != nil {
			r.deleteObjects(ctx, r.cache, name, v)
			if err := r.cache.Delete(ctx, cacheMetadataKey(name, v)); err != nil {
				logger.Debugf("removing cache metadata for %s@%s: %v", name, v, err)
			}
		}
	}

	if version == "" {
		idx.Remove(name)
	} else {
		idx.RemoveVersion(name, version)
	}
	return index.Save(ctx, r.primary, idx)
}

// deleteObjects removes a version's three possible object keys from a
// store, ignoring individual failures.
func (r *Repository) deleteObjects(ctx context.Context, store storage.ObjectStore, name, version string) {
	for _, key := range []string{
		SkillKey(name, version),
		ChangelogKey(name, version),
		SourceArchiveKey(name, version),
	} {
		if err := store.Delete(ctx, key); err != nil {
			logger.Debugf("deleting %s: %v", key, err)
		}
	}
}

// List returns the index, optionally filtered to a single skill. An
// unknown filter yields an empty index, not an error.
func (r *Repository) List(ctx context.Context, filter string) (*index.Index, error) {
	idx, err := index.Load(ctx, r.primary)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return idx, nil
	}

	filtered := index.New()
	if entry := idx.Find(filter); entry != nil {
		filtered.Skills = append(filtered.Skills, *entry)
	}
	return filtered, nil
}
