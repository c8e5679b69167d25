// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolver tries an ordered list of skill sources until one
// succeeds: the local repository, then the remote repository, then the
// GitHub release fallback.
package resolver

import (
	"context"
	"fmt"

	"github.com/skillvault/skillvault-core/config"
	"github.com/skillvault/skillvault-core/logger"
	"github.com/skillvault/skillvault-core/repository"
	"github.com/skillvault/skillvault-core/storage"
)

// Source identifies which tier satisfied a resolution.
type Source int

const (
	// SourceLocal is the filesystem-backed repository.
	SourceLocal Source = iota
	// SourceRemote is the object-store-backed repository.
	SourceRemote
	// SourceFallback is the GitHub release channel.
	SourceFallback
)

// String returns the display name.
func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

// Mode pins resolution to a single source, or lets the cascade run.
type Mode int

const (
	// ModeAuto cascades local, remote, fallback.
	ModeAuto Mode = iota
	// ModeLocalOnly tries only the local repository.
	ModeLocalOnly
	// ModeRemoteOnly tries only the remote repository.
	ModeRemoteOnly
	// ModeFallbackOnly tries only the GitHub release channel.
	ModeFallbackOnly
)

// Result is a resolved skill payload tagged with its provenance.
type Result struct {
	// Source is the tier that satisfied the resolution.
	Source Source

	// Data is the skill payload.
	Data []byte

	// Version is the resolved version. The fallback channel cannot
	// report one, so it echoes the request ("latest" when empty).
	Version string
}

// Resolver tries skill sources in priority order. It holds no durable
// state of its own.
type Resolver struct {
	local    *repository.Repository
	remote   *repository.Repository
	fallback *FallbackClient
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocal configures the local repository tier.
func WithLocal(repo *repository.Repository) Option {
	return func(r *Resolver) {
		r.local = repo
	}
}

// WithRemote configures the remote repository tier.
func WithRemote(repo *repository.Repository) Option {
	return func(r *Resolver) {
		r.remote = repo
	}
}

// WithFallback overrides the GitHub fallback client.
func WithFallback(client *FallbackClient) Option {
	return func(r *Resolver) {
		r.fallback = client
	}
}

// New creates a resolver. The fallback tier is always present; local and
// remote participate only when configured.
func New(opts ...Option) *Resolver {
	r := &Resolver{fallback: NewFallbackClient()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds a resolver from repository configuration. A nil
// config yields a fallback-only resolver.
func FromConfig(ctx context.Context, rc *config.RepositoryConfig, opts ...Option) (*Resolver, error) {
	var built []Option

	if rc.HasLocal() {
		store, err := storage.NewFileStore(rc.LocalRepoPath())
		if err != nil {
			return nil, err
		}
		built = append(built, WithLocal(repository.New(store)))
	}

	if rc.HasRemote() {
		remote, err := repository.FromConfig(ctx, rc)
		if err != nil {
			return nil, err
		}
		built = append(built, WithRemote(remote))
	}

	return New(append(built, opts...)...), nil
}

// Resolve returns the first source that can produce the skill. In auto
// mode every non-final failure, NotFound included, logs and falls
// through; the fallback's error is the one surfaced when the cascade is
// exhausted. A pinned mode attempts only its source and surfaces that
// source's error verbatim.
func (r *Resolver) Resolve(ctx context.Context, name, version string, mode Mode) (*Result, error) {
	switch mode {
	case ModeLocalOnly:
		if r.local == nil {
			return nil, config.ErrNoRepository
		}
		return r.tryRepository(ctx, r.local, SourceLocal, name, version)
	case ModeRemoteOnly:
		if r.remote == nil {
			return nil, config.ErrNoRemote
		}
		return r.tryRepository(ctx, r.remote, SourceRemote, name, version)
	case ModeFallbackOnly:
		return r.tryFallback(ctx, name, version)
	case ModeAuto:
	}

	if r.local != nil {
		result, err := r.tryRepository(ctx, r.local, SourceLocal, name, version)
		if err == nil {
			return result, nil
		}
		logger.Infof("skill %q not found in local repository, trying next source: %v", name, err)
	}

	if r.remote != nil {
		result, err := r.tryRepository(ctx, r.remote, SourceRemote, name, version)
		if err == nil {
			return result, nil
		}
		logger.Infof("skill %q not found in remote repository, trying fallback: %v", name, err)
	}

	return r.tryFallback(ctx, name, version)
}

func (r *Resolver) tryRepository(ctx context.Context, repo *repository.Repository, source Source, name, version string) (*Result, error) {
	data, resolved, err := repo.Download(ctx, name, version)
	if err != nil {
		return nil, err
	}
	return &Result{Source: source, Data: data, Version: resolved}, nil
}

func (r *Resolver) tryFallback(ctx context.Context, name, version string) (*Result, error) {
	data, err := r.fallback.Fetch(ctx, name, version)
	if err != nil {
		return nil, fmt.Errorf("fetching %q from release channel: %w", name, err)
	}

	resolved := version
	if resolved == "" {
		resolved = "latest"
	}
	return &Result{Source: SourceFallback, Data: data, Version: resolved}, nil
}
