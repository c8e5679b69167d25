// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package config parses and validates the skills.json configuration file
// that names the skills to build and the repository to publish them to.
package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrNoRepository reports that an operation needing a repository section
// was attempted against a config without one.
var ErrNoRepository = errors.New("no repository configured")

// ErrNoRemote reports that a remote repository operation was attempted
// but the config has no bucket_name.
var ErrNoRemote = errors.New("no remote repository configured (missing bucket_name)")

// DefaultRegion is used when the repository section omits a region.
const DefaultRegion = "us-east-1"

// SkillConfig is a single skill entry in the configuration.
type SkillConfig struct {
	// Name uniquely identifies the skill.
	Name string `json:"name" yaml:"name"`

	// Description of what the skill provides.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// LLMSTxtURL is the llms.txt file the skill is built from.
	LLMSTxtURL string `json:"llms_txt_url" yaml:"llms_txt_url"`

	// BaseURL overrides the base for resolving relative links. Derived
	// from LLMSTxtURL when empty.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// PathPrefix is stripped from URLs when creating local paths.
	PathPrefix string `json:"path_prefix,omitempty" yaml:"path_prefix,omitempty"`
}

// GetBaseURL returns the explicit base URL, or derives scheme://host from
// the llms.txt URL when none is set.
func (s *SkillConfig) GetBaseURL() (string, error) {
	if s.BaseURL != "" {
		return s.BaseURL, nil
	}

	u, err := url.Parse(s.LLMSTxtURL)
	if err != nil {
		return "", fmt.Errorf("parsing llms_txt_url: %w", err)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// LocalRepositoryConfig describes a filesystem-backed repository.
type LocalRepositoryConfig struct {
	// Path is the repository root. Empty means the default path under
	// the user's config directory.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Cache marks the local repository as a cache layer in front of the
	// remote. Only effective when a remote is also configured.
	Cache bool `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// RepositoryConfig describes where skills are stored.
type RepositoryConfig struct {
	// Name is a display name for the repository.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// BucketName is the S3 bucket. Presence enables the remote tier.
	BucketName string `json:"bucket_name,omitempty" yaml:"bucket_name,omitempty"`

	// Region is the AWS region, defaulting to us-east-1.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint is a custom URL for S3-compatible providers.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Local configures the filesystem-backed tier.
	Local *LocalRepositoryConfig `json:"local,omitempty" yaml:"local,omitempty"`
}

// HasRemote reports whether a remote repository is configured.
func (r *RepositoryConfig) HasRemote() bool {
	return r != nil && r.BucketName != ""
}

// HasLocal reports whether a local repository is configured.
func (r *RepositoryConfig) HasLocal() bool {
	return r != nil && r.Local != nil
}

// CacheEnabled reports whether the local repository acts as a cache. A
// local repository with no remote behind it is a primary store, never a
// cache, regardless of the cache flag.
func (r *RepositoryConfig) CacheEnabled() bool {
	return r.HasRemote() && r.HasLocal() && r.Local.Cache
}

// LocalRepoPath returns the configured local repository root, falling
// back to the default path under the user's config directory.
func (r *RepositoryConfig) LocalRepoPath() string {
	if r.HasLocal() && r.Local.Path != "" {
		return r.Local.Path
	}
	return DefaultLocalRepoPath()
}

// Config is the root configuration document.
type Config struct {
	// Skills lists the configured skills.
	Skills []SkillConfig `json:"skills" yaml:"skills"`

	// Repository optionally configures skill storage.
	Repository *RepositoryConfig `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// FindSkill returns the skill with the given name, or nil.
func (c *Config) FindSkill(name string) *SkillConfig {
	for i := range c.Skills {
		if c.Skills[i].Name == name {
			return &c.Skills[i]
		}
	}
	return nil
}

// SkillNames returns the names of all configured skills, in order.
func (c *Config) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	return names
}

// applyDefaults fills fields the document may omit.
func (c *Config) applyDefaults() {
	if c.Repository != nil && c.Repository.Region == "" {
		c.Repository.Region = DefaultRegion
	}
}
