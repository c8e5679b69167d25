// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillvault/skillvault-core/httperr"
)

// DefaultRepo is the GitHub repository skill releases are published to
// when none is configured.
const DefaultRepo = "antstanley/skill-builder"

// defaultBaseURL is the GitHub origin; overridable for tests.
const defaultBaseURL = "https://github.com"

const userAgent = "skillvault/1.0"

// FallbackClient downloads skill payloads from GitHub release assets.
type FallbackClient struct {
	client  *http.Client
	baseURL string
	repo    string
}

// FallbackOption configures a FallbackClient.
type FallbackOption func(*FallbackClient)

// WithRepo sets the GitHub repository releases are fetched from.
func WithRepo(repo string) FallbackOption {
	return func(c *FallbackClient) {
		if repo != "" {
			c.repo = repo
		}
	}
}

// WithBaseURL overrides the GitHub origin.
func WithBaseURL(baseURL string) FallbackOption {
	return func(c *FallbackClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) FallbackOption {
	return func(c *FallbackClient) {
		c.client = client
	}
}

// NewFallbackClient creates a client against the default release
// repository.
func NewFallbackClient(opts ...FallbackOption) *FallbackClient {
	c := &FallbackClient{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: defaultBaseURL,
		repo:    DefaultRepo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReleaseURL returns the release asset URL for a skill. An empty version
// addresses the latest release.
func (c *FallbackClient) ReleaseURL(name, version string) string {
	if version == "" {
		return fmt.Sprintf("%s/%s/releases/latest/download/%s.skill", c.baseURL, c.repo, name)
	}
	return fmt.Sprintf("%s/%s/releases/download/v%s/%s.skill", c.baseURL, c.repo, version, name)
}

// Fetch downloads a skill payload from the release channel. Non-2xx
// responses yield an error carrying the HTTP status code.
func (c *FallbackClient) Fetch(ctx context.Context, name, version string) ([]byte, error) {
	url := c.ReleaseURL(name, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httperr.WithCode(
			fmt.Errorf("HTTP %d downloading %s", resp.StatusCode, url),
			resp.StatusCode,
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for %s: %w", url, err)
	}
	return data, nil
}
