// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
		"skills": [
			{
				"name": "test-skill",
				"description": "A test skill",
				"llms_txt_url": "https://example.com/llms.txt"
			}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, cfg.Skills, 1)
	assert.Equal(t, "test-skill", cfg.Skills[0].Name)
	assert.Equal(t, "A test skill", cfg.Skills[0].Description)
	assert.Equal(t, "https://example.com/llms.txt", cfg.Skills[0].LLMSTxtURL)
	assert.Nil(t, cfg.Repository)
}

func TestParse_EmptySkills(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{"skills": []}`))
	require.NoError(t, err)
	assert.Empty(t, cfg.Skills)
}

func TestParse_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{"missing name", `{"skills": [{"llms_txt_url": "https://example.com/llms.txt"}]}`},
		{"missing llms_txt_url", `{"skills": [{"name": "test"}]}`},
		{"missing skills", `{}`},
		{"invalid json", `{ invalid json }`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestParse_RepositoryDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
		"skills": [],
		"repository": {"bucket_name": "my-bucket"}
	}`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Repository)
	assert.Equal(t, "us-east-1", cfg.Repository.Region)
	assert.Empty(t, cfg.Repository.Name)
	assert.Empty(t, cfg.Repository.Endpoint)
}

func TestParse_FullRepository(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
		"skills": [],
		"repository": {
			"name": "my-repo",
			"bucket_name": "my-bucket",
			"region": "eu-west-1",
			"endpoint": "https://s3.example.com",
			"local": {"path": "/tmp/repo", "cache": true}
		}
	}`))
	require.NoError(t, err)

	repo := cfg.Repository
	require.NotNil(t, repo)
	assert.Equal(t, "my-repo", repo.Name)
	assert.Equal(t, "eu-west-1", repo.Region)
	assert.Equal(t, "https://s3.example.com", repo.Endpoint)
	require.NotNil(t, repo.Local)
	assert.Equal(t, "/tmp/repo", repo.Local.Path)
	assert.True(t, repo.Local.Cache)
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	cfg, err := ParseYAML([]byte(`
skills:
  - name: test-skill
    description: A test skill
    llms_txt_url: https://example.com/llms.txt
repository:
  bucket_name: my-bucket
  local:
    cache: true
`))
	require.NoError(t, err)
	require.Len(t, cfg.Skills, 1)
	assert.Equal(t, "test-skill", cfg.Skills[0].Name)
	assert.Equal(t, "us-east-1", cfg.Repository.Region)
	assert.True(t, cfg.Repository.CacheEnabled())
}

func TestParseYAML_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := ParseYAML([]byte("skills:\n  - description: no name here\n"))
	assert.Error(t, err)
}

func TestRepositoryConfig_Predicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		repo      *RepositoryConfig
		hasRemote bool
		hasLocal  bool
		cache     bool
	}{
		{"nil config", nil, false, false, false},
		{"empty config", &RepositoryConfig{}, false, false, false},
		{"remote only", &RepositoryConfig{BucketName: "b"}, true, false, false},
		{"local only", &RepositoryConfig{Local: &LocalRepositoryConfig{Path: "/p"}}, false, true, false},
		{
			"local cache without remote stays primary",
			&RepositoryConfig{Local: &LocalRepositoryConfig{Path: "/p", Cache: true}},
			false, true, false,
		},
		{
			"local cache with remote",
			&RepositoryConfig{BucketName: "b", Local: &LocalRepositoryConfig{Cache: true}},
			true, true, true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.hasRemote, tt.repo.HasRemote())
			assert.Equal(t, tt.hasLocal, tt.repo.HasLocal())
			assert.Equal(t, tt.cache, tt.repo.CacheEnabled())
		})
	}
}

func TestLocalRepoPath(t *testing.T) {
	t.Parallel()

	explicit := &RepositoryConfig{Local: &LocalRepositoryConfig{Path: "/explicit/path"}}
	assert.Equal(t, "/explicit/path", explicit.LocalRepoPath())

	implicit := &RepositoryConfig{Local: &LocalRepositoryConfig{}}
	assert.Equal(t, DefaultLocalRepoPath(), implicit.LocalRepoPath())
}

func TestGetBaseURL(t *testing.T) {
	t.Parallel()

	explicit := &SkillConfig{
		Name:       "test",
		LLMSTxtURL: "https://example.com/llms.txt",
		BaseURL:    "https://custom.com",
	}
	got, err := explicit.GetBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://custom.com", got)

	derived := &SkillConfig{
		Name:       "test",
		LLMSTxtURL: "https://www.example.com/path/llms.txt",
	}
	got, err = derived.GetBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.com", got)
}

func TestFindSkill(t *testing.T) {
	t.Parallel()

	cfg := &Config{Skills: []SkillConfig{
		{Name: "first", LLMSTxtURL: "https://first.com/llms.txt"},
		{Name: "second", LLMSTxtURL: "https://second.com/llms.txt"},
	}}

	found := cfg.FindSkill("second")
	require.NotNil(t, found)
	assert.Equal(t, "second", found.Name)
	assert.Nil(t, cfg.FindSkill("nonexistent"))

	assert.Equal(t, []string{"first", "second"}, cfg.SkillNames())
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "skills.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"skills": []}`), 0o644))
	cfg, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.Skills)

	yamlPath := filepath.Join(dir, "skills.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("skills:\n  - name: a\n    llms_txt_url: https://a.com/llms.txt\n"), 0o644))
	cfg, err = Load(yamlPath)
	require.NoError(t, err)
	require.Len(t, cfg.Skills, 1)
	assert.Equal(t, "a", cfg.Skills[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
