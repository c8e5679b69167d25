// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillvault/skillvault-core/config"
	"github.com/skillvault/skillvault-core/index"
	"github.com/skillvault/skillvault-core/pack"
	"github.com/skillvault/skillvault-core/storage"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "skills/alpha/1.0.0/alpha.skill", SkillKey("alpha", "1.0.0"))
	assert.Equal(t, "skills/alpha/1.0.0/CHANGELOG.md", ChangelogKey("alpha", "1.0.0"))
	assert.Equal(t, "source/alpha/1.0.0/alpha-source.zip", SourceArchiveKey("alpha", "1.0.0"))
}

func TestUploadDownload_Roundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := storage.NewMemoryStore()
	repo := New(primary)

	err := repo.Upload(ctx, UploadParams{
		Name:        "alpha",
		Version:     "1.0.0",
		Description: "first skill",
		LLMSTxtURL:  "https://example.com/llms.txt",
		Skill:       []byte("hello"),
	})
	require.NoError(t, err)

	// Payload lands at the deterministic key.
	data, err := primary.Get(ctx, "skills/alpha/1.0.0/alpha.skill")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	data, resolved, err := repo.Download(ctx, "alpha", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "1.0.0", resolved)
}

func TestUpload_WithChangelogAndSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := storage.NewMemoryStore()
	repo := New(primary)

	err := repo.Upload(ctx, UploadParams{
		Name:          "alpha",
		Version:       "1.0.0",
		Skill:         []byte("payload"),
		Changelog:     []byte("# Changelog\n\n## 1.0.0\n- Initial release\n"),
		SourceArchive: []byte("zip bytes"),
	})
	require.NoError(t, err)

	changelog, err := primary.Get(ctx, ChangelogKey("alpha", "1.0.0"))
	require.NoError(t, err)
	assert.Contains(t, string(changelog), "Initial release")

	assert.True(t, primary.Exists(ctx, SourceArchiveKey("alpha", "1.0.0")))
}

func TestUpload_Validation(t *testing.T) {
	t.Parallel()

	repo := New(storage.NewMemoryStore())

	err := repo.Upload(context.Background(), UploadParams{Name: "a", Version: "1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload")

	err = repo.Upload(context.Background(), UploadParams{Skill: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name and version")
}

func TestDownload_LatestVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New(storage.NewMemoryStore())

	for _, v := range []string{"1.0.0", "2.1.0", "1.5.0"} {
		require.NoError(t, repo.Upload(ctx, UploadParams{
			Name: "alpha", Version: v, Skill: []byte("v" + v),
		}))
	}

	data, resolved, err := repo.Download(ctx, "alpha", "")
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", resolved)
	assert.Equal(t, []byte("v2.1.0"), data)
}

func TestDownload_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New(storage.NewMemoryStore())
	require.NoError(t, repo.Upload(ctx, UploadParams{
		Name: "alpha", Version: "1.0.0", Skill: []byte("x"),
	}))

	_, _, err := repo.Download(ctx, "missing", "")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, _, err = repo.Download(ctx, "alpha", "9.9.9")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDownload_NotFoundFromIndexNotObjects(t *testing.T) {
	t.Parallel()

	// An object present in the store but absent from the index is not
	// downloadable.
	ctx := context.Background()
	primary := storage.NewMemoryStore()
	require.NoError(t, primary.Put(ctx, SkillKey("ghost", "1.0.0"), []byte("x")))

	repo := New(primary)
	_, _, err := repo.Download(ctx, "ghost", "1.0.0")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDownload_PopulatesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := storage.NewMemoryStore()
	cache := storage.NewMemoryStore()
	repo := New(primary, WithCache(cache), WithSourceLabel("s3://test-bucket"))

	require.NoError(t, repo.Upload(ctx, UploadParams{
		Name: "alpha", Version: "1.0.0", Skill: []byte("hello"),
	}))

	_, _, err := repo.Download(ctx, "alpha", "1.0.0")
	require.NoError(t, err)

	cached, err := cache.Get(ctx, SkillKey("alpha", "1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), cached)

	meta, err := cache.Get(ctx, "skills/alpha/1.0.0/metadata.json")
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"s3://test-bucket"`)
	assert.Contains(t, string(meta), "sha256:")
}

func TestDelete_Version(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := storage.NewMemoryStore()
	repo := New(primary)

	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "1.0.0", Skill: []byte("v1")}))
	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "2.0.0", Skill: []byte("v2")}))

	require.NoError(t, repo.Delete(ctx, "alpha", "1.0.0"))

	assert.False(t, primary.Exists(ctx, SkillKey("alpha", "1.0.0")))
	assert.True(t, primary.Exists(ctx, SkillKey("alpha", "2.0.0")))

	idx, err := repo.List(ctx, "")
	require.NoError(t, err)
	entry := idx.Find("alpha")
	require.NotNil(t, entry)
	assert.Len(t, entry.Versions, 1)
}

func TestDelete_LastVersionRemovesEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New(storage.NewMemoryStore())
	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "1.0.0", Skill: []byte("x")}))

	require.NoError(t, repo.Delete(ctx, "alpha", "1.0.0"))

	idx, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, idx.Find("alpha"))
}

func TestDelete_AllVersions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := storage.NewMemoryStore()
	repo := New(primary)

	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "1.0.0", Skill: []byte("v1")}))
	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "2.0.0", Skill: []byte("v2")}))

	require.NoError(t, repo.Delete(ctx, "alpha", ""))

	assert.False(t, primary.Exists(ctx, SkillKey("alpha", "1.0.0")))
	assert.False(t, primary.Exists(ctx, SkillKey("alpha", "2.0.0")))

	idx, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, idx.Skills)
}

func TestDelete_MirrorsIntoCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := storage.NewMemoryStore()
	repo := New(storage.NewMemoryStore(), WithCache(cache))

	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "1.0.0", Skill: []byte("x")}))
	_, _, err := repo.Download(ctx, "alpha", "1.0.0")
	require.NoError(t, err)
	require.True(t, cache.Exists(ctx, SkillKey("alpha", "1.0.0")))

	require.NoError(t, repo.Delete(ctx, "alpha", "1.0.0"))
	assert.False(t, cache.Exists(ctx, SkillKey("alpha", "1.0.0")))
	assert.False(t, cache.Exists(ctx, "skills/alpha/1.0.0/metadata.json"))
}

func TestDelete_MissingObjectsIgnored(t *testing.T) {
	t.Parallel()

	// Deleting a version whose objects are already gone still updates
	// the index.
	ctx := context.Background()
	primary := storage.NewMemoryStore()
	repo := New(primary)

	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "alpha", Version: "1.0.0", Skill: []byte("x")}))
	require.NoError(t, primary.Delete(ctx, SkillKey("alpha", "1.0.0")))

	require.NoError(t, repo.Delete(ctx, "alpha", "1.0.0"))

	idx, err := index.Load(ctx, primary)
	require.NoError(t, err)
	assert.Nil(t, idx.Find("alpha"))
}

func TestList_Filter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New(storage.NewMemoryStore())

	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "skill-a", Version: "1.0.0", Skill: []byte("a")}))
	require.NoError(t, repo.Upload(ctx, UploadParams{Name: "skill-b", Version: "1.0.0", Skill: []byte("b")}))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Skills, 2)

	filtered, err := repo.List(ctx, "skill-a")
	require.NoError(t, err)
	require.Len(t, filtered.Skills, 1)
	assert.Equal(t, "skill-a", filtered.Skills[0].Name)

	empty, err := repo.List(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, empty.Skills)
}

func TestInstall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New(storage.NewMemoryStore())

	skillDir := filepath.Join(t.TempDir(), "test-skill")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte("---\nname: test-skill\n---\n"), 0o644))

	archived, err := pack.ArchiveDir(skillDir)
	require.NoError(t, err)

	require.NoError(t, repo.Upload(ctx, UploadParams{
		Name: "test-skill", Version: "1.0.0", Skill: archived.Data,
	}))

	installDir := t.TempDir()
	result, resolved, err := repo.Install(ctx, "test-skill", "", installDir, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", resolved)
	assert.Equal(t, "test-skill", result.SkillName)
	assert.FileExists(t, filepath.Join(installDir, "test-skill", "SKILL.md"))
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := New(storage.NewMemoryStore())

	require.NoError(t, repo.Upload(ctx, UploadParams{
		Name:        "alpha",
		Version:     "1.0.0",
		Description: "the alpha skill",
		Skill:       []byte("hello"),
	}))

	idx, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, idx.Skills, 1)
	assert.Equal(t, "alpha", idx.Skills[0].Name)
	assert.Len(t, idx.Skills[0].Versions, 1)

	data, resolved, err := repo.Download(ctx, "alpha", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "1.0.0", resolved)

	require.NoError(t, repo.Delete(ctx, "alpha", ""))

	idx, err = repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, idx.Skills)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	_, err := FromConfig(context.Background(), nil)
	assert.ErrorIs(t, err, config.ErrNoRepository)

	_, err = FromConfig(context.Background(), &config.RepositoryConfig{})
	assert.ErrorIs(t, err, config.ErrNoRemote)

	repo, err := FromConfig(context.Background(), &config.RepositoryConfig{
		Local: &config.LocalRepositoryConfig{Path: t.TempDir()},
	})
	require.NoError(t, err)
	assert.Nil(t, repo.cache)

	require.NoError(t, repo.Upload(context.Background(), UploadParams{
		Name: "alpha", Version: "1.0.0", Skill: []byte("x"),
	}))
	data, resolved, err := repo.Download(context.Background(), "alpha", "")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", resolved)
	assert.Equal(t, []byte("x"), data)
}
