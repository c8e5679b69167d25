// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package pack turns skill directories into distributable .skill archives
// and extracts them again. A .skill file is a zip whose entries all live
// under a single top-level directory named after the skill.
package pack

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions and names excluded from archives.
var (
	skipExtensions = []string{".pyc", ".pyo"}
	skipNames      = []string{"__pycache__", ".DS_Store", "Thumbs.db"}
)

// ArchiveResult reports what went into an archive.
type ArchiveResult struct {
	// Data is the zip payload.
	Data []byte

	// FilesIncluded counts the file entries written.
	FilesIncluded int
}

// ExtractResult reports what came out of an archive.
type ExtractResult struct {
	// SkillName is the top-level directory of the archive.
	SkillName string

	// InstallPath is the directory the skill now lives in.
	InstallPath string

	// FilesExtracted counts the file entries written.
	FilesExtracted int
}

// shouldSkip reports whether a relative path is excluded from packaging.
// Hidden files and directories anywhere in the path are excluded.
func shouldSkip(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}

	ext := filepath.Ext(rel)
	for _, s := range skipExtensions {
		if ext == s {
			return true
		}
	}

	name := filepath.Base(rel)
	for _, s := range skipNames {
		if name == s {
			return true
		}
	}
	return false
}

// collectFiles walks a skill directory and returns the sorted relative
// paths of every file to package.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if shouldSkip(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting files from %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// Archive packages a directory into a .skill zip. Every entry is placed
// under skillName so extraction yields a single directory.
func Archive(dir, skillName string) (*ArchiveResult, error) {
	files, err := collectFiles(dir)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, rel := range files {
		entry := skillName + "/" + filepath.ToSlash(rel)
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   entry,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %s: %w", entry, err)
		}

		data, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing archive entry %s: %w", entry, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}

	return &ArchiveResult{Data: buf.Bytes(), FilesIncluded: len(files)}, nil
}

// ArchiveDir packages a directory whose base name is the skill name.
func ArchiveDir(dir string) (*ArchiveResult, error) {
	return Archive(dir, filepath.Base(filepath.Clean(dir)))
}

// Extract unpacks a .skill archive into installDir. The skill name is
// taken from the first entry's top-level path component.
func Extract(data []byte, installDir string) (*ExtractResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening skill archive: %w", err)
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating install directory: %w", err)
	}

	result := &ExtractResult{InstallPath: installDir}

	for i, f := range zr.File {
		name := f.Name
		if i == 0 {
			first, _, _ := strings.Cut(filepath.ToSlash(name), "/")
			result.SkillName = first
			result.InstallPath = filepath.Join(installDir, first)
		}

		outPath, err := safeJoin(installDir, name)
		if err != nil {
			return nil, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating parent of %s: %w", name, err)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %s: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive entry %s: %w", name, err)
		}

		if err := os.WriteFile(outPath, content, 0o644); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", name, err)
		}
		result.FilesExtracted++
	}

	return result, nil
}

// ExtractFile unpacks a .skill file from disk into installDir.
func ExtractFile(skillFile, installDir string) (*ExtractResult, error) {
	data, err := os.ReadFile(skillFile)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", skillFile, err)
	}
	return Extract(data, installDir)
}

// List returns the sorted entry names of a .skill archive.
func List(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening skill archive: %w", err)
	}

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names, nil
}

// safeJoin joins an archive entry name onto base, rejecting entries that
// would escape it.
func safeJoin(base, name string) (string, error) {
	out := filepath.Join(base, filepath.FromSlash(name))
	if out != base && !strings.HasPrefix(out, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes install directory: %s", name)
	}
	return out, nil
}
