// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import "fmt"

// Object keys are derived deterministically from (name, version) so any
// store holding a skill can be addressed without consulting state beyond
// the index.

// SkillKey returns the object key of a skill payload.
func SkillKey(name, version string) string {
	return fmt.Sprintf("skills/%s/%s/%s.skill", name, version, name)
}

// ChangelogKey returns the object key of a version's changelog.
func ChangelogKey(name, version string) string {
	return fmt.Sprintf("skills/%s/%s/CHANGELOG.md", name, version)
}

// SourceArchiveKey returns the object key of a version's source archive.
func SourceArchiveKey(name, version string) string {
	return fmt.Sprintf("source/%s/%s/%s-source.zip", name, version, name)
}

// cacheMetadataKey returns the object key of a cache entry's metadata.
func cacheMetadataKey(name, version string) string {
	return fmt.Sprintf("skills/%s/%s/metadata.json", name, version)
}
