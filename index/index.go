// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package index maintains the versions index: the single JSON document
// enumerating every skill in a store, its versions, and the object key
// holding each version's payload.
package index

// Entry is a single skill in the index.
type Entry struct {
	// Name uniquely identifies the skill within the index.
	Name string `json:"name"`

	// Description of the skill.
	Description string `json:"description"`

	// LLMSTxtURL is the llms.txt source the skill was built from.
	LLMSTxtURL string `json:"llms_txt_url"`

	// Versions maps version strings to the object key of that version's
	// payload.
	Versions map[string]string `json:"versions"`
}

// Index is the full versions index. An entry with zero versions never
// exists: removing the last version removes the entry.
type Index struct {
	Skills []Entry `json:"skills"`
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Find returns the entry with the given name, or nil.
func (idx *Index) Find(name string) *Entry {
	for i := range idx.Skills {
		if idx.Skills[i].Name == name {
			return &idx.Skills[i]
		}
	}
	return nil
}

// Upsert adds or updates a skill entry. When the name already exists, the
// description and source URL are overwritten and the version mapping is
// inserted or replaced. Reports whether an existing entry was updated.
func (idx *Index) Upsert(name, description, llmsTxtURL, version, key string) bool {
	if entry := idx.Find(name); entry != nil {
		entry.Description = description
		entry.LLMSTxtURL = llmsTxtURL
		entry.Versions[version] = key
		return true
	}

	idx.Skills = append(idx.Skills, Entry{
		Name:        name,
		Description: description,
		LLMSTxtURL:  llmsTxtURL,
		Versions:    map[string]string{version: key},
	})
	return false
}

// Remove deletes a skill entirely. Reports whether it existed.
func (idx *Index) Remove(name string) bool {
	for i := range idx.Skills {
		if idx.Skills[i].Name == name {
			idx.Skills = append(idx.Skills[:i], idx.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveVersion deletes one version mapping of a skill. When the entry's
// version set becomes empty the entry itself is removed. Reports whether
// the version existed.
func (idx *Index) RemoveVersion(name, version string) bool {
	entry := idx.Find(name)
	if entry == nil {
		return false
	}

	_, existed := entry.Versions[version]
	delete(entry.Versions, version)
	if len(entry.Versions) == 0 {
		idx.Remove(name)
	}
	return existed
}

// Latest returns the greatest version of a skill under semantic-version
// comparison, or "" when the skill is absent.
func (idx *Index) Latest(name string) string {
	entry := idx.Find(name)
	if entry == nil {
		return ""
	}

	var latest string
	for version := range entry.Versions {
		if latest == "" || CompareVersions(version, latest) > 0 {
			latest = version
		}
	}
	return latest
}
