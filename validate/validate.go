// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate checks skill directories before packaging: a SKILL.md
// must exist with YAML frontmatter naming and describing the skill.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// minDescriptionLen is the shortest acceptable frontmatter description.
const minDescriptionLen = 50

// maxFrontmatterSize limits frontmatter to prevent YAML parsing attacks.
const maxFrontmatterSize = 64 * 1024

// Frontmatter is the YAML header of a SKILL.md file.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Result collects validation findings. Errors make the skill invalid;
// warnings do not.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *Result) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ParseFrontmatter extracts and parses the YAML frontmatter from SKILL.md
// content. The document must start with a --- line and close it with
// another.
func ParseFrontmatter(content []byte) (*Frontmatter, error) {
	text := string(content)
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return nil, fmt.Errorf("SKILL.md missing YAML frontmatter (must start with ---)")
	}

	rest := text[strings.Index(text, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, fmt.Errorf("SKILL.md frontmatter is not closed with ---")
	}

	yamlContent := rest[:end]
	if len(yamlContent) > maxFrontmatterSize {
		return nil, fmt.Errorf("SKILL.md frontmatter exceeds %d bytes", maxFrontmatterSize)
	}
	if strings.TrimSpace(yamlContent) == "" {
		return nil, fmt.Errorf("SKILL.md frontmatter is empty")
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, fmt.Errorf("invalid YAML frontmatter: %w", err)
	}
	return &fm, nil
}

// Skill validates a skill directory and reports every finding.
func Skill(dir string) *Result {
	result := &Result{Valid: true}

	skillMD := filepath.Join(dir, "SKILL.md")
	content, err := os.ReadFile(skillMD)
	if err != nil {
		if os.IsNotExist(err) {
			result.addError("SKILL.md not found")
		} else {
			result.addError("failed to read SKILL.md: %v", err)
		}
		return result
	}

	fm, err := ParseFrontmatter(content)
	if err != nil {
		result.addError("%v", err)
		return result
	}

	if fm.Name == "" {
		result.addError("frontmatter 'name' field is missing or empty")
	}

	switch {
	case fm.Description == "":
		result.addError("frontmatter 'description' field is missing or empty")
	case len(fm.Description) < minDescriptionLen:
		result.addError(
			"frontmatter 'description' should be at least %d characters (got %d)",
			minDescriptionLen, len(fm.Description),
		)
	}

	if strings.Contains(string(content), "[TODO") {
		result.addError("SKILL.md contains unresolved [TODO] placeholders")
	}

	checkReferences(dir, result)
	return result
}

// checkReferences warns when the references directory is missing or
// empty.
func checkReferences(dir string, result *Result) {
	refs := filepath.Join(dir, "references")
	entries, err := os.ReadDir(refs)
	if err != nil {
		result.addWarning("no references directory found")
		return
	}
	if len(entries) == 0 {
		result.addWarning("references directory is empty")
	}
}
