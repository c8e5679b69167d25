// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent detects which agent frameworks a project or home
// directory is configured for and resolves the directories skills
// install into.
package agent

import (
	"fmt"
	"os"
	"path/filepath"
)

// Framework is a supported agent framework.
type Framework int

const (
	// Claude is the Claude Code framework.
	Claude Framework = iota
	// OpenCode is the OpenCode framework.
	OpenCode
	// Codex is the Codex framework.
	Codex
	// Kiro is the Kiro framework.
	Kiro
)

// Frameworks returns all supported frameworks in priority order.
func Frameworks() []Framework {
	return []Framework{Claude, OpenCode, Codex, Kiro}
}

// String returns the display name.
func (f Framework) String() string {
	switch f {
	case Claude:
		return "Claude"
	case OpenCode:
		return "OpenCode"
	case Codex:
		return "Codex"
	case Kiro:
		return "Kiro"
	}
	return "Unknown"
}

// ProjectSkillsDir returns the project-relative skill install directory.
func (f Framework) ProjectSkillsDir() string {
	switch f {
	case Claude:
		return ".claude/skills"
	case OpenCode:
		return ".opencode/skills"
	case Codex:
		return ".agents/skills"
	case Kiro:
		return ".kiro/skills"
	}
	return ""
}

// GlobalSkillsDir returns the skill install directory under home.
func (f Framework) GlobalSkillsDir(home string) string {
	switch f {
	case Claude:
		return filepath.Join(home, ".claude", "skills")
	case OpenCode:
		return filepath.Join(home, ".config", "opencode", "skills")
	case Codex:
		return filepath.Join(home, ".codex", "skills")
	case Kiro:
		return filepath.Join(home, ".kiro", "skills")
	}
	return ""
}

// projectDirMarkers are directories whose presence marks a project as
// configured for the framework.
func (f Framework) projectDirMarkers() []string {
	switch f {
	case Claude:
		return []string{".claude"}
	case OpenCode:
		return []string{".opencode"}
	case Codex:
		return []string{".codex"}
	case Kiro:
		return []string{".kiro"}
	}
	return nil
}

// projectFileMarkers are files whose presence marks a project as
// configured for the framework.
func (f Framework) projectFileMarkers() []string {
	switch f {
	case Claude:
		return []string{"CLAUDE.md"}
	case OpenCode:
		return []string{"opencode.json"}
	case Codex:
		return []string{"AGENTS.md"}
	case Kiro:
		return nil
	}
	return nil
}

// globalDirMarkers are home-relative directories marking a framework as
// configured globally.
func (f Framework) globalDirMarkers() []string {
	switch f {
	case Claude:
		return []string{".claude"}
	case OpenCode:
		return []string{filepath.Join(".config", "opencode")}
	case Codex:
		return []string{".codex"}
	case Kiro:
		return []string{".kiro"}
	}
	return nil
}

// targetKind discriminates Target values.
type targetKind int

const (
	targetAuto targetKind = iota
	targetAll
	targetSpecific
)

// Target selects which frameworks an install addresses.
type Target struct {
	kind      targetKind
	framework Framework
}

// TargetAuto selects whatever frameworks detection finds.
func TargetAuto() Target { return Target{kind: targetAuto} }

// TargetAll selects every supported framework.
func TargetAll() Target { return Target{kind: targetAll} }

// TargetFor selects a single framework.
func TargetFor(f Framework) Target { return Target{kind: targetSpecific, framework: f} }

// ParseTarget parses an agent flag value. Empty means auto-detect.
func ParseTarget(value string) (Target, error) {
	switch value {
	case "":
		return TargetAuto(), nil
	case "claude":
		return TargetFor(Claude), nil
	case "opencode":
		return TargetFor(OpenCode), nil
	case "codex":
		return TargetFor(Codex), nil
	case "kiro":
		return TargetFor(Kiro), nil
	case "all":
		return TargetAll(), nil
	}
	return Target{}, fmt.Errorf("unknown agent %q: valid options are claude, opencode, codex, kiro, all", value)
}

// DetectProject returns the frameworks configured in a project root,
// defaulting to Claude when none are detected.
func DetectProject(projectRoot string) []Framework {
	var found []Framework
	for _, f := range Frameworks() {
		if hasMarker(projectRoot, f.projectDirMarkers(), true) ||
			hasMarker(projectRoot, f.projectFileMarkers(), false) {
			found = append(found, f)
		}
	}
	if len(found) == 0 {
		found = []Framework{Claude}
	}
	return found
}

// DetectGlobal returns the frameworks configured under home, defaulting
// to Claude when none are detected.
func DetectGlobal(home string) []Framework {
	var found []Framework
	for _, f := range Frameworks() {
		if hasMarker(home, f.globalDirMarkers(), true) {
			found = append(found, f)
		}
	}
	if len(found) == 0 {
		found = []Framework{Claude}
	}
	return found
}

// hasMarker reports whether any marker exists under root. dirOnly
// requires the marker to be a directory.
func hasMarker(root string, markers []string, dirOnly bool) bool {
	for _, m := range markers {
		info, err := os.Stat(filepath.Join(root, m))
		if err != nil {
			continue
		}
		if !dirOnly || info.IsDir() {
			return true
		}
	}
	return false
}

// ResolveInstallDirs returns the directories a skill installs into.
//
// Priority: an explicit directory overrides everything; a specific
// target maps to that framework's directory; all maps to every
// framework; auto detects frameworks in the project root (or home when
// global).
func ResolveInstallDirs(target Target, explicitDir string, global bool, projectRoot, home string) []string {
	if explicitDir != "" {
		return []string{explicitDir}
	}

	dirFor := func(f Framework) string {
		if global {
			return f.GlobalSkillsDir(home)
		}
		return filepath.Join(projectRoot, f.ProjectSkillsDir())
	}

	switch target.kind {
	case targetSpecific:
		return []string{dirFor(target.framework)}
	case targetAll:
		dirs := make([]string, 0, len(Frameworks()))
		for _, f := range Frameworks() {
			dirs = append(dirs, dirFor(f))
		}
		return dirs
	case targetAuto:
	}

	var frameworks []Framework
	if global {
		frameworks = DetectGlobal(home)
	} else {
		frameworks = DetectProject(projectRoot)
	}

	dirs := make([]string, 0, len(frameworks))
	for _, f := range frameworks {
		dirs = append(dirs, dirFor(f))
	}
	return dirs
}
