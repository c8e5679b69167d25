// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDir is the subdirectory used under the XDG base directories.
const appDir = "skillvault"

// GlobalConfigDir returns the directory holding the global config file.
func GlobalConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDir)
}

// GlobalConfigPath returns the global config file path.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "skills.json")
}

// DefaultLocalRepoPath returns the default root of the local repository.
func DefaultLocalRepoPath() string {
	return filepath.Join(GlobalConfigDir(), "local")
}

// DefaultCacheDir returns the default root of the download cache.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, appDir)
}
