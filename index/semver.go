// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"strconv"
	"strings"
)

// CompareVersions compares two version strings as major.minor.patch
// numeric tuples, returning -1, 0, or 1. Missing components default to
// zero and non-numeric components parse as zero; pre-release and build
// suffixes are deliberately ignored. A leading "v" is stripped.
func CompareVersions(a, b string) int {
	pa := parseVersion(a)
	pb := parseVersion(b)

	for i := 0; i < 3; i++ {
		switch {
		case pa[i] < pb[i]:
			return -1
		case pa[i] > pb[i]:
			return 1
		}
	}
	return 0
}

func parseVersion(v string) [3]uint64 {
	var parts [3]uint64
	for i, p := range strings.Split(strings.TrimPrefix(v, "v"), ".") {
		if i >= len(parts) {
			break
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			continue
		}
		parts[i] = n
	}
	return parts
}
