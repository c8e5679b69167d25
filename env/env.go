// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

// Package env abstracts environment variable access so that components
// reading the environment can be tested without mutating the process.
package env

import "os"

// Reader defines an interface for environment variable access.
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package.
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key.
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// MapReader implements Reader over a fixed map, for tests.
type MapReader map[string]string

// Getenv returns the mapped value, or the empty string when absent.
func (m MapReader) Getenv(key string) string {
	return m[key]
}
