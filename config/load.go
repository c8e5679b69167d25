// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/skills-config.schema.json
var embeddedSchemaFS embed.FS

const schemaFile = "data/skills-config.schema.json"

// Load reads a configuration file, dispatching on extension: .yaml and
// .yml parse as YAML, everything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// LoadDefault loads the explicit path when given, otherwise searches the
// working directory for skills.json, skills.yaml, or skills.yml, and
// finally falls back to the global config path.
func LoadDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	for _, candidate := range []string{"skills.json", "skills.yaml", "skills.yml"} {
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}

	global := GlobalConfigPath()
	if _, err := os.Stat(global); err == nil {
		return Load(global)
	}
	return nil, fmt.Errorf("no config file found: create skills.json or %s", global)
}

// Parse parses and validates a JSON configuration document.
func Parse(data []byte) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config JSON: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ParseYAML parses and validates a YAML configuration document. The
// document is converted to JSON before schema validation so both formats
// face the same schema.
func ParseYAML(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting config YAML: %w", err)
	}
	if err := validateSchema(jsonData); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// validateSchema validates raw JSON config bytes against the embedded
// schema.
func validateSchema(data []byte) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("reading embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("config schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return formatNumberedErrors("config schema validation failed", msgs)
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}
