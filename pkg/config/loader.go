// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/bearerchallenge/pkg/errors"
)

// YAMLLoader reads a Config from a YAML file.
type YAMLLoader struct {
	path string
}

// NewYAMLLoader creates a loader for path.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{path: path}
}

// Load reads and decodes the file and applies defaults. Unknown fields are
// rejected. Validation is left to Validator.
func (l *YAMLLoader) Load() (*Config, error) {
	if l.path == "" {
		return nil, errors.NewInvalidArgumentError("configuration path is empty", nil)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("failed to read configuration file "+l.path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data and applies defaults.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.NewInvalidConfigError("failed to parse configuration", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}
