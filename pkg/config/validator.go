// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/stacklok/bearerchallenge/pkg/errors"
)

// Validator checks a Config. Realm, endpoint and grant types end up unescaped
// inside quoted header attributes, so none of them may contain a double quote.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports every problem found in cfg as a single invalid config error.
func (*Validator) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.NewInvalidConfigError("configuration is nil", nil)
	}

	var problems []string

	if cfg.Realm == "" {
		problems = append(problems, "realm is required")
	} else if strings.Contains(cfg.Realm, `"`) {
		problems = append(problems, "realm must not contain double quotes")
	}

	if err := validateTokenEndpoint(cfg.TokenEndpoint); err != nil {
		problems = append(problems, err.Error())
	}

	if len(cfg.GrantTypes) == 0 {
		problems = append(problems, "at least one grant type is required")
	}
	for i, gt := range cfg.GrantTypes {
		switch {
		case strings.TrimSpace(gt) == "":
			problems = append(problems, fmt.Sprintf("grantTypes[%d] is empty", i))
		case strings.Contains(gt, `"`):
			problems = append(problems, fmt.Sprintf("grantTypes[%d] must not contain double quotes", i))
		}
	}

	if cfg.Address == "" {
		problems = append(problems, "address is required")
	}
	if !strings.HasPrefix(cfg.ProtectedPath, "/") {
		problems = append(problems, "protectedPath must start with /")
	}
	if !strings.HasPrefix(cfg.MetricsPath, "/") {
		problems = append(problems, "metricsPath must start with /")
	}
	if cfg.ProtectedPath != "" && cfg.ProtectedPath == cfg.MetricsPath {
		problems = append(problems, "protectedPath and metricsPath must differ")
	}

	if len(problems) > 0 {
		return errors.NewInvalidConfigError(strings.Join(problems, "; "), nil)
	}
	return nil
}

func validateTokenEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("tokenEndpoint is required")
	}
	if strings.ContainsAny(endpoint, `"<>`) {
		return fmt.Errorf("tokenEndpoint must not contain '\"', '<' or '>'")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("tokenEndpoint is not a valid URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("tokenEndpoint must be an absolute URL")
	}
	return nil
}
