// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates the bearerd configuration file.
package config

import "github.com/stacklok/bearerchallenge/pkg/bearer"

// Defaults applied to fields left empty in the file.
const (
	DefaultAddress       = ":8080"
	DefaultProtectedPath = "/protected"
	DefaultMetricsPath   = "/metrics"
)

// Config is the bearerd configuration.
type Config struct {
	// Realm is the protection space named in every WWW-Authenticate challenge.
	Realm string `yaml:"realm"`

	// TokenEndpoint is the absolute URL of the OAuth2 token endpoint
	// advertised in the Link header.
	TokenEndpoint string `yaml:"tokenEndpoint"`

	// GrantTypes lists the grant types the token endpoint supports.
	GrantTypes []string `yaml:"grantTypes"`

	// Address is the listen address of the demo server.
	Address string `yaml:"address,omitempty"`

	// ProtectedPath is the path served behind the bearer middleware.
	ProtectedPath string `yaml:"protectedPath,omitempty"`

	// MetricsPath is the path of the Prometheus endpoint.
	MetricsPath string `yaml:"metricsPath,omitempty"`

	// StaticTokens are accepted by the demo server. Not meant for production.
	StaticTokens []string `yaml:"staticTokens,omitempty"`
}

// EndpointOptions returns the responder options described by the config.
func (c *Config) EndpointOptions() bearer.EndpointOptions {
	return bearer.EndpointOptions{
		Realm:    c.Realm,
		Endpoint: c.TokenEndpoint,
	}
}

// ApplyDefaults fills empty optional fields.
func (c *Config) ApplyDefaults() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.ProtectedPath == "" {
		c.ProtectedPath = DefaultProtectedPath
	}
	if c.MetricsPath == "" {
		c.MetricsPath = DefaultMetricsPath
	}
}
