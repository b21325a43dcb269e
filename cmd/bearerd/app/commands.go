// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the bearerd command-line application.
package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/bearerchallenge/pkg/config"
	"github.com/stacklok/bearerchallenge/pkg/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// NewRootCmd creates the root command of the bearerd CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "bearerd",
		DisableAutoGenTag: true,
		Short:             "Demo resource server answering with RFC 6750 bearer challenges",
		Long: `bearerd serves a protected path behind bearer-token authentication.

Requests without a valid token get a 401 response carrying a WWW-Authenticate
challenge and a Link header that advertises the OAuth2 token endpoint and the
grant types it supports.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Initialize()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the bearerd configuration file")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		logger.Errorf("Error binding config flag: %v", err)
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("bearerd version: %s\n", version)
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cmd.Printf("Configuration is valid (realm %q, token endpoint %s, grant types %v)\n",
				cfg.Realm, cfg.TokenEndpoint, cfg.GrantTypes)
			return nil
		},
	}
}

// loadConfig loads the file named by --config, applies flag overrides and
// validates the result.
func loadConfig() (*config.Config, error) {
	configPath := viper.GetString("config")
	if configPath == "" {
		return nil, fmt.Errorf("no configuration file specified, use --config flag")
	}

	logger.Infof("Loading configuration from: %s", configPath)
	cfg, err := config.NewYAMLLoader(configPath).Load()
	if err != nil {
		return nil, fmt.Errorf("configuration loading failed: %w", err)
	}

	if address := viper.GetString("address"); address != "" {
		cfg.Address = address
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}
