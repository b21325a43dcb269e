// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger holds the process-wide logger of bearerd and the bearer
// packages.
//
// It wraps toolhive-core/logging. Library code takes a *slog.Logger through
// an option and falls back to [ForComponent]; the package-level helpers are
// meant for the CLI.
package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/spf13/viper"

	"github.com/stacklok/toolhive-core/env"
	"github.com/stacklok/toolhive-core/logging"
)

// UnstructuredLogsEnv selects text output when true or unset, JSON otherwise.
const UnstructuredLogsEnv = "UNSTRUCTURED_LOGS"

var singleton atomic.Pointer[slog.Logger]

func init() {
	singleton.Store(logging.New())
}

// Get returns the current logger.
func Get() *slog.Logger {
	return singleton.Load()
}

// Set replaces the logger. Tests use it to capture output.
func Set(l *slog.Logger) {
	singleton.Store(l)
}

// ForComponent returns the current logger tagged with a component attribute.
func ForComponent(name string) *slog.Logger {
	return Get().With("component", name)
}

// Debugw logs at debug level with key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	Get().Debug(msg, keysAndValues...)
}

// Info logs at info level.
func Info(msg string) {
	Get().Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(msg string, args ...any) {
	Get().Info(fmt.Sprintf(msg, args...))
}

// Infow logs at info level with key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	Get().Info(msg, keysAndValues...)
}

// Warnw logs at warning level with key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	Get().Warn(msg, keysAndValues...)
}

// Errorf logs a formatted message at error level.
func Errorf(msg string, args ...any) {
	Get().Error(fmt.Sprintf(msg, args...))
}

// Errorw logs at error level with key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	Get().Error(msg, keysAndValues...)
}

// Initialize configures the logger from the environment and the viper
// "debug" key.
func Initialize() {
	InitializeWithEnv(&env.OSReader{})
}

// InitializeWithEnv is Initialize with an injectable environment reader.
func InitializeWithEnv(envReader env.Reader) {
	var opts []logging.Option

	if unstructuredLogsWithEnv(envReader) {
		opts = append(opts, logging.WithFormat(logging.FormatText))
	}

	if viper.GetBool("debug") {
		opts = append(opts, logging.WithLevel(slog.LevelDebug))
	}

	singleton.Store(logging.New(opts...))
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	unstructured, err := strconv.ParseBool(envReader.Getenv(UnstructuredLogsEnv))
	if err != nil {
		// unset or empty
		return true
	}
	return unstructured
}
