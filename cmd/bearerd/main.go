// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for bearerd, a demo server that answers
// unauthenticated requests with RFC 6750 bearer challenges.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/stacklok/bearerchallenge/cmd/bearerd/app"
	apperrors "github.com/stacklok/bearerchallenge/pkg/errors"
	"github.com/stacklok/bearerchallenge/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.NewRootCmd().ExecuteContext(ctx); err != nil {
		if apperrors.IsInternal(err) {
			logger.Errorw("bearerd stopped on an internal error", "error", err)
		} else {
			logger.Errorf("Error executing command: %v", err)
		}
		os.Exit(1)
	}
}
