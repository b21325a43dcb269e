// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/bearerchallenge/pkg/bearer"
	bearermw "github.com/stacklok/bearerchallenge/pkg/bearer/middleware"
	"github.com/stacklok/bearerchallenge/pkg/config"
	apperrors "github.com/stacklok/bearerchallenge/pkg/errors"
	"github.com/stacklok/bearerchallenge/pkg/logger"
)

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 10 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 15 * time.Second // must exceed serverRequestTimeout
	serverIdleTimeout      = 60 * time.Second
)

// errTokenNotRecognized is reported to clients presenting an unknown token.
var errTokenNotRecognized = errors.New("Bearer token not recognized.") //nolint:staticcheck // sent verbatim to clients

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo resource server",
		Long: `Start the demo resource server.

The protected path only accepts the static tokens listed in the configuration
file. Every other request is answered with an RFC 6750 challenge.`,
		RunE: runServe,
	}

	// An empty default keeps the config file value unless the flag is given.
	serveCmd.Flags().String("address", "", "Address to listen on (overrides the config file)")
	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		logger.Errorf("Error binding address flag: %v", err)
	}

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      NewRouter(cfg, prometheus.NewRegistry()),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	logger.Infow("Server listening",
		"address", cfg.Address,
		"protected_path", cfg.ProtectedPath,
		"metrics_path", cfg.MetricsPath,
	)

	return serve(cmd.Context(), server)
}

// serve runs server until ctx is done, then shuts it down gracefully. Listen
// and shutdown failures are returned as internal errors.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Errorw("Server failed", "address", server.Addr, "error", err)
			return apperrors.NewInternalError("server failed on "+server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Server forced to shutdown", "error", err)
		return apperrors.NewInternalError("graceful shutdown failed", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}

// NewRouter builds the bearerd HTTP handler. Challenge metrics are registered
// on reg and served from cfg.MetricsPath.
func NewRouter(cfg *config.Config, reg *prometheus.Registry) http.Handler {
	responder := bearer.New(cfg.GrantTypes,
		bearer.WithMetrics(bearer.NewMetrics(reg)),
		bearer.WithLogger(logger.ForComponent("bearer")),
	)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(serverRequestTimeout),
		loggingMiddleware,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	checker := staticTokenChecker(cfg.StaticTokens)
	r.With(bearermw.RequireBearer(responder, cfg.EndpointOptions(), checker)).
		Get(cfg.ProtectedPath, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("access granted\n"))
		})

	return r
}

// staticTokenChecker accepts exactly the configured tokens.
func staticTokenChecker(tokens []string) bearermw.TokenChecker {
	return bearermw.TokenCheckerFunc(func(_ context.Context, token string) error {
		for _, t := range tokens {
			if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
				return nil
			}
		}
		return errTokenNotRecognized
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debugw("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
