// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/bearerchallenge/pkg/bearer"
	"github.com/stacklok/bearerchallenge/pkg/config"
	apperrors "github.com/stacklok/bearerchallenge/pkg/errors"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Realm:         "api",
		TokenEndpoint: "https://auth.example.com/token",
		GrantTypes:    []string{"authorization_code", "client_credentials"},
		StaticTokens:  []string{"s3cret"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func get(t *testing.T, srv *httptest.Server, path, authorization string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func TestNewRouter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewRouter(newTestConfig(), prometheus.NewRegistry()))
	t.Cleanup(srv.Close)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantChallenge string
	}{
		{
			name:          "no credentials",
			wantStatus:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="api"`,
		},
		{
			name:          "unknown token",
			authorization: "Bearer other",
			wantStatus:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="api", error="invalid_token", message="Bearer token not recognized."`,
		},
		{
			name:          "known token",
			authorization: "Bearer s3cret",
			wantStatus:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := get(t, srv, config.DefaultProtectedPath, tt.authorization)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantChallenge, res.Header.Get(bearer.HeaderWWWAuthenticate))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t,
					`<https://auth.example.com/token>; rel="oauth2-token"; grant-types="authorization_code,client_credentials"; token-types="bearer"`,
					res.Header.Get(bearer.HeaderLink))
			}
		})
	}
}

func TestNewRouter_MetricsAndHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewRouter(newTestConfig(), prometheus.NewRegistry()))
	t.Cleanup(srv.Close)

	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz", "").StatusCode)
	require.Equal(t, http.StatusUnauthorized, get(t, srv, config.DefaultProtectedPath, "").StatusCode)

	res := get(t, srv, config.DefaultMetricsPath, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bearer_challenges_total{kind="authorization_required",status="401"} 1`)
}

func TestStaticTokenChecker(t *testing.T) {
	t.Parallel()

	checker := staticTokenChecker([]string{"a", "b"})
	assert.NoError(t, checker.CheckToken(t.Context(), "b"))
	assert.ErrorIs(t, checker.CheckToken(t.Context(), "c"), errTokenNotRecognized)
	assert.Error(t, staticTokenChecker(nil).CheckToken(t.Context(), ""))
}

func TestServe_ListenFailureIsInternal(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	server := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = serve(t.Context(), server)

	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	assert.Contains(t, err.Error(), ln.Addr().String())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, server) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}
