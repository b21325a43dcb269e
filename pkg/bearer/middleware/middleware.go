// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package middleware provides HTTP middleware that answers unauthenticated
// requests with RFC 6750 bearer challenges.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stacklok/bearerchallenge/pkg/bearer"
)

// TokenChecker decides whether a bearer token is acceptable. A non-nil error
// is reported to the client as an invalid token with the error text as the
// message.
type TokenChecker interface {
	CheckToken(ctx context.Context, token string) error
}

// TokenCheckerFunc adapts a function to TokenChecker.
type TokenCheckerFunc func(ctx context.Context, token string) error

// CheckToken calls f.
func (f TokenCheckerFunc) CheckToken(ctx context.Context, token string) error {
	return f(ctx, token)
}

// TokenContextKey is the key used to store the accepted token in the request context.
type TokenContextKey struct{}

// TokenFromContext returns the bearer token accepted by RequireBearer.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey{}).(string)
	return token, ok
}

const bearerScheme = "bearer"

// RequireBearer creates a middleware that only lets requests with an accepted
// bearer token through. Requests without an Authorization header, or with a
// different scheme, get a challenge that discloses no error detail.
func RequireBearer(
	responder *bearer.Responder, opts bearer.EndpointOptions, checker TokenChecker,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := bearer.NewHTTPResponse(w)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				responder.AuthorizationRequired(res, opts)
				return
			}
			if token == "" {
				responder.TokenRequired(res, opts)
				return
			}

			if err := checker.CheckToken(r.Context(), token); err != nil {
				responder.TokenInvalid(res, opts, bearer.WithMessage(err.Error()))
				return
			}

			ctx := context.WithValue(r.Context(), TokenContextKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential of a Bearer Authorization header. The
// boolean is false when the header is empty or uses another scheme.
func bearerToken(header string) (string, bool) {
	scheme, credential, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	return strings.TrimSpace(credential), true
}
