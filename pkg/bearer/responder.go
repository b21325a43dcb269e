// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bearer

import (
	"log/slog"
	"strings"

	"github.com/stacklok/bearerchallenge/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_response.go -package=mocks -source=responder.go Response

// Response is the outgoing HTTP response a challenge is written to.
type Response interface {
	// Header sets or overwrites a response header.
	Header(name, value string)
	// Send finalizes and transmits the response. Status and body derive from err.
	Send(err *AuthError)
}

// EndpointOptions describe the protected resource's authentication context.
type EndpointOptions struct {
	// Realm identifies the protection space.
	Realm string
	// Endpoint is the URI of the OAuth2 token endpoint.
	Endpoint string
}

// Default messages of the named failure operations.
const (
	DefaultTokenRequiredMessage         = "Bearer token required."
	DefaultAuthorizationRequiredMessage = "Authorization via bearer token required."
	DefaultTokenInvalidMessage          = "Bearer token invalid."
)

// Challenge kinds, used as log and metric labels.
const (
	KindTokenRequired         = "token_required"
	KindAuthorizationRequired = "authorization_required"
	KindTokenInvalid          = "token_invalid"
	KindGeneric               = "generic"
)

// MessageOption overrides the default message of a failure operation.
type MessageOption func(*string)

// WithMessage replaces the operation's default message with msg. An empty msg
// is sent as an empty message.
func WithMessage(msg string) MessageOption {
	return func(m *string) {
		*m = msg
	}
}

func resolveMessage(def string, opts []MessageOption) string {
	msg := def
	for _, opt := range opts {
		opt(&msg)
	}
	return msg
}

// Option configures a Responder.
type Option func(*Responder)

// WithLogger sets the logger used for challenge debug logs.
func WithLogger(l *slog.Logger) Option {
	return func(r *Responder) {
		r.logger = l
	}
}

// WithMetrics records every challenge in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Responder) {
		r.metrics = m
	}
}

// Responder writes RFC 6750 error responses. It holds no mutable state and is
// safe for concurrent use.
type Responder struct {
	grantTypes string
	logger     *slog.Logger
	metrics    *Metrics
}

// New creates a Responder advertising grantTypes in every Link header. The
// grant types are joined with "," and not escaped; a single pre-formatted
// element is rendered as-is.
func New(grantTypes []string, opts ...Option) *Responder {
	r := &Responder{
		grantTypes: strings.Join(grantTypes, grantTypesSeparator),
		logger:     logger.ForComponent("bearer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GrantTypes returns the grant-types attribute rendered into Link headers.
func (r *Responder) GrantTypes() string {
	return r.grantTypes
}

// TokenRequired responds 401 when a bearer token was required but not
// supplied. The error code and message are disclosed.
//
// This discloses invalid_token although no token was presented, which RFC
// 6750 §3.1 reserves for AuthorizationRequired. Both paths are kept as-is.
func (r *Responder) TokenRequired(res Response, opts EndpointOptions, msg ...MessageOption) {
	err := NewUnauthorizedError(resolveMessage(DefaultTokenRequiredMessage, msg))
	r.send(res, opts, err, CredentialsInvalid, KindTokenRequired)
}

// AuthorizationRequired responds 401 when the request carried no
// authentication information at all. The challenge names only the realm.
func (r *Responder) AuthorizationRequired(res Response, opts EndpointOptions, msg ...MessageOption) {
	err := NewUnauthorizedError(resolveMessage(DefaultAuthorizationRequiredMessage, msg))
	r.send(res, opts, err, CredentialsAbsent, KindAuthorizationRequired)
}

// TokenInvalid responds 401 when the presented bearer token is malformed,
// expired or otherwise invalid. The error code and message are disclosed.
func (r *Responder) TokenInvalid(res Response, opts EndpointOptions, msg ...MessageOption) {
	err := NewUnauthorizedError(resolveMessage(DefaultTokenInvalidMessage, msg))
	r.send(res, opts, err, CredentialsInvalid, KindTokenInvalid)
}

// SendWithHeaders sends err through res. When err.StatusCode has an RFC 6750
// error code, the Link header and a detailed WWW-Authenticate header are set
// first; otherwise no authentication headers are set.
func (r *Responder) SendWithHeaders(res Response, opts EndpointOptions, err *AuthError) {
	r.send(res, opts, err, CredentialsInvalid, KindGeneric)
}

func (r *Responder) send(res Response, opts EndpointOptions, err *AuthError, d Disclosure, kind string) {
	disclosed := false
	switch code, mapped := ErrorCodeForStatus(err.StatusCode); {
	case d == CredentialsAbsent:
		res.Header(HeaderLink, buildLink(opts.Endpoint, r.grantTypes))
		res.Header(HeaderWWWAuthenticate, buildBareChallenge(opts.Realm))
	case mapped:
		res.Header(HeaderLink, buildLink(opts.Endpoint, r.grantTypes))
		res.Header(HeaderWWWAuthenticate, buildChallenge(opts.Realm, code, err.Message))
		disclosed = true
	}

	r.logger.Debug("sending bearer challenge",
		"kind", kind,
		"status", err.StatusCode,
		"realm", opts.Realm,
		"disclosure", d.String(),
		"disclosed", disclosed,
	)
	r.metrics.observe(kind, err.StatusCode)

	res.Send(err)
}
