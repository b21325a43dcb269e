// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bearer

import (
	"fmt"
	"net/http"
)

// AuthError is an authentication or authorization failure that is sent to the
// client as the response status and body.
type AuthError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the human-readable description sent in the body and, when
	// disclosed, in the WWW-Authenticate header.
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// NewUnauthorizedError returns a 401 AuthError carrying message.
func NewUnauthorizedError(message string) *AuthError {
	return &AuthError{StatusCode: http.StatusUnauthorized, Message: message}
}

// NewBadRequestError returns a 400 AuthError carrying message.
func NewBadRequestError(message string) *AuthError {
	return &AuthError{StatusCode: http.StatusBadRequest, Message: message}
}

// ErrorCode is the value of the RFC 6750 error attribute.
type ErrorCode int

const (
	// ErrorCodeBadRequest is disclosed for 400 responses.
	ErrorCodeBadRequest ErrorCode = iota + 1
	// ErrorCodeInvalidToken is disclosed for 401 responses.
	ErrorCodeInvalidToken
)

// String returns the wire form of the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeBadRequest:
		return "BadRequest"
	case ErrorCodeInvalidToken:
		return "invalid_token"
	default:
		return ""
	}
}

// ErrorCodeForStatus maps an HTTP status code to the error code disclosed in
// the WWW-Authenticate header. The boolean is false for every status without
// a mapping; callers must then send no authentication headers at all.
func ErrorCodeForStatus(status int) (ErrorCode, bool) {
	switch status {
	case http.StatusBadRequest:
		return ErrorCodeBadRequest, true
	case http.StatusUnauthorized:
		return ErrorCodeInvalidToken, true
	default:
		return 0, false
	}
}

// Disclosure selects how much detail a challenge carries.
type Disclosure int

const (
	// CredentialsInvalid is used when the client presented (or was expected to
	// present) a bearer token; error code and message are disclosed.
	CredentialsInvalid Disclosure = iota
	// CredentialsAbsent is used when the request carried no authentication
	// information. RFC 6750 §3.1 forbids error detail in that case.
	CredentialsAbsent
)

// String returns a label for logs and metrics.
func (d Disclosure) String() string {
	if d == CredentialsAbsent {
		return "credentials_absent"
	}
	return "credentials_invalid"
}
