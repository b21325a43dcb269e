// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bearer

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stacklok/bearerchallenge/pkg/logger"
)

// ErrorBody is the JSON body written by the HTTP response adapter.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPResponse adapts an http.ResponseWriter to Response.
type HTTPResponse struct {
	w http.ResponseWriter
}

// NewHTTPResponse wraps w.
func NewHTTPResponse(w http.ResponseWriter) *HTTPResponse {
	return &HTTPResponse{w: w}
}

// Header sets a header on the underlying writer.
func (h *HTTPResponse) Header(name, value string) {
	h.w.Header().Set(name, value)
}

// Send writes err as a JSON body with err.StatusCode. Status codes outside
// 100-999 are sent as 500. Calling Send twice behaves like calling
// WriteHeader and Write twice on the writer.
func (h *HTTPResponse) Send(err *AuthError) {
	status := responseStatus(err.StatusCode)

	h.w.Header().Set("Content-Type", "application/json")
	h.w.WriteHeader(status)

	body := ErrorBody{
		Code:    statusCode(status),
		Message: err.Message,
	}
	enc := json.NewEncoder(h.w)
	enc.SetEscapeHTML(false)
	if encErr := enc.Encode(body); encErr != nil {
		logger.Warnw("failed to write bearer error body", "error", encErr)
	}
}

// responseStatus returns status if net/http accepts it, 500 otherwise.
func responseStatus(status int) int {
	if status < 100 || status > 999 {
		return http.StatusInternalServerError
	}
	return status
}

// statusCode turns a status into its text without spaces, e.g. "BadRequest".
func statusCode(status int) string {
	return strings.ReplaceAll(http.StatusText(status), " ", "")
}
