// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bearer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResponse_TokenInvalid(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	r := New([]string{"client_credentials"})

	r.TokenInvalid(NewHTTPResponse(rec), EndpointOptions{Realm: "api", Endpoint: "https://auth.example.com/token"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		`Bearer realm="api", error="invalid_token", message="Bearer token invalid."`,
		rec.Header().Get(HeaderWWWAuthenticate))
	assert.Equal(t,
		`<https://auth.example.com/token>; rel="oauth2-token"; grant-types="client_credentials"; token-types="bearer"`,
		rec.Header().Get(HeaderLink))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorBody{Code: "Unauthorized", Message: "Bearer token invalid."}, body)
}

func TestHTTPResponse_SendStatusAndCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		wantCode string
	}{
		{name: "bad request", status: http.StatusBadRequest, wantCode: "BadRequest"},
		{name: "forbidden", status: http.StatusForbidden, wantCode: "Forbidden"},
		{name: "internal", status: http.StatusInternalServerError, wantCode: "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			NewHTTPResponse(rec).Send(&AuthError{StatusCode: tt.status, Message: "m"})

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, "m", body.Message)
		})
	}
}

func TestHTTPResponse_DoubleSend(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	res := NewHTTPResponse(rec)
	r := New(nil)

	r.TokenRequired(res, EndpointOptions{Realm: "api", Endpoint: "e"})
	r.SendWithHeaders(res, EndpointOptions{Realm: "api", Endpoint: "e"}, NewBadRequestError("second"))

	// The first status wins; both bodies reach the writer.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `"message"`))
}

func TestHTTPResponse_OutOfRangeStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{0, -1, 99, 1000} {
		t.Run(http.StatusText(status)+strconv.Itoa(status), func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			r := New([]string{"client_credentials"})

			require.NotPanics(t, func() {
				r.SendWithHeaders(NewHTTPResponse(rec), EndpointOptions{Realm: "api", Endpoint: "e"},
					&AuthError{StatusCode: status, Message: "broken"})
			})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Empty(t, rec.Header().Get(HeaderWWWAuthenticate))
			assert.Empty(t, rec.Header().Get(HeaderLink))

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, ErrorBody{Code: "InternalServerError", Message: "broken"}, body)
		})
	}
}

func TestHTTPResponse_BodyNotHTMLEscaped(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewHTTPResponse(rec).Send(NewUnauthorizedError("token <expired> & revoked"))

	assert.Equal(t,
		`{"code":"Unauthorized","message":"token <expired> & revoked"}`+"\n",
		rec.Body.String())
}
