// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package bearer builds RFC 6750 error responses for OAuth2 Bearer-token
// protected resources.
//
// A [Responder] is created once with the grant types supported by the token
// endpoint. Each failure operation sets the WWW-Authenticate and Link headers
// on a [Response] and then hands the [AuthError] to the response for
// transmission:
//
//	r := bearer.New([]string{"client_credentials"})
//	r.TokenInvalid(bearer.NewHTTPResponse(w), bearer.EndpointOptions{
//		Realm:    "api",
//		Endpoint: "https://auth.example.com/token",
//	})
//
// Per RFC 6750 §3.1, [Responder.AuthorizationRequired] never discloses an
// error code or message; the other operations do.
package bearer
