// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bearer

import "strings"

// Header names set by the Responder.
const (
	HeaderWWWAuthenticate = "WWW-Authenticate"
	HeaderLink            = "Link"
)

// grantTypesSeparator joins the configured grant types into the single
// grant-types attribute of the Link header.
const grantTypesSeparator = ","

// buildLink returns the Link header value advertising the token endpoint.
// Values are inserted as-is; callers must not pass embedded double quotes.
func buildLink(endpoint, grantTypes string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(endpoint)
	b.WriteString(`>; rel="oauth2-token"; grant-types="`)
	b.WriteString(grantTypes)
	b.WriteString(`"; token-types="bearer"`)
	return b.String()
}

// buildChallenge returns the detailed WWW-Authenticate value.
func buildChallenge(realm string, code ErrorCode, message string) string {
	return `Bearer realm="` + realm + `", error="` + code.String() + `", message="` + message + `"`
}

// buildBareChallenge returns the WWW-Authenticate value without any error
// information (RFC 6750 §3.1).
func buildBareChallenge(realm string) string {
	return `Bearer realm="` + realm + `"`
}
