package utils

import (
	"net/http"
	"strings"

	"github.com/gi8lino/jirarest/jira"
)

// MaskAuthorization returns the Authorization header auth would send, with the
// credential masked except for its first and last two characters.
// Example: "Basic dZ*********X1". Anonymous auth yields "".
func MaskAuthorization(auth jira.AuthFunc) string {
	if auth == nil {
		return ""
	}
	req, _ := http.NewRequest(http.MethodGet, "https://dummy", nil)
	auth(req)
	return ObfuscateHeader(req.Header.Get("Authorization"))
}

// ObfuscateHeader masks the credential of an Authorization header value,
// preserving the scheme and the credential length.
func ObfuscateHeader(header string) string {
	if header == "" {
		return ""
	}

	scheme, cred, ok := strings.Cut(header, " ")
	if !ok {
		return "[invalid header]"
	}
	cred = strings.TrimSpace(cred)

	if n := len(cred); n > 4 {
		return scheme + " " + cred[:2] + strings.Repeat("*", n-4) + cred[n-2:]
	}
	return scheme + " " + strings.Repeat("*", len(cred))
}
