package jira

import (
	"errors"
	"net/http"
	"strings"
)

// AuthFunc applies credentials to an outgoing request.
type AuthFunc func(r *http.Request)

// NewBasicAuth returns an AuthFunc using HTTP Basic authentication.
func NewBasicAuth(username, password string) AuthFunc {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	return func(r *http.Request) {
		r.SetBasicAuth(username, password)
	}
}

// NewBearerAuth returns an AuthFunc sending a Bearer token.
func NewBearerAuth(token string) AuthFunc {
	token = strings.TrimSpace(token)
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// noAuth leaves the request anonymous.
func noAuth(*http.Request) {}

// ResolveAuth returns the AuthFunc matching the provided credentials.
// A bearer token takes precedence over username and password.
func ResolveAuth(bearerToken, username, password string) (auth AuthFunc, method string, err error) {
	switch {
	case strings.TrimSpace(bearerToken) != "":
		return NewBearerAuth(bearerToken), "Bearer", nil
	case strings.TrimSpace(username) != "" && password != "":
		return NewBasicAuth(username, password), "Basic", nil
	default:
		return nil, "", errors.New("no valid auth method configured: must provide either bearer token or username+password")
	}
}
