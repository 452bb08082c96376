package config

import "time"

// Config describes how to reach one JIRA server.
type Config struct {
	ServerURL     string        `yaml:"serverURL"`               // e.g. https://jira.example.com
	APIVersion    string        `yaml:"apiVersion,omitempty"`    // REST API version; "latest" when empty
	Auth          AuthConfig    `yaml:"auth"`                    // credentials
	SkipTLSVerify *bool         `yaml:"skipTLSVerify,omitempty"` // defaults to false
	Timeout       time.Duration `yaml:"timeout,omitempty"`       // per request; client default when zero
	UserAgent     string        `yaml:"userAgent,omitempty"`
}

// AuthConfig holds at most one authentication method.
type AuthConfig struct {
	Basic  *BasicAuth  `yaml:"basic,omitempty"`
	Bearer *BearerAuth `yaml:"bearer,omitempty"`
}

// BasicAuth is HTTP Basic authentication. Values may be resolver references such as "env:JIRA_PASSWORD".
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// BearerAuth is a personal access token. The token may be a resolver reference.
type BearerAuth struct {
	Token string `yaml:"token"`
}
