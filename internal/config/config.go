package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/containeroo/resolver"
	"gopkg.in/yaml.v3"
)

// defaultAPIVersion mirrors the client's default REST API version.
const defaultAPIVersion = "latest"

// LoadConfig reads the connection file at path, resolves secret references and applies defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return Config{}, err
	}
	setDefaults(&cfg)

	return cfg, nil
}

// resolveSecrets expands "env:", "file:" and similar references in place.
func (c *Config) resolveSecrets() error {
	targets := map[string]*string{"serverURL": &c.ServerURL}
	if c.Auth.Basic != nil {
		targets["auth.basic.username"] = &c.Auth.Basic.Username
		targets["auth.basic.password"] = &c.Auth.Basic.Password
	}
	if c.Auth.Bearer != nil {
		targets["auth.bearer.token"] = &c.Auth.Bearer.Token
	}

	for name, dst := range targets {
		v, err := resolver.ResolveVariable(*dst)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", name, err)
		}
		*dst = strings.TrimSpace(v)
	}
	return nil
}

// setDefaults fills in optional fields.
func setDefaults(c *Config) {
	if strings.TrimSpace(c.APIVersion) == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.SkipTLSVerify == nil {
		skip := false
		c.SkipTLSVerify = &skip
	}
}

// ValidateConfig checks the consistency of a connection config.
func ValidateConfig(cfg Config) error {
	var errs []string

	switch server := strings.TrimSpace(cfg.ServerURL); {
	case server == "":
		errs = append(errs, "serverURL is required")
	default:
		u, err := url.Parse(server)
		if err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, fmt.Sprintf("serverURL %q must be an absolute URL", server))
		}
	}

	if cfg.Timeout < 0 {
		errs = append(errs, "timeout must be >= 0")
	}

	a := cfg.Auth
	if a.Basic != nil && a.Bearer != nil {
		errs = append(errs, "auth: only one of basic or bearer may be set")
	}
	if a.Basic != nil && (a.Basic.Username == "" || a.Basic.Password == "") {
		errs = append(errs, "auth.basic: username and password are required")
	}
	if a.Bearer != nil && a.Bearer.Token == "" {
		errs = append(errs, "auth.bearer: token is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Credentials returns bearer token, username and password, empty when unset.
func (c Config) Credentials() (bearer, username, password string) {
	if c.Auth.Bearer != nil {
		bearer = c.Auth.Bearer.Token
	}
	if c.Auth.Basic != nil {
		username, password = c.Auth.Basic.Username, c.Auth.Basic.Password
	}
	return bearer, username, password
}
