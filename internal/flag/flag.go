package flag

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/containeroo/tinyflags"
	"github.com/gi8lino/jirarest/internal/logging"
)

// Output formats for fetched entities.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config aggregates CLI flags after parsing.
type Config struct {
	ConfigFile    string            // Optional YAML connection file
	ServerURL     string            // JIRA server URL (overrides file)
	APIVersion    string            // REST API version (overrides file)
	Username      string            // Basic auth username
	Password      string            // Basic auth password
	BearerToken   string            // Personal access token
	SkipTLSVerify bool              // Disable TLS verification
	Timeout       time.Duration     // Per-request timeout; zero keeps file/client default
	Issue         string            // Issue key to fetch
	IssueType     string            // Issue type id to fetch
	Resolve       bool              // Follow parent and issue type links
	Output        string            // text or json
	Template      string            // Path to a text template for text output
	Debug         bool              // Enables debug logging
	LogFormat     logging.LogFormat // Log output format (text or json)
}

// ParseArgs parses CLI arguments into Config, handling version/help flags.
func ParseArgs(version string, args []string, out io.Writer, getEnv func(string) string) (Config, error) {
	var cfg Config
	tf := tinyflags.NewFlagSet("jirarest", tinyflags.ContinueOnError)
	tf.Version(version)
	tf.SetGetEnvFn(getEnv)
	tf.EnvPrefix("JIRAREST")
	tf.SetOutput(out)

	// Connection
	tf.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML connection file").
		Placeholder("FILE").
		Value()
	tf.StringVar(&cfg.ServerURL, "server-url", "", "JIRA server URL, e.g. https://jira.example.com").
		Finalize(func(s string) string { return strings.TrimRight(strings.TrimSpace(s), "/") }).
		Placeholder("URL").
		Value()
	tf.StringVar(&cfg.APIVersion, "api-version", "", `REST API version (default "latest")`).
		Placeholder("VERSION").
		Value()
	tf.StringVar(&cfg.Username, "username", "", "Username for basic auth").Short("u").Value()
	tf.StringVar(&cfg.Password, "password", "", "Password or API token for basic auth").Value()
	tf.StringVar(&cfg.BearerToken, "bearer-token", "", "Bearer token (takes precedence over basic auth)").Value()
	tf.BoolVar(&cfg.SkipTLSVerify, "skip-tls-verify", false, "Skip TLS certificate verification").Value()
	tf.DurationVar(&cfg.Timeout, "timeout", 0, "Per-request timeout, e.g. 10s").
		Validate(func(d time.Duration) error {
			if d <= 0 {
				return errors.New("timeout must be > 0")
			}
			return nil
		}).
		Placeholder("DURATION").
		Value()

	// What to fetch
	tf.StringVar(&cfg.Issue, "issue", "", "Issue key to fetch, e.g. JRA-9").Short("i").Value()
	tf.StringVar(&cfg.IssueType, "issue-type", "", "Issue type id to fetch").Value()
	tf.BoolVar(&cfg.Resolve, "resolve", false, "Also fetch the parent issue and the issue type").Value()

	// Output
	output := tf.String("output", OutputText, "Output format").Choices(OutputText, OutputJSON).Short("o").Value()
	tf.StringVar(&cfg.Template, "template", "", "Text template file for text output").
		Finalize(func(s string) string {
			if s == "" || filepath.IsAbs(s) {
				return s
			}
			path, _ := filepath.Abs(s)
			return path
		}).
		Placeholder("FILE").
		Value()

	// Logging
	tf.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging").Value()
	logFormat := tf.String("log-format", "text", "Log format").Choices("text", "json").Short("l").Value()

	// Parse
	if err := tf.Parse(args); err != nil {
		return Config{}, err
	}

	// Post-parse
	cfg.Output = *output
	cfg.LogFormat = logging.LogFormat(*logFormat)

	switch {
	case cfg.Issue == "" && cfg.IssueType == "":
		return Config{}, errors.New("one of --issue or --issue-type is required")
	case cfg.Issue != "" && cfg.IssueType != "":
		return Config{}, errors.New("--issue and --issue-type are mutually exclusive")
	}
	if cfg.ConfigFile == "" && cfg.ServerURL == "" {
		return Config{}, errors.New("either --config or --server-url is required")
	}

	return cfg, nil
}
