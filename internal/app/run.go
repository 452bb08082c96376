package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/containeroo/tinyflags"
	"github.com/gi8lino/jirarest/internal/config"
	"github.com/gi8lino/jirarest/internal/flag"
	"github.com/gi8lino/jirarest/internal/logging"
	"github.com/gi8lino/jirarest/internal/render"
	"github.com/gi8lino/jirarest/internal/utils"
	"github.com/gi8lino/jirarest/jira"
)

// Run fetches one issue or issue type and prints it.
func Run(ctx context.Context, version, commit string, args []string, stdout, stderr io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, args, stdout, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(stdout, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, stderr)
	logger.Debug("Starting jirarest", "version", version, "commit", commit)

	// Load and merge connection settings
	cfg, err := loadSettings(flags)
	if err != nil {
		return err
	}

	// Setup jira client
	var auth jira.AuthFunc
	method := "None"
	if bearer, user, pass := cfg.Credentials(); bearer != "" || user != "" || pass != "" {
		if auth, method, err = jira.ResolveAuth(bearer, user, pass); err != nil {
			return err
		}
	}
	logger.Debug("jira auth",
		"method", method,
		"header", utils.MaskAuthorization(auth),
	)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "jirarest/" + version
	}
	client, err := jira.NewClient(cfg.ServerURL, auth,
		jira.WithAPIVersion(cfg.APIVersion),
		jira.WithTimeout(cfg.Timeout),
		jira.WithSkipTLSVerify(*cfg.SkipTLSVerify),
		jira.WithUserAgent(userAgent),
		jira.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("jira client error: %w", err)
	}

	view, err := fetch(ctx, client, flags)
	if err != nil {
		return err
	}

	if flags.Output == flag.OutputJSON {
		return render.JSON(stdout, view)
	}
	tmpl, err := render.NewTemplate(flags.Template)
	if err != nil {
		return err
	}
	return render.Text(stdout, tmpl, view)
}

// loadSettings reads the optional config file and lets flags override it.
func loadSettings(flags flag.Config) (config.Config, error) {
	var cfg config.Config
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = config.LoadConfig(flags.ConfigFile); err != nil {
			return config.Config{}, fmt.Errorf("loading config error: %w", err)
		}
	}

	if flags.ServerURL != "" {
		cfg.ServerURL = flags.ServerURL
	}
	if flags.APIVersion != "" {
		cfg.APIVersion = flags.APIVersion
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	if flags.SkipTLSVerify || cfg.SkipTLSVerify == nil {
		skip := flags.SkipTLSVerify
		cfg.SkipTLSVerify = &skip
	}

	// credentials given on the command line replace those from the file
	switch {
	case flags.BearerToken != "":
		cfg.Auth = config.AuthConfig{Bearer: &config.BearerAuth{Token: flags.BearerToken}}
	case flags.Username != "" || flags.Password != "":
		cfg.Auth = config.AuthConfig{Basic: &config.BasicAuth{Username: flags.Username, Password: flags.Password}}
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return config.Config{}, fmt.Errorf("validating config error: %w", err)
	}
	return cfg, nil
}

// fetch loads the requested entity and snapshots it for rendering.
func fetch(ctx context.Context, client *jira.Client, flags flag.Config) (render.View, error) {
	if flags.IssueType != "" {
		it, err := client.GetIssueType(ctx, flags.IssueType)
		if err != nil {
			return render.View{}, err
		}
		data, err := render.NewIssueTypeData(it)
		if err != nil {
			return render.View{}, fmt.Errorf("issue type %s: %w", flags.IssueType, err)
		}
		return render.View{IssueType: data}, nil
	}

	issue, err := client.GetIssue(ctx, flags.Issue)
	if err != nil {
		return render.View{}, err
	}
	data, err := render.NewIssueData(ctx, issue, flags.Resolve)
	if err != nil {
		return render.View{}, fmt.Errorf("issue %s: %w", flags.Issue, err)
	}
	return render.View{Issue: data}, nil
}
