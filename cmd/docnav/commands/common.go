package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/version"
)

// Global carries process-wide state shared by subcommands.
type Global struct {
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build and print the navigation tree"`
	Sitemap SitemapCmd `cmd:"" help:"List every document with its breadcrumb"`
	Resolve ResolveCmd `cmd:"" help:"Show where a document sits in the navigation"`
	Prereq  PrereqCmd  `cmd:"" help:"Render the Prerequisites boxes of a document"`
	Check   CheckCmd   `cmd:"" help:"Check the navigation against the docs directory"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`

	levelFromEnv bool
}

var logLevel = new(slog.LevelVar)

// Options returns the kong options shared by main and tests.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("docnav"),
		kong.Description("Build and check documentation site navigation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	}
}

// AfterApply runs after flag parsing; setup logging once.
// Precedence: -v, then DOCNAV_LOG_LEVEL, then logging.level from the config file.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	switch level, fromEnv := config.LogLevelFromEnv(); {
	case c.Verbose:
		logLevel.Set(slog.LevelDebug)
	case fromEnv:
		logLevel.Set(level)
		c.levelFromEnv = true
	default:
		logLevel.Set(slog.LevelInfo)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	return nil
}

// loadConfig loads the configuration file. A missing file at the default path
// is not an error: defaults rooted at the working directory are used instead.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.Config
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		if ferrors.HasCategory(err, ferrors.CategoryConfig) && errors.Is(err, fs.ErrNotExist) && isDefaultConfigPath(path) {
			slog.Debug("No configuration file found, using defaults", "path", path)
			return config.Default("."), nil
		}
		return nil, err
	}
	if !c.Verbose && !c.levelFromEnv && cfg.Logging.Level != "" {
		logLevel.Set(cfg.Logging.Level.Slog())
	}
	return cfg, nil
}

func isDefaultConfigPath(path string) bool {
	abs, err := filepath.Abs(config.DefaultPath)
	if err != nil {
		return false
	}
	given, err := filepath.Abs(path)
	return err == nil && given == abs
}
