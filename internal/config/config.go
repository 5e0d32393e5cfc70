// Package config loads the docnav.yaml project configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/prereq"
)

// DefaultPath is the configuration file looked up when -c is not given.
const DefaultPath = "docnav.yaml"

// Config is the project configuration.
type Config struct {
	// Outline is the sidebar outline file (.yaml, .yml, .json or .toml).
	Outline string `yaml:"outline"`
	// Sidebar selects a sidebar of the outline; empty means the first one.
	Sidebar string `yaml:"sidebar,omitempty"`
	// DocsDir holds the Markdown/MDX document bodies.
	DocsDir       string              `yaml:"docs_dir"`
	Prerequisites PrerequisitesConfig `yaml:"prerequisites,omitempty"`
	Metrics       MetricsConfig       `yaml:"metrics,omitempty"`
	Logging       LoggingConfig       `yaml:"logging,omitempty"`

	// baseDir anchors relative paths; it is the directory of the loaded file.
	baseDir string
}

// PrerequisitesConfig configures the Prerequisites box.
type PrerequisitesConfig struct {
	// Defaults are inline Markdown lines that precede every page's own items.
	// Empty means the built-in default item.
	Defaults []string `yaml:"defaults,omitempty"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// Textfile is a Prometheus textfile-collector path written after each build.
	Textfile string `yaml:"textfile,omitempty"`
}

// LoggingConfig configures the log level used when neither -v nor DOCNAV_LOG_LEVEL is set.
type LoggingConfig struct {
	Level LogLevel `yaml:"level,omitempty"`
}

// Default returns the configuration used when no file exists, rooted at baseDir.
func Default(baseDir string) *Config {
	cfg := &Config{baseDir: baseDir}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands and validates the configuration file at path.
// .env and .env.local next to the file are loaded first; they never override
// variables already set in the process environment.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if _, err := loadEnvFiles(dir); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.FileSystemError("failed to read config file").WithCause(err).
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.baseDir = dir
	return cfg, nil
}

// Parse decodes, defaults and validates configuration YAML. Relative paths are
// resolved against the working directory.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to decode configuration").Build()
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OutlinePath returns the outline file path resolved against the config directory.
func (c *Config) OutlinePath() string { return c.resolve(c.Outline) }

// DocsPath returns the docs directory resolved against the config directory.
func (c *Config) DocsPath() string { return c.resolve(c.DocsDir) }

// MetricsTextfile returns the resolved textfile path, or "" when metrics export is off.
func (c *Config) MetricsTextfile() string {
	if c.Metrics.Textfile == "" {
		return ""
	}
	return c.resolve(c.Metrics.Textfile)
}

// PrerequisiteDefaults parses the configured default items, falling back to
// the built-in default.
func (c *Config) PrerequisiteDefaults() ([]prereq.Item, error) {
	if len(c.Prerequisites.Defaults) == 0 {
		return prereq.DefaultItems(), nil
	}
	items, err := prereq.ParseItems(c.Prerequisites.Defaults)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid prerequisites.defaults entry").Build()
	}
	return items, nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// Init writes an example configuration file. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Config{
		Outline: DefaultOutline,
		Sidebar: "docs",
		DocsDir: DefaultDocsDir,
		Prerequisites: PrerequisitesConfig{
			Defaults: []string{"Completed the [Getting Started Tutorial](" + prereq.GettingStartedURL + ")"},
		},
		Logging: LoggingConfig{Level: LogLevelInfo},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&example); err != nil {
		return ferrors.InternalError("failed to encode example configuration").WithCause(err).Build()
	}
	if err := enc.Close(); err != nil {
		return ferrors.InternalError("failed to encode example configuration").WithCause(err).Build()
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write configuration file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
