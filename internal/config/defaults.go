package config

import "strings"

// Defaults for unset fields.
const (
	DefaultOutline = "sidebars.yaml"
	DefaultDocsDir = "docs"
)

func applyDefaults(cfg *Config) {
	cfg.Outline = strings.TrimSpace(cfg.Outline)
	if cfg.Outline == "" {
		cfg.Outline = DefaultOutline
	}
	cfg.DocsDir = strings.TrimSpace(cfg.DocsDir)
	if cfg.DocsDir == "" {
		cfg.DocsDir = DefaultDocsDir
	}
	cfg.Sidebar = strings.TrimSpace(cfg.Sidebar)
	cfg.Metrics.Textfile = strings.TrimSpace(cfg.Metrics.Textfile)
}
