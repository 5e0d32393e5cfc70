package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/outline"
	"git.home.luguber.info/inful/docnav/internal/prereq"
)

// Validate checks the configuration after defaults were applied. Errors are
// classified as config errors and carry the offending field.
func (c *Config) Validate() error {
	if _, err := outline.FormatFromPath(c.Outline); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "outline must be a .yaml, .yml, .json or .toml file").
			WithContext("field", "outline").
			WithContext("value", c.Outline).
			Build()
	}

	if c.Metrics.Textfile != "" && !strings.HasSuffix(c.Metrics.Textfile, ".prom") {
		return ferrors.ConfigError("metrics.textfile must end in .prom for the textfile collector").
			WithContext("field", "metrics.textfile").
			WithContext("value", c.Metrics.Textfile).
			Build()
	}

	for i, line := range c.Prerequisites.Defaults {
		if _, err := prereq.ParseItem(line); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid prerequisites default").
				WithContext("field", "prerequisites.defaults").
				WithContext("index", i).
				Build()
		}
	}

	if _, err := logLevels.Parse(string(c.Logging.Level)); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid logging level").
			WithContext("field", "logging.level").
			Build()
	}
	return nil
}
