package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// envFiles are tried in precedence order: values from .env.local win over .env
// because godotenv never overwrites a variable that is already set.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads the env files found in dir and returns their paths.
// Missing files are skipped.
func loadEnvFiles(dir string) ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load env file").
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
		loaded = append(loaded, path)
	}
	return loaded, nil
}
