package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/joho/godotenv"

	"github.com/vvka-141/pkgmeta/internal/config"
	"github.com/vvka-141/pkgmeta/internal/logging"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// configDir is where pkgmeta.yaml and .env are looked up.
var configDir = "."

// loadProjectConfig loads godotenv and project configuration.
// Returns config.Default() if pkgmeta.yaml does not exist.
func loadProjectConfig(sourcePath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(sourcePath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// newLogger builds the console logger used by a command run.
func newLogger(stderr io.Writer, verbose bool) pkgmeta.Logger {
	return logging.NewConsoleLoggerTo(stderr, verbose)
}
