// Package bootstrap is the shared startup path of every cabkit tool: load
// the config living beside the binaries, wire up logging and pick the
// output language.
package bootstrap

import (
	"log/slog"

	"cabkit/internal/config"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/internal/logging"
)

// Init loads the shared config and returns it with the directory it lives
// in and a configured logger. A broken config file is fatal; a missing one
// is not.
func Init() (*config.Config, string, *slog.Logger) {
	configDir := fileutil.ExecutableDir()

	cfg, err := config.Load(configDir)
	if err != nil {
		logging.StandardFatal("Failed to load config", err)
	}

	logger := logging.Setup(cfg.SlogLevel())
	locale.MustInit(cfg.Language)

	return cfg, configDir, logger
}
