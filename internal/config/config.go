// Package config persists tool settings and last-used locations to a
// config.json beside the binaries, so every tool returns to the same folders
// on subsequent runs. A legacy config.yml is read once and migrated to JSON.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Last-used locations, one per tool surface.
	LastRoot        string `json:"last_root,omitempty" yaml:"last_root"`
	UserProfilesDir string `json:"user_profiles_dir,omitempty" yaml:"user_profiles_dir"`
	PCLauncherINI   string `json:"pc_ini_file,omitempty" yaml:"pc_ini_file"`
	PCGamesDir      string `json:"pc_games_dir,omitempty" yaml:"pc_games_dir"`

	// External converter locations; empty means resolve beside the binary,
	// then PATH.
	FFmpegPath string `json:"ffmpeg_path,omitempty" yaml:"ffmpeg_path"`
	XdvdfsPath string `json:"xdvdfs_path,omitempty" yaml:"xdvdfs_path"`

	// Sanitizer rules: disallowed character (or substring) to its
	// replacement. Empty map falls back to DefaultSanitizeRules.
	SanitizeRules map[string]string `json:"sanitize_rules,omitempty" yaml:"sanitize_rules"`

	// ExitMethod is written into every generated launcher record.
	ExitMethod string `json:"exit_method,omitempty" yaml:"exit_method"`

	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path"`
	Language   string `json:"language,omitempty" yaml:"language"`
	LogLevel   string `json:"log_level,omitempty" yaml:"log_level"`
}

// DefaultSanitizeRules strips the characters HyperSpin and RocketLauncher
// refuse in file and folder names.
func DefaultSanitizeRules() map[string]string {
	return map[string]string{
		"&":  "and",
		"'":  "",
		"!":  "",
		",":  "",
		";":  "",
		"%":  "",
		"#":  "",
		"=":  "-",
		"[":  "(",
		"]":  ")",
		"’":  "",
		"  ": " ",
	}
}

const defaultExitMethod = "Close Window (Alt+F4)"

var configFiles = []string{"config.json", "config.yml"}

// Load reads the config from the directory dir, trying config.json then the
// legacy config.yml. A missing config is not an error; defaults come back.
func Load(dir string) (*Config, error) {
	var data []byte
	var foundFile string

	for _, filename := range configFiles {
		b, err := os.ReadFile(filepath.Join(dir, filename))
		if err == nil {
			data = b
			foundFile = filename
			break
		}
	}

	if foundFile == "" {
		return withDefaults(&Config{}), nil
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(foundFile))

	var err error
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unknown config file type: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", foundFile, err)
	}

	if ext == ".yaml" || ext == ".yml" {
		slog.Info("Migrating config to JSON")
		_ = Save(dir, &cfg)
	}

	return withDefaults(&cfg), nil
}

func withDefaults(cfg *Config) *Config {
	if cfg.ExitMethod == "" {
		cfg.ExitMethod = defaultExitMethod
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "INFO"
	}
	return cfg
}

// Save writes the config as pretty JSON into dir.
func Save(dir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.Set("last_root", cfg.LastRoot)
	v.Set("user_profiles_dir", cfg.UserProfilesDir)
	v.Set("pc_ini_file", cfg.PCLauncherINI)
	v.Set("pc_games_dir", cfg.PCGamesDir)
	v.Set("ffmpeg_path", cfg.FFmpegPath)
	v.Set("xdvdfs_path", cfg.XdvdfsPath)
	v.Set("sanitize_rules", cfg.SanitizeRules)
	v.Set("exit_method", cfg.ExitMethod)
	v.Set("ledger_path", cfg.LedgerPath)
	v.Set("language", cfg.Language)
	v.Set("log_level", cfg.LogLevel)

	pretty, err := json.MarshalIndent(v.AllSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.json"), pretty, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Rules returns the sanitizer rules to apply, falling back to the defaults.
func (c *Config) Rules() map[string]string {
	if len(c.SanitizeRules) > 0 {
		return c.SanitizeRules
	}
	return DefaultSanitizeRules()
}

// SlogLevel converts the configured log level string into a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
