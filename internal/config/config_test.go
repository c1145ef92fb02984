package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ExitMethod != defaultExitMethod {
		t.Errorf("ExitMethod = %q, want default", cfg.ExitMethod)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		LastRoot:      `E:\HyperSpin`,
		PCLauncherINI: `E:\RocketLauncher\PCLauncher.ini`,
		FFmpegPath:    `E:\Tools\ffmpeg.exe`,
		Language:      "es",
		ExitMethod:    "Taskkill",
		SanitizeRules: map[string]string{"&": "and"},
	}

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.LastRoot != cfg.LastRoot {
		t.Errorf("LastRoot = %q, want %q", loaded.LastRoot, cfg.LastRoot)
	}
	if loaded.PCLauncherINI != cfg.PCLauncherINI {
		t.Errorf("PCLauncherINI = %q, want %q", loaded.PCLauncherINI, cfg.PCLauncherINI)
	}
	if loaded.Language != "es" {
		t.Errorf("Language = %q, want es", loaded.Language)
	}
	if loaded.ExitMethod != "Taskkill" {
		t.Errorf("ExitMethod = %q, want Taskkill", loaded.ExitMethod)
	}
	if loaded.SanitizeRules["&"] != "and" {
		t.Errorf("SanitizeRules = %v", loaded.SanitizeRules)
	}
}

func TestLoadMigratesYAML(t *testing.T) {
	dir := t.TempDir()
	yml := "last_root: D:\\HyperSpin\nlanguage: es\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LastRoot != `D:\HyperSpin` {
		t.Errorf("LastRoot = %q", cfg.LastRoot)
	}

	// Migration leaves a config.json behind; subsequent loads prefer it.
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Errorf("config.json not written by migration: %v", err)
	}
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if again.LastRoot != `D:\HyperSpin` {
		t.Errorf("migrated LastRoot = %q", again.LastRoot)
	}
}

func TestLoadBrokenJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() accepted broken JSON")
	}
}

func TestRulesFallback(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Rules(); got["&"] != "and" {
		t.Errorf("default rules missing ampersand rule: %v", got)
	}

	cfg.SanitizeRules = map[string]string{"!": "?"}
	if got := cfg.Rules(); got["!"] != "?" || len(got) != 1 {
		t.Errorf("custom rules not honored: %v", got)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.in}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
