package version

import "testing"

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version is empty")
	}
}

func TestGetEnvOverride(t *testing.T) {
	t.Setenv("CABKIT_VERSION", "9.9.9")
	if got := Get().Version; got != "9.9.9" {
		t.Errorf("Version = %q, want 9.9.9", got)
	}
}
