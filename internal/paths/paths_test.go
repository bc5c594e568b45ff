package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNvimConfigDirRespectsXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := NvimConfigDir()
	want := filepath.Join(dir, "nvim")
	if got != want {
		t.Errorf("NvimConfigDir() = %q, want %q", got, want)
	}
}

func TestNvimConfigDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	os.Unsetenv("XDG_CONFIG_HOME")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("home directory not available")
	}

	got := NvimConfigDir()
	want := filepath.Join(home, ".config", "nvim")
	if got != want {
		t.Errorf("NvimConfigDir() = %q, want %q", got, want)
	}
}

func TestNvimConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := NvimConfigPath()
	want := filepath.Join(dir, "nvim", "init.lua")
	if got != want {
		t.Errorf("NvimConfigPath() = %q, want %q", got, want)
	}
}

func TestAppConfigPaths(t *testing.T) {
	cfg := AppConfigPath()
	if !strings.HasSuffix(cfg, filepath.Join(AppName, "config.yaml")) {
		t.Errorf("AppConfigPath() = %q, want suffix %s/config.yaml", cfg, AppName)
	}

	tools := ToolsPath()
	if filepath.Dir(tools) != filepath.Dir(cfg) {
		t.Errorf("ToolsPath() dir = %q, want same dir as config %q", filepath.Dir(tools), filepath.Dir(cfg))
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("second EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestResolveHome(t *testing.T) {
	home, err := ResolveHome()
	if err != nil {
		t.Skipf("home not resolvable: %v", err)
	}
	if home == "" {
		t.Error("ResolveHome() returned empty string without error")
	}
}
