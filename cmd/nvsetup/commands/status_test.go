package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvsetup/nvsetup/internal/assets"
	"github.com/nvsetup/nvsetup/internal/config"
)

func TestStatusCommand_Metadata(t *testing.T) {
	if statusCmd.Use != "status" {
		t.Errorf("Use = %q, want %q", statusCmd.Use, "status")
	}
	if statusCmd.Flags().Lookup("json") == nil {
		t.Error("--json flag should be defined")
	}
}

func runStatusJSON(t *testing.T, configDir string) statusInfo {
	t.Helper()
	setupTestConfig(t, &config.Config{ConfigDir: configDir})

	statusFlags.json = true
	t.Cleanup(func() { statusFlags.json = false })

	var buf bytes.Buffer
	statusCmd.SetOut(&buf)
	t.Cleanup(func() { statusCmd.SetOut(nil) })

	if err := runStatus(statusCmd, nil); err != nil {
		t.Fatalf("status error = %v", err)
	}

	var info statusInfo
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("unmarshaling status JSON: %v", err)
	}
	return info
}

func TestStatus_NotInstalled(t *testing.T) {
	info := runStatusJSON(t, filepath.Join(t.TempDir(), "nvim"))

	if info.Installed {
		t.Error("Installed should be false for an empty directory")
	}
	if info.Backups != 0 {
		t.Errorf("Backups = %d, want 0", info.Backups)
	}
}

func TestStatus_InstalledBundled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "init.lua"), assets.InitLua, 0o644); err != nil {
		t.Fatal(err)
	}

	info := runStatusJSON(t, dir)

	if !info.Installed {
		t.Error("Installed should be true")
	}
	if !info.MatchesBundled {
		t.Error("MatchesBundled should be true for the bundled init.lua")
	}
}

func TestStatus_InstalledCustomized(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "init.lua"), []byte("-- mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	info := runStatusJSON(t, dir)

	if !info.Installed {
		t.Error("Installed should be true")
	}
	if info.MatchesBundled {
		t.Error("MatchesBundled should be false for a customized init.lua")
	}
}

func TestStatus_CountsBackups(t *testing.T) {
	target := seedBackups(t, "20260101T000000", "20260201T000000")

	info := runStatusJSON(t, target)

	if info.Backups != 2 {
		t.Errorf("Backups = %d, want 2", info.Backups)
	}
	if info.LatestBackup != "20260201T000000" {
		t.Errorf("LatestBackup = %q, want the newest ID", info.LatestBackup)
	}
}
