package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nverrors "github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
)

// fakeRunner serves canned lookups and outputs for checks.
type fakeRunner struct {
	available map[string]bool
	outputs   map[string]string
}

func (f *fakeRunner) Run(_ context.Context, _ execx.Command) error { return nil }

func (f *fakeRunner) Output(_ context.Context, cmd execx.Command) (string, error) {
	if out, ok := f.outputs[cmd.String()]; ok {
		return out, nil
	}
	return "", nverrors.Newf("no output for %s", cmd.String())
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", nverrors.Newf("%s not found", name)
}

func TestNvimCheckMissing(t *testing.T) {
	check := NewNvimCheck(&fakeRunner{})

	result := check.Run()
	assert.Equal(t, SeverityError, result.Status)
	assert.NotEmpty(t, result.FixHint)
}

func TestNvimCheckFound(t *testing.T) {
	runner := &fakeRunner{
		available: map[string]bool{"nvim": true},
		outputs:   map[string]string{"nvim --version": "NVIM v0.11.0\nBuild type: Release"},
	}

	result := NewNvimCheck(runner).Run()
	assert.Equal(t, SeverityPass, result.Status)
	assert.Equal(t, "/usr/bin/nvim", result.Details["path"])
	assert.Equal(t, "NVIM v0.11.0", result.Details["version"])
}

func TestPackageManagerCheck(t *testing.T) {
	tests := []struct {
		name      string
		available map[string]bool
		status    Severity
		kind      string
	}{
		{"pacman detected", map[string]bool{"pacman": true}, SeverityPass, "pacman"},
		{"dnf detected", map[string]bool{"dnf": true}, SeverityPass, "dnf"},
		{"nothing detected", nil, SeverityWarning, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewPackageManagerCheck(&fakeRunner{available: tt.available}).Run()
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.kind, result.Details["kind"])
		})
	}
}

func TestConfigDirCheckNotInstalled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvim")

	result := NewConfigDirCheck(dir).Run()
	assert.Equal(t, SeverityInfo, result.Status)
	assert.Contains(t, result.FixHint, "nvsetup install")
}

func TestConfigDirCheckInstalled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvim")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte("-- config"), 0o644))

	result := NewConfigDirCheck(dir).Run()
	assert.Equal(t, SeverityPass, result.Status)
}

func TestConfigDirCheckMissingInitLua(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvim")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	result := NewConfigDirCheck(dir).Run()
	assert.Equal(t, SeverityWarning, result.Status)
}

func TestConfigDirCheckFileInsteadOfDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nvim")
	require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0o644))

	result := NewConfigDirCheck(dir).Run()
	assert.Equal(t, SeverityError, result.Status)
}

func TestToolchainCheckAllPresent(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{
		"node": true, "npm": true, "python3": true, "pip3": true,
	}}

	result := NewToolchainCheck(runner).Run()
	assert.Equal(t, SeverityPass, result.Status)
}

func TestToolchainCheckMissingSome(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"node": true, "python3": true}}

	result := NewToolchainCheck(runner).Run()
	assert.Equal(t, SeverityWarning, result.Status)
	assert.Contains(t, result.Message, "npm")
	assert.Contains(t, result.Message, "pip3")
}

func TestDefaultChecksOrder(t *testing.T) {
	checks := DefaultChecks(&fakeRunner{}, t.TempDir())
	require.Len(t, checks, 4)
	assert.Equal(t, "nvim-binary", checks[0].Name())
	assert.Equal(t, "package-manager", checks[1].Name())
	assert.Equal(t, "config-directory", checks[2].Name())
	assert.Equal(t, "toolchain", checks[3].Name())
}
