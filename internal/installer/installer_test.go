package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvsetup/nvsetup/internal/assets"
	nverrors "github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
	"github.com/nvsetup/nvsetup/internal/logging"
	"github.com/nvsetup/nvsetup/internal/pkgmgr"
)

// fakeRunner records every command instead of executing it.
type fakeRunner struct {
	available map[string]bool
	ran       []execx.Command
	failOn    string // substring of a command that should fail
}

func (f *fakeRunner) Run(_ context.Context, cmd execx.Command) error {
	f.ran = append(f.ran, cmd)
	if f.failOn != "" && strings.Contains(cmd.String(), f.failOn) {
		return nverrors.Newf("command failed: %s", cmd.String())
	}
	return nil
}

func (f *fakeRunner) Output(_ context.Context, cmd execx.Command) (string, error) {
	return "", nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", nverrors.Newf("%s not found", name)
}

// pacmanHost is a typical Arch system with Neovim installed.
func pacmanHost() *fakeRunner {
	return &fakeRunner{available: map[string]bool{"pacman": true, "nvim": true}}
}

func newTestInstaller(t *testing.T, runner *fakeRunner, opts Options) (*Installer, string) {
	t.Helper()
	if opts.ConfigDir == "" {
		opts.ConfigDir = filepath.Join(t.TempDir(), "nvim")
	}
	var out strings.Builder
	inst := New(runner, logging.ForTest(t), &out, opts)
	return inst, opts.ConfigDir
}

func TestRunFreshInstall(t *testing.T) {
	runner := pacmanHost()
	inst, configDir := newTestInstaller(t, runner, Options{})

	result, err := inst.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, pkgmgr.KindPacman, result.Kind)
	assert.Nil(t, result.Backup, "fresh install should not create a backup")

	data, err := os.ReadFile(filepath.Join(configDir, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, assets.InitLua, data, "embedded default installed")

	// The exact pacman plan ran, in order.
	want := pkgmgr.Plan(pkgmgr.KindPacman, pkgmgr.Tools{})
	require.Len(t, runner.ran, len(want))
	for i := range want {
		assert.Equal(t, want[i].String(), runner.ran[i].String())
	}
}

func TestRunMissingNvimAbortsBeforeMutation(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"pacman": true}}
	inst, configDir := newTestInstaller(t, runner, Options{})

	// Pre-existing config that must stay untouched.
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "init.lua"), []byte("precious"), 0o644))

	_, err := inst.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, nverrors.ErrNvimNotFound)

	var exitErr *nverrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, nverrors.ExitUser, exitErr.Code)

	// No commands ran (only LookPath probes), no backup sibling appeared,
	// and the existing config is intact.
	assert.Empty(t, runner.ran)
	entries, err := os.ReadDir(filepath.Dir(configDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(configDir, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
}

func TestRunBacksUpExistingConfig(t *testing.T) {
	runner := pacmanHost()
	inst, configDir := newTestInstaller(t, runner, Options{SkipDeps: true})

	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "init.lua"), []byte("old"), 0o644))

	result, err := inst.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Backup)

	// Exactly one backup sibling, holding the old content.
	entries, err := os.ReadDir(filepath.Dir(configDir))
	require.NoError(t, err)
	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "nvim.backup.") {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1)

	old, err := os.ReadFile(filepath.Join(result.Backup.BackupPath, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(old))

	// The destination holds only the newly installed file.
	dest, err := os.ReadDir(configDir)
	require.NoError(t, err)
	require.Len(t, dest, 1)
	assert.Equal(t, "init.lua", dest[0].Name())
}

func TestRunCopiesSourceFile(t *testing.T) {
	runner := pacmanHost()
	source := filepath.Join(t.TempDir(), "init.lua")
	require.NoError(t, os.WriteFile(source, []byte("custom config\n"), 0o644))

	inst, configDir := newTestInstaller(t, runner, Options{SourceFile: source, SkipDeps: true})

	_, err := inst.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(configDir, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "custom config\n", string(data))
}

func TestRunMissingSourceFile(t *testing.T) {
	runner := pacmanHost()
	missing := filepath.Join(t.TempDir(), "nope.lua")
	inst, configDir := newTestInstaller(t, runner, Options{SourceFile: missing})

	_, err := inst.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, nverrors.ErrSourceNotFound)

	// Nothing was created.
	_, statErr := os.Stat(configDir)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, runner.ran)
}

func TestRunUnknownPackageManager(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"nvim": true}}
	var out strings.Builder
	configDir := filepath.Join(t.TempDir(), "nvim")
	inst := New(runner, logging.ForTest(t), &out, Options{ConfigDir: configDir})

	result, err := inst.Run(context.Background())
	require.NoError(t, err, "unknown package manager is not a failure")

	assert.Equal(t, pkgmgr.KindUnknown, result.Kind)
	assert.True(t, result.DepsSkipped)
	assert.Empty(t, runner.ran, "no external commands for unknown kind")
	assert.Contains(t, out.String(), "No supported package manager")

	// Config still installed.
	_, statErr := os.Stat(filepath.Join(configDir, "init.lua"))
	assert.NoError(t, statErr)
}

func TestRunSkipDeps(t *testing.T) {
	runner := pacmanHost()
	inst, _ := newTestInstaller(t, runner, Options{SkipDeps: true})

	result, err := inst.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.DepsSkipped)
	assert.Empty(t, runner.ran)
}

func TestRunFailFastStopsAtFirstFailure(t *testing.T) {
	runner := pacmanHost()
	runner.failOn = "npm install"
	inst, _ := newTestInstaller(t, runner, Options{})

	_, err := inst.Run(context.Background())
	require.Error(t, err)

	var exitErr *nverrors.ExitError
	require.ErrorAs(t, err, &exitErr)

	// pacman plan: system install, npm, pip. The pip command never ran.
	require.Len(t, runner.ran, 2)
	assert.Contains(t, runner.ran[0].String(), "pacman")
	assert.Contains(t, runner.ran[1].String(), "npm")
}

func TestRunKeepGoingAggregatesFailures(t *testing.T) {
	runner := pacmanHost()
	runner.failOn = "npm install"
	inst, _ := newTestInstaller(t, runner, Options{KeepGoing: true})

	_, err := inst.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 dependency command(s) failed")

	// All three pacman plan commands were attempted.
	assert.Len(t, runner.ran, 3)
}

func TestRunForcedKindSkipsDetection(t *testing.T) {
	// Host has pacman, but the configuration pins apt.
	runner := pacmanHost()
	inst, _ := newTestInstaller(t, runner, Options{ForceKind: pkgmgr.KindApt})

	result, err := inst.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, pkgmgr.KindApt, result.Kind)
	require.NotEmpty(t, runner.ran)
	assert.Contains(t, runner.ran[0].String(), "apt-get update")
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	runner := pacmanHost()
	var out strings.Builder
	configDir := filepath.Join(t.TempDir(), "nvim")
	inst := New(runner, logging.ForTest(t), &out, Options{ConfigDir: configDir, DryRun: true})

	result, err := inst.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, runner.ran)
	_, statErr := os.Stat(configDir)
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the config dir")
	assert.Contains(t, out.String(), "Dry run")
	assert.Contains(t, out.String(), "pacman")
	assert.NotEmpty(t, result.Commands)
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "nvim")

	for i := 0; i < 2; i++ {
		runner := pacmanHost()
		inst, _ := newTestInstaller(t, runner, Options{ConfigDir: configDir, SkipDeps: true})
		_, err := inst.Run(context.Background())
		require.NoError(t, err)
	}

	data, err := os.ReadFile(filepath.Join(configDir, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, assets.InitLua, data, "second run produces identical content")
}
