package installer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/nvsetup/nvsetup/internal/assets"
	"github.com/nvsetup/nvsetup/internal/backup"
	nverrors "github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
	"github.com/nvsetup/nvsetup/internal/paths"
	"github.com/nvsetup/nvsetup/internal/pkgmgr"
	"github.com/nvsetup/nvsetup/pkg/fileutil"
)

// Options controls a single installer run.
type Options struct {
	// SourceFile is the init.lua to install. Empty means the embedded
	// default configuration.
	SourceFile string

	// ConfigDir is the destination Neovim configuration directory.
	// Empty means the standard location (paths.NvimConfigDir).
	ConfigDir string

	// SkipDeps installs only the configuration, no external commands.
	SkipDeps bool

	// DryRun prints the planned actions without mutating anything.
	DryRun bool

	// KeepGoing attempts every dependency command and aggregates
	// failures instead of stopping at the first non-zero exit.
	KeepGoing bool

	// ForceKind bypasses detection and uses the given package manager.
	// Empty means detect from PATH.
	ForceKind pkgmgr.Kind

	// Tools are extra packages appended to the built-in dependency sets.
	Tools pkgmgr.Tools
}

// Result summarizes a completed (or planned, for dry runs) install.
type Result struct {
	// Kind is the detected package manager.
	Kind pkgmgr.Kind

	// Backup is the record of the pre-existing configuration, or nil if
	// there was nothing to back up.
	Backup *backup.Record

	// ConfigPath is the installed init.lua location.
	ConfigPath string

	// Commands is the dependency command list that was run (or would
	// run, for dry runs). Empty for unsupported package managers.
	Commands []execx.Command

	// DepsSkipped reports whether dependency installation was skipped
	// (via --skip-deps or an unknown package manager).
	DepsSkipped bool
}

// Installer performs the one-shot configuration install: precondition
// check, backup, config copy, dependency dispatch. All process and clock
// effects go through injected collaborators so the flow is testable
// without real package managers.
type Installer struct {
	runner  execx.Runner
	logger  *slog.Logger
	out     io.Writer
	backups *backup.Manager
	opts    Options
}

// New creates an Installer. The backup manager is derived from the
// resolved config directory; pass backup options via WithBackupManager
// when tests need a pinned clock.
func New(runner execx.Runner, logger *slog.Logger, out io.Writer, opts Options) *Installer {
	if opts.ConfigDir == "" {
		opts.ConfigDir = paths.NvimConfigDir()
	}
	return &Installer{
		runner:  runner,
		logger:  logger,
		out:     out,
		backups: backup.NewManager(opts.ConfigDir),
		opts:    opts,
	}
}

// WithBackupManager replaces the backup manager. Tests use this to inject
// a manager with a fixed clock.
func (i *Installer) WithBackupManager(m *backup.Manager) *Installer {
	i.backups = m
	return i
}

// Run executes the install flow: detect the package manager, verify nvim
// is present, back up any existing configuration, install init.lua, and
// run the dependency commands. The run aborts on the first failure; a
// failed precondition leaves the filesystem untouched.
func (i *Installer) Run(ctx context.Context) (*Result, error) {
	kind := i.opts.ForceKind
	if kind == "" {
		kind = pkgmgr.Detect(i.runner.LookPath)
		i.logger.Info("detected package manager", "kind", kind)
	} else {
		i.logger.Info("using configured package manager", "kind", kind)
	}

	result := &Result{Kind: kind}

	// Precondition: nvim must exist before we touch anything.
	if err := i.CheckPrecondition(); err != nil {
		return nil, err
	}

	// Resolve and validate the source before mutating the filesystem,
	// so a missing source aborts as cleanly as a missing editor.
	source, data, err := i.resolveSource()
	if err != nil {
		return nil, err
	}

	plan := pkgmgr.Plan(kind, i.opts.Tools)
	if !i.opts.SkipDeps {
		result.Commands = plan
	}
	result.ConfigPath = filepath.Join(i.opts.ConfigDir, paths.ConfigFileName)
	result.DepsSkipped = i.opts.SkipDeps || !kind.Supported()

	if i.opts.DryRun {
		i.printDryRun(result, source)
		return result, nil
	}

	// Backup any existing configuration (rename, at most one per run).
	record, err := i.backups.Create()
	if err != nil {
		return nil, nverrors.NewSystemError(err, "check permissions on "+i.opts.ConfigDir)
	}
	result.Backup = record
	if record != nil {
		i.logger.Info("backed up existing configuration", "backup", record.BackupPath)
	}

	// Install the configuration file.
	if err := i.installConfig(source, data); err != nil {
		return nil, err
	}
	i.logger.Info("installed configuration", "path", result.ConfigPath)

	// Install dependencies.
	if err := i.installDeps(ctx, kind, plan); err != nil {
		return result, err
	}

	return result, nil
}

// CheckPrecondition fails with ErrNvimNotFound if the nvim binary is
// absent. It has no side effects.
func (i *Installer) CheckPrecondition() error {
	if _, err := i.runner.LookPath("nvim"); err != nil {
		return nverrors.NewUserError(
			errors.WithSecondaryError(nverrors.ErrNvimNotFound, err),
			"Install Neovim first (e.g., sudo pacman -S neovim), then re-run nvsetup install")
	}
	return nil
}

// resolveSource returns the path of the configured source file and, when
// the embedded default is used, its contents. Exactly one of path or data
// is meaningful: a non-empty path means copy that file, a nil path with
// data means write the embedded default.
func (i *Installer) resolveSource() (string, []byte, error) {
	if i.opts.SourceFile == "" {
		return "", assets.InitLua, nil
	}

	info, err := os.Stat(i.opts.SourceFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nverrors.NewUserError(
				errors.Wrapf(nverrors.ErrSourceNotFound, "%s", i.opts.SourceFile),
				"Pass an existing file with --config-file, or omit it to use the bundled configuration")
		}
		return "", nil, nverrors.NewSystemError(errors.Wrapf(err, "stat %s", i.opts.SourceFile), "")
	}
	if info.IsDir() {
		return "", nil, nverrors.NewUserError(
			errors.Wrapf(nverrors.ErrSourceNotFound, "%s is a directory", i.opts.SourceFile),
			"--config-file must point to an init.lua file")
	}

	return i.opts.SourceFile, nil, nil
}

// installConfig creates the destination directory and puts init.lua in
// place, either by copying the source file or writing the embedded
// default.
func (i *Installer) installConfig(source string, data []byte) error {
	if err := paths.EnsureDir(i.opts.ConfigDir, 0); err != nil {
		return nverrors.NewSystemError(errors.Wrapf(err, "creating %s", i.opts.ConfigDir),
			"check permissions on "+i.opts.ConfigDir)
	}

	dest := filepath.Join(i.opts.ConfigDir, paths.ConfigFileName)

	if source != "" {
		if err := fileutil.CopyFile(source, dest); err != nil {
			return nverrors.NewSystemError(err, "")
		}
		return nil
	}

	if err := fileutil.AtomicWriteFile(dest, data, 0o644); err != nil {
		return nverrors.NewSystemError(err, "")
	}
	return nil
}

// installDeps runs the dependency command list for the detected package
// manager. For an unsupported kind it prints manual instructions and
// succeeds without invoking anything.
func (i *Installer) installDeps(ctx context.Context, kind pkgmgr.Kind, plan []execx.Command) error {
	if i.opts.SkipDeps {
		i.logger.Info("skipping dependency installation")
		return nil
	}

	if !kind.Supported() {
		fmt.Fprint(i.out, pkgmgr.ManualInstructions)
		return nil
	}

	var failures []error
	for _, cmd := range plan {
		i.logger.Info("running", "cmd", cmd.String())
		if err := i.runner.Run(ctx, cmd); err != nil {
			if !i.opts.KeepGoing {
				// Fail fast, preserving the command's exit code.
				return nverrors.NewExitError(err, execx.ExitCode(err, nverrors.ExitUser))
			}
			i.logger.Warn("command failed, continuing", "cmd", cmd.String(), "error", err)
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		err := errors.Join(failures...)
		return nverrors.NewExitError(
			errors.Wrapf(err, "%d dependency command(s) failed", len(failures)),
			nverrors.ExitUser)
	}

	return nil
}

// printDryRun writes the planned actions without executing them.
func (i *Installer) printDryRun(result *Result, source string) {
	fmt.Fprintln(i.out, "Dry run; no changes made.")
	fmt.Fprintf(i.out, "  Package manager: %s\n", result.Kind)
	if source == "" {
		source = "(bundled default)"
	}
	fmt.Fprintf(i.out, "  Would install %s -> %s\n", source, result.ConfigPath)
	if _, err := os.Stat(i.opts.ConfigDir); err == nil {
		fmt.Fprintf(i.out, "  Would back up %s first\n", i.opts.ConfigDir)
	}
	switch {
	case i.opts.SkipDeps:
		fmt.Fprintln(i.out, "  Dependency installation skipped (--skip-deps)")
	case !result.Kind.Supported():
		fmt.Fprintln(i.out, "  No supported package manager; would print manual instructions")
	default:
		fmt.Fprintln(i.out, "  Would run:")
		for _, cmd := range result.Commands {
			fmt.Fprintf(i.out, "    %s\n", cmd.String())
		}
	}
}
