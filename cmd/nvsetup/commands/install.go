package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
	"github.com/nvsetup/nvsetup/internal/installer"
	"github.com/nvsetup/nvsetup/internal/paths"
	"github.com/nvsetup/nvsetup/internal/pkgmgr"
)

var installFlags struct {
	yes        bool
	skipDeps   bool
	dryRun     bool
	keepGoing  bool
	configFile string
	configDir  string
}

func init() {
	installCmd.Flags().BoolVarP(&installFlags.yes, "yes", "y", false,
		"skip the confirmation prompt")
	installCmd.Flags().BoolVar(&installFlags.skipDeps, "skip-deps", false,
		"install only the configuration, no packages")
	installCmd.Flags().BoolVar(&installFlags.dryRun, "dry-run", false,
		"print planned actions without changing anything")
	installCmd.Flags().BoolVar(&installFlags.keepGoing, "keep-going", false,
		"attempt every dependency command even after a failure")
	installCmd.Flags().StringVar(&installFlags.configFile, "config-file", "",
		"init.lua to install instead of the bundled one")
	installCmd.Flags().StringVar(&installFlags.configDir, "config-dir", "",
		"destination directory (default: Neovim's config directory)")

	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Neovim configuration and its dependencies",
	Long: `Install backs up any existing Neovim configuration directory by
renaming it to a timestamped sibling, puts init.lua in place, and runs
the dependency install commands for your package manager.

If no supported package manager is found the configuration is still
installed and manual instructions are printed instead.`,
	Example: `  nvsetup install
  nvsetup install --dry-run
  nvsetup install --skip-deps
  nvsetup install --config-file ./my-init.lua`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	opts := installOptions(cmd)

	tools, err := pkgmgr.LoadTools(paths.ToolsPath())
	if err != nil {
		return errors.NewConfigError(err)
	}
	opts.Tools = tools

	if !installFlags.yes && !opts.DryRun {
		dir := opts.ConfigDir
		if dir == "" {
			dir = paths.NvimConfigDir()
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			"This will replace "+dir+" (a backup is kept). Continue?")
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	inst := installer.New(execx.NewRunner(), slog.Default(), cmd.OutOrStdout(), opts)

	result, err := inst.Run(cmd.Context())
	if err != nil {
		return err
	}

	if !opts.DryRun {
		installer.PrintSummary(cmd.OutOrStdout(), result)
	}
	return nil
}

// installOptions merges the configuration file with the command line.
// Flags win when set; booleans from the config act as new defaults.
func installOptions(cmd *cobra.Command) installer.Options {
	opts := installer.Options{
		SourceFile: appConfig.SourceFile,
		ConfigDir:  appConfig.ConfigDir,
		SkipDeps:   appConfig.SkipDeps,
		KeepGoing:  appConfig.KeepGoing,
		DryRun:     installFlags.dryRun,
		ForceKind:  pkgmgr.Kind(appConfig.PackageManager),
	}

	if cmd.Flags().Changed("skip-deps") {
		opts.SkipDeps = installFlags.skipDeps
	}
	if cmd.Flags().Changed("keep-going") {
		opts.KeepGoing = installFlags.keepGoing
	}
	if installFlags.configFile != "" {
		opts.SourceFile = installFlags.configFile
	}
	if installFlags.configDir != "" {
		opts.ConfigDir = installFlags.configDir
	}

	if opts.SourceFile == "" {
		opts.SourceFile = siblingSource()
	}

	return opts
}

// siblingSource returns an init.lua sitting next to the nvsetup binary,
// or "" when there is none. Shipping the binary alongside a custom
// init.lua makes that file the default without any flags.
func siblingSource() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return ""
	}
	return candidate
}
