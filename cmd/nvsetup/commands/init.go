package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/config"
	"github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/paths"
	"github.com/nvsetup/nvsetup/pkg/fileutil"
)

var initFlags struct {
	force bool
}

func init() {
	initCmd.Flags().BoolVarP(&initFlags.force, "force", "f", false,
		"overwrite an existing configuration file")

	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter nvsetup configuration file",
	Long: `Init writes a config.yaml to nvsetup's own configuration directory
(~/.config/nvsetup on Linux). The file is optional; it only records
defaults for the install command, and every setting has a flag
equivalent.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := paths.AppConfigPath()

	if _, err := os.Stat(path); err == nil && !initFlags.force {
		return errors.NewUserError(
			errors.Newf("%s already exists", path),
			"Pass --force to overwrite it")
	}

	if err := paths.EnsureDir(paths.AppConfigDir(), 0); err != nil {
		return errors.NewSystemError(err, "")
	}

	cfg := config.Config{Version: 1}
	if err := fileutil.AtomicWriteYAML(path, &cfg); err != nil {
		return errors.NewSystemError(err, "")
	}

	cmd.Printf("Wrote %s\n", path)
	cmd.Printf("Extra packages can be listed in %s\n", paths.ToolsPath())
	return nil
}
