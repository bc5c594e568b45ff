package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/editor"
	"github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
	"github.com/nvsetup/nvsetup/internal/paths"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the installed init.lua in your editor",
	Long: `Edit opens the installed configuration in $EDITOR (falling back to
$VISUAL, then nvim, then vi).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir := appConfig.ConfigDir
		if configDir == "" {
			configDir = paths.NvimConfigDir()
		}
		path := filepath.Join(configDir, paths.ConfigFileName)

		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return errors.NewUserError(
					errors.Newf("%s does not exist", path),
					"Run: nvsetup install")
			}
			return errors.NewSystemError(err, "")
		}

		cmd.Printf("Editing %s\n", path)
		return editor.Open(cmd.Context(), execx.NewRunner(), path)
	},
}
