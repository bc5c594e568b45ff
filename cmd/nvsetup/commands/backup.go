package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/backup"
	"github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/paths"
)

var pruneFlags struct {
	keep int
	yes  bool
}

func init() {
	backupPruneCmd.Flags().IntVar(&pruneFlags.keep, "keep", 3,
		"number of most recent backups to keep")
	backupPruneCmd.Flags().BoolVarP(&pruneFlags.yes, "yes", "y", false,
		"skip the confirmation prompt")

	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Backups are previous Neovim configuration directories, renamed to
timestamped siblings (nvim.backup.<timestamp>) when install or restore
replaced them.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// backupManager returns the manager for the effective config directory.
func backupManager() *backup.Manager {
	configDir := appConfig.ConfigDir
	if configDir == "" {
		configDir = paths.NvimConfigDir()
	}
	return backup.NewManager(configDir)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing configuration backups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := backupManager().List()
		if err != nil {
			if errors.Is(err, errors.ErrNoBackupsFound) {
				cmd.Println("No backups found.")
				return nil
			}
			return errors.NewSystemError(err, "")
		}

		w := cmd.OutOrStdout()
		for _, r := range records {
			fmt.Fprintf(w, "%s  %s  %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.BackupPath)
		}
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backups, keeping the most recent ones",
	Example: `  # Keep the three newest backups, delete the rest
  nvsetup backup prune

  # Keep only the newest
  nvsetup backup prune --keep 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pruneFlags.keep < 0 {
			return errors.NewUserError(errors.New("--keep must be non-negative"), "")
		}

		mgr := backupManager()
		records, err := mgr.List()
		if err != nil {
			if errors.Is(err, errors.ErrNoBackupsFound) {
				cmd.Println("No backups to prune.")
				return nil
			}
			return errors.NewSystemError(err, "")
		}

		doomed := len(records) - pruneFlags.keep
		if doomed <= 0 {
			cmd.Printf("Nothing to prune (%d backup(s), keeping %d).\n",
				len(records), pruneFlags.keep)
			return nil
		}

		if !pruneFlags.yes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Delete %d backup(s)?", doomed))
			if err != nil {
				return errors.NewSystemError(err, "")
			}
			if !ok {
				cmd.Println("Aborted.")
				return nil
			}
		}

		if err := mgr.Prune(pruneFlags.keep); err != nil {
			return errors.NewSystemError(err, "")
		}
		cmd.Printf("Deleted %d backup(s).\n", doomed)
		return nil
	},
}
