package commands

import (
	"fmt"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/backup"
	"github.com/nvsetup/nvsetup/internal/errors"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [timestamp]",
	Short: "Restore a previous configuration from a backup",
	Long: `Restore renames a backup directory back into place. The replaced
configuration is itself backed up first, so no state is lost and a
restore can always be undone.

With no argument the most recent backup is offered, or an interactive
picker when several exist.`,
	Example: `  # Restore interactively
  nvsetup restore

  # Restore a specific backup (see: nvsetup backup list)
  nvsetup restore 20260824T101500`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	mgr := backupManager()

	records, err := mgr.List()
	if err != nil {
		if errors.Is(err, errors.ErrNoBackupsFound) {
			return errors.NewUserError(err, "There is nothing to restore; run nvsetup install first")
		}
		return errors.NewSystemError(err, "")
	}

	var id string
	switch {
	case len(args) == 1:
		id = args[0]
	case len(records) == 1:
		id = records[0].ID
	default:
		id, err = pickBackup(records)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				cmd.Println("Aborted.")
				return nil
			}
			return errors.NewSystemError(err, "")
		}
	}

	record, err := mgr.Restore(id)
	if err != nil {
		if errors.Is(err, errors.ErrNoBackupsFound) {
			return errors.NewUserError(err, "List available backups with: nvsetup backup list")
		}
		return errors.NewSystemError(err, "")
	}

	cmd.Printf("Restored %s to %s\n", record.ID, record.OriginalPath)
	return nil
}

// pickBackup shows an interactive fuzzy picker over the backup list and
// returns the chosen ID.
func pickBackup(records []backup.Record) (string, error) {
	idx, err := fuzzyfinder.Find(records, func(i int) string {
		return fmt.Sprintf("%s  (%s)", records[i].ID,
			records[i].CreatedAt.Format("2006-01-02 15:04:05"))
	})
	if err != nil {
		return "", err
	}
	return records[idx].ID, nil
}
