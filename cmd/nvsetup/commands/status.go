package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/assets"
	"github.com/nvsetup/nvsetup/internal/backup"
	"github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
	"github.com/nvsetup/nvsetup/internal/paths"
	"github.com/nvsetup/nvsetup/internal/pkgmgr"
	"github.com/nvsetup/nvsetup/pkg/fileutil"
)

var statusFlags struct {
	json bool
}

func init() {
	statusCmd.Flags().BoolVar(&statusFlags.json, "json", false,
		"output status as JSON")

	rootCmd.AddCommand(statusCmd)
}

// statusInfo is the machine-readable shape of the status report.
type statusInfo struct {
	ConfigDir      string `json:"config_dir"`
	Installed      bool   `json:"installed"`
	MatchesBundled bool   `json:"matches_bundled"`
	PackageManager string `json:"package_manager"`
	Backups        int    `json:"backups"`
	LatestBackup   string `json:"latest_backup,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the installed configuration and its backups",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	configDir := appConfig.ConfigDir
	if configDir == "" {
		configDir = paths.NvimConfigDir()
	}

	info := statusInfo{
		ConfigDir:      configDir,
		PackageManager: pkgmgr.Detect(execx.NewRunner().LookPath).String(),
	}

	initPath := filepath.Join(configDir, paths.ConfigFileName)
	if data, err := fileutil.ReadFileWithLimit(initPath); err == nil {
		info.Installed = true
		info.MatchesBundled = bytes.Equal(data, assets.InitLua)
	} else if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, fileutil.ErrFileTooLarge) {
		return errors.NewSystemError(err, "")
	}

	records, err := backup.NewManager(configDir).List()
	if err != nil && !errors.Is(err, errors.ErrNoBackupsFound) {
		return errors.NewSystemError(err, "")
	}
	info.Backups = len(records)
	if len(records) > 0 {
		info.LatestBackup = records[0].ID
	}

	if statusFlags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Config directory:  %s\n", info.ConfigDir)
	switch {
	case !info.Installed:
		fmt.Fprintf(w, "Configuration:     %s\n", color.YellowString("not installed"))
	case info.MatchesBundled:
		fmt.Fprintf(w, "Configuration:     %s\n", color.GreenString("installed (bundled)"))
	default:
		fmt.Fprintf(w, "Configuration:     %s\n", color.GreenString("installed (customized)"))
	}
	fmt.Fprintf(w, "Package manager:   %s\n", info.PackageManager)
	fmt.Fprintf(w, "Backups:           %d\n", info.Backups)
	if info.LatestBackup != "" {
		fmt.Fprintf(w, "Latest backup:     %s\n", info.LatestBackup)
	}
	return nil
}
