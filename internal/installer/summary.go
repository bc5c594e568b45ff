package installer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintSummary emits the final usage instructions after a successful run.
func PrintSummary(w io.Writer, result *Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	fmt.Fprintln(w)
	green.Fprintln(w, "Neovim configuration installed.")
	fmt.Fprintf(w, "  Config:          %s\n", result.ConfigPath)
	fmt.Fprintf(w, "  Package manager: %s\n", result.Kind)
	if result.Backup != nil {
		fmt.Fprintf(w, "  Previous config: %s\n", result.Backup.BackupPath)
	}
	fmt.Fprintln(w)
	bold.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Start Neovim:        nvim")
	fmt.Fprintln(w, "  2. Check health:        :checkhealth")
	if result.Backup != nil {
		fmt.Fprintln(w, "  3. Restore old config:  nvsetup restore "+result.Backup.ID)
	}
}
