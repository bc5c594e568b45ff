package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvsetup/nvsetup/internal/doctor"
	"github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/execx"
)

var doctorFlags struct {
	json bool
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFlags.json, "json", false,
		"output the report as JSON")

	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment nvsetup installs into",
	Long: `Doctor runs a set of read-only checks: whether nvim is on PATH,
which package manager is available, the state of the configuration
directory, and whether the language toolchain is installed.

The exit code reflects the report: 0 when everything passes, 1 when
there are warnings, 2 when there are errors.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	runner := doctor.NewRunner()
	for _, check := range doctor.DefaultChecks(execx.NewRunner(), appConfig.ConfigDir) {
		runner.AddCheck(check)
	}

	report := runner.Run()

	if doctorFlags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.NewSystemError(err, "")
		}
	} else {
		printReport(cmd.OutOrStdout(), report)
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(nil, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(nil, errors.ExitUser)
	default:
		return nil
	}
}

// severityLabel returns a colored, fixed-width marker for a result line.
func severityLabel(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("i")
	case doctor.SeverityWarning:
		return color.YellowString("!")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

func printReport(w io.Writer, report *doctor.Report) {
	var category string
	for _, result := range report.Results {
		if result.Category != category {
			category = result.Category
			fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint(category))
		}
		fmt.Fprintf(w, "  %s %s: %s\n", severityLabel(result.Status), result.Name, result.Message)
		if result.FixHint != "" && result.Status > doctor.SeverityPass {
			fmt.Fprintf(w, "      hint: %s\n", result.FixHint)
		}
	}

	s := report.Summary
	fmt.Fprintf(w, "\n%d passed, %d info, %d warning(s), %d error(s)\n",
		s.Passed, s.Info, s.Warnings, s.Errors)
}
