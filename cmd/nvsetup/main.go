// Package main is the entry point for the nvsetup CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nvsetup/nvsetup/cmd/nvsetup/commands"
	nverrors "github.com/nvsetup/nvsetup/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *nverrors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
			}
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(nverrors.ExitUser)
	}
}
