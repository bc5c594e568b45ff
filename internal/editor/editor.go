// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/nvsetup/nvsetup/internal/execx"
)

// Detect returns the editor command to use. Fallback chain:
// $EDITOR, $VISUAL, nvim, vi. nvim comes before vi because this tool
// exists to set up Neovim; once installed it is the editor of choice.
func Detect(lookPath func(string) (string, error)) string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := lookPath("nvim"); err == nil {
		return "nvim"
	}
	return "vi"
}

// Open launches the detected editor on the given path, attached to the
// caller's terminal, and blocks until it exits.
func Open(ctx context.Context, runner execx.Runner, path string) error {
	cmd := execx.New(Detect(runner.LookPath), path)
	if err := runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}
