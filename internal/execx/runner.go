// Package execx abstracts external command execution behind a Runner
// interface so callers that shell out to package managers and installers
// can be tested with a recording fake instead of real system tools.
package execx

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Command is a program name plus a fixed argument list.
type Command struct {
	Name string
	Args []string
}

// New creates a Command from a program name and arguments.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String returns the command in shell-like form for display.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands. Implementations must be safe for
// sequential reuse; nvsetup never runs commands concurrently.
type Runner interface {
	// Run executes the command, streaming its output to the runner's
	// writers, and blocks until it completes. A non-zero exit is
	// returned as an error wrapping *exec.ExitError.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its combined standard
	// output, trimmed of trailing whitespace.
	Output(ctx context.Context, cmd Command) (string, error)

	// LookPath reports the full path of an executable, or an error if
	// it is not found on PATH.
	LookPath(name string) (string, error)
}

// execRunner runs commands with os/exec.
type execRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner that streams command output to os.Stdout and
// os.Stderr. Stdin is connected to os.Stdin to support interactive
// prompts (e.g., sudo password entry).
func NewRunner() Runner {
	return &execRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewRunnerWithIO creates a Runner with explicit input and output streams.
func NewRunnerWithIO(stdin io.Reader, stdout, stderr io.Writer) Runner {
	return &execRunner{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

func (r *execRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = r.stdin
	c.Stdout = r.stdout
	c.Stderr = r.stderr

	if err := c.Run(); err != nil {
		return errors.Wrapf(err, "running %s", cmd.String())
	}
	return nil
}

func (r *execRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	out, err := c.Output()
	if err != nil {
		return "", errors.Wrapf(err, "running %s", cmd.String())
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *execRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, "looking up %s", name)
	}
	return path, nil
}

// ExitCode extracts the exit code of a failed command from err.
// It returns the underlying process exit code if err wraps an
// *exec.ExitError, and fallback otherwise.
func ExitCode(err error, fallback int) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return fallback
}
