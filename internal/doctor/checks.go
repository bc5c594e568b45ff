package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvsetup/nvsetup/internal/execx"
	"github.com/nvsetup/nvsetup/internal/paths"
	"github.com/nvsetup/nvsetup/internal/pkgmgr"
)

// NvimCheck verifies the Neovim binary is present and reports its version.
type NvimCheck struct {
	runner execx.Runner
}

var _ Check = (*NvimCheck)(nil)

// NewNvimCheck creates the editor precondition check.
func NewNvimCheck(runner execx.Runner) *NvimCheck {
	return &NvimCheck{runner: runner}
}

// Name returns the unique identifier for this check.
func (c *NvimCheck) Name() string {
	return "nvim-binary"
}

// Category returns the grouping for this check.
func (c *NvimCheck) Category() string {
	return "editor"
}

// Run executes the editor check.
func (c *NvimCheck) Run() *CheckResult {
	path, err := c.runner.LookPath("nvim")
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "nvim not found on PATH",
			FixHint:  "install Neovim with your package manager, then re-run nvsetup doctor",
		}
	}

	details := map[string]any{"path": path}

	// Best effort; a failing --version is odd but not fatal for the check.
	if out, err := c.runner.Output(context.Background(), execx.New("nvim", "--version")); err == nil {
		if line, _, ok := strings.Cut(out, "\n"); ok {
			details["version"] = line
		} else {
			details["version"] = out
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "nvim found at " + path,
		Details:  details,
	}
}

// PackageManagerCheck reports which supported package manager was detected.
type PackageManagerCheck struct {
	runner execx.Runner
}

var _ Check = (*PackageManagerCheck)(nil)

// NewPackageManagerCheck creates the package manager detection check.
func NewPackageManagerCheck(runner execx.Runner) *PackageManagerCheck {
	return &PackageManagerCheck{runner: runner}
}

// Name returns the unique identifier for this check.
func (c *PackageManagerCheck) Name() string {
	return "package-manager"
}

// Category returns the grouping for this check.
func (c *PackageManagerCheck) Category() string {
	return "packages"
}

// Run executes the package manager detection check.
func (c *PackageManagerCheck) Run() *CheckResult {
	kind := pkgmgr.Detect(c.runner.LookPath)

	if !kind.Supported() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no supported package manager found (pacman, apt, dnf)",
			Details:  map[string]any{"kind": kind.String()},
			FixHint:  "nvsetup install will print manual install instructions instead of running anything",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "detected " + kind.String(),
		Details:  map[string]any{"kind": kind.String()},
	}
}

// ConfigDirCheck inspects the Neovim configuration directory.
type ConfigDirCheck struct {
	dir string
}

var _ Check = (*ConfigDirCheck)(nil)

// NewConfigDirCheck creates the config directory check. An empty dir
// means the standard Neovim location.
func NewConfigDirCheck(dir string) *ConfigDirCheck {
	if dir == "" {
		dir = paths.NvimConfigDir()
	}
	return &ConfigDirCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *ConfigDirCheck) Name() string {
	return "config-directory"
}

// Category returns the grouping for this check.
func (c *ConfigDirCheck) Category() string {
	return "filesystem"
}

// Run executes the config directory check.
func (c *ConfigDirCheck) Run() *CheckResult {
	details := map[string]any{"path": c.dir}

	info, err := os.Stat(c.dir)
	if os.IsNotExist(err) {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "no configuration installed yet",
			Details:  details,
			FixHint:  "run: nvsetup install",
		}
	}
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot stat config directory: %v", err),
			Details:  details,
		}
	}

	if !info.IsDir() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "expected directory but found file",
			Details:  details,
			FixHint:  "move " + c.dir + " aside and re-run nvsetup install",
		}
	}

	if !isWritable(c.dir) {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "config directory is not writable",
			Details:  details,
			FixHint:  "chmod u+w " + c.dir,
		}
	}

	initPath := filepath.Join(c.dir, paths.ConfigFileName)
	if _, err := os.Stat(initPath); err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "config directory exists but has no " + paths.ConfigFileName,
			Details:  details,
			FixHint:  "run: nvsetup install",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "configuration installed at " + c.dir,
		Details:  details,
	}
}

// isWritable checks a directory by creating and removing a temp file,
// which is more reliable than inspecting permission bits.
func isWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".nvsetup-write-check-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// toolchainBinaries are the external tools the dependency stages rely on.
var toolchainBinaries = []string{"node", "npm", "python3", "pip3"}

// ToolchainCheck probes for the runtimes the installed tooling needs.
type ToolchainCheck struct {
	runner execx.Runner
}

var _ Check = (*ToolchainCheck)(nil)

// NewToolchainCheck creates the toolchain presence check.
func NewToolchainCheck(runner execx.Runner) *ToolchainCheck {
	return &ToolchainCheck{runner: runner}
}

// Name returns the unique identifier for this check.
func (c *ToolchainCheck) Name() string {
	return "toolchain"
}

// Category returns the grouping for this check.
func (c *ToolchainCheck) Category() string {
	return "packages"
}

// Run executes the toolchain check.
func (c *ToolchainCheck) Run() *CheckResult {
	var missing []string
	found := make(map[string]any, len(toolchainBinaries))

	for _, bin := range toolchainBinaries {
		path, err := c.runner.LookPath(bin)
		if err != nil {
			missing = append(missing, bin)
			continue
		}
		found[bin] = path
	}

	details := map[string]any{"found": found}

	if len(missing) > 0 {
		details["missing"] = missing
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("%d tool(s) missing: %s", len(missing), strings.Join(missing, ", ")),
			Details:  details,
			FixHint:  "run: nvsetup install (installs node, npm, pip and the language tooling)",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "all required tools present",
		Details:  details,
	}
}

// DefaultChecks returns the standard check set in display order.
func DefaultChecks(runner execx.Runner, configDir string) []Check {
	return []Check{
		NewNvimCheck(runner),
		NewPackageManagerCheck(runner),
		NewConfigDirCheck(configDir),
		NewToolchainCheck(runner),
	}
}
