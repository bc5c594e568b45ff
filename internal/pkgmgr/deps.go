package pkgmgr

import (
	"github.com/nvsetup/nvsetup/internal/execx"
)

// System package names differ slightly between distributions (fd-find vs
// fd, build-essential vs gcc), so each kind carries its own list.
var systemPackages = map[Kind][]string{
	KindPacman: {"nodejs", "npm", "python-pip", "ripgrep", "fd", "unzip", "gcc"},
	KindApt:    {"nodejs", "npm", "python3-pip", "ripgrep", "fd-find", "unzip", "build-essential"},
	KindDnf:    {"nodejs", "npm", "python3-pip", "ripgrep", "fd-find", "unzip", "gcc"},
}

// npmPackages are editor tooling installed globally via npm on every kind.
var npmPackages = []string{"pyright", "typescript", "typescript-language-server", "prettier"}

// pipPackages are Python tooling installed per-user via pip on every kind.
var pipPackages = []string{"pynvim", "black", "flake8"}

// Plan returns the ordered dependency-install command list for a package
// manager kind, with optional extra packages appended to each stage.
// For KindUnknown the plan is empty; callers print manual instructions
// instead of executing anything.
func Plan(kind Kind, extra Tools) []execx.Command {
	if !kind.Supported() {
		return nil
	}

	system := append([]string{}, systemPackages[kind]...)
	system = append(system, extra.System[kind]...)

	var cmds []execx.Command

	switch kind {
	case KindPacman:
		args := append([]string{"pacman", "-S", "--needed", "--noconfirm"}, system...)
		cmds = append(cmds, execx.New("sudo", args...))
	case KindApt:
		// Refresh indexes first; a stale container image otherwise fails
		// on packages that moved to a newer version.
		cmds = append(cmds, execx.New("sudo", "apt-get", "update"))
		args := append([]string{"apt-get", "install", "-y"}, system...)
		cmds = append(cmds, execx.New("sudo", args...))
	case KindDnf:
		args := append([]string{"dnf", "install", "-y"}, system...)
		cmds = append(cmds, execx.New("sudo", args...))
	}

	npm := append(append([]string{}, npmPackages...), extra.Npm...)
	npmArgs := append([]string{"npm", "install", "-g"}, npm...)
	cmds = append(cmds, execx.New("sudo", npmArgs...))

	pip := append(append([]string{}, pipPackages...), extra.Pip...)
	pipArgs := append([]string{"install", "--user"}, pip...)
	cmds = append(cmds, execx.New("pip3", pipArgs...))

	return cmds
}

// ManualInstructions describes what to install by hand when no supported
// package manager is present.
const ManualInstructions = `No supported package manager found (looked for pacman, apt, dnf).

Install the following manually, then re-run Neovim:

  System packages: nodejs npm python3-pip ripgrep fd unzip gcc
  npm packages:    pyright typescript typescript-language-server prettier
  pip packages:    pynvim black flake8
`
