package pkgmgr

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nvsetup/nvsetup/internal/errors"
)

// Tools is an optional overlay of extra packages appended to the built-in
// dependency sets. It is loaded from tools.toml in nvsetup's config
// directory:
//
//	[packages]
//	pacman = ["lazygit"]
//	apt = ["lazygit"]
//	dnf = ["lazygit"]
//	npm = ["eslint"]
//	pip = ["ruff"]
type Tools struct {
	System map[Kind][]string
	Npm    []string
	Pip    []string
}

// toolsFile is the on-disk TOML shape.
type toolsFile struct {
	Packages struct {
		Pacman []string `toml:"pacman"`
		Apt    []string `toml:"apt"`
		Dnf    []string `toml:"dnf"`
		Npm    []string `toml:"npm"`
		Pip    []string `toml:"pip"`
	} `toml:"packages"`
}

// LoadTools reads the extra-packages overlay from path.
// A missing file is not an error; it returns an empty overlay.
func LoadTools(path string) (Tools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Tools{}, nil
		}
		return Tools{}, errors.Wrap(err, "reading tools file")
	}

	var f toolsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Tools{}, errors.Wrapf(err, "parsing %s", path)
	}

	return Tools{
		System: map[Kind][]string{
			KindPacman: f.Packages.Pacman,
			KindApt:    f.Packages.Apt,
			KindDnf:    f.Packages.Dnf,
		},
		Npm: f.Packages.Npm,
		Pip: f.Packages.Pip,
	}, nil
}
