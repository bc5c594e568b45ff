// Package pkgmgr detects the host OS package manager and defines the
// fixed dependency-install command lists nvsetup runs for each one.
//
// Detection probes for executables in fixed priority order (pacman, apt,
// dnf) through an injectable lookup function, so tests never touch the
// real PATH. The command lists are static data: for every supported kind,
// Plan returns the same ordered sequence of commands, optionally extended
// by the user's tools.toml overlay.
package pkgmgr
