// Package backup creates and manages timestamped backups of the Neovim
// configuration directory.
//
// A backup is the configuration directory renamed in place to
// "<original>.backup.<timestamp>" (e.g., nvim.backup.20260824T101500).
// Because backups are renames rather than copies, creating one is atomic
// on the same filesystem and costs nothing regardless of how large the
// configuration tree is. At most one backup is created per installer run.
//
// The Manager also lists, restores, and prunes these siblings. Restore is
// symmetric with Create: the current directory is backed up first, then
// the chosen backup is renamed back into place (consuming it).
package backup
