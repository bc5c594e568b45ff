// Package paths centralizes filesystem path resolution for nvsetup.
//
// It resolves the Neovim configuration directory the same way Neovim
// itself does ($XDG_CONFIG_HOME/nvim, falling back to ~/.config/nvim),
// and places nvsetup's own configuration under the platform XDG config
// home via github.com/adrg/xdg.
//
// All functions that cannot resolve a path return an empty string; use
// ResolveHome when an error is needed instead.
package paths
