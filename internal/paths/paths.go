package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the application name used for config file naming.
const AppName = "nvsetup"

// ConfigFileName is the Neovim entry point file installed by nvsetup.
const ConfigFileName = "init.lua"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0755) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// NvimConfigDir returns the Neovim configuration directory.
//
// Neovim resolves its config directory as $XDG_CONFIG_HOME/nvim, falling
// back to ~/.config/nvim on every Unix-like platform (including macOS,
// where it does NOT use ~/Library). We mirror that resolution here rather
// than using xdg.ConfigHome, which follows the platform convention.
//
// Returns an empty string if the home directory cannot be determined
// and XDG_CONFIG_HOME is unset.
func NvimConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "nvim")
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "nvim")
}

// NvimConfigPath returns the path of the installed init.lua.
// Returns an empty string if the config directory cannot be determined.
func NvimConfigPath() string {
	dir := NvimConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// AppConfigDir returns nvsetup's own configuration directory.
// On Linux: ~/.config/nvsetup
// On macOS: ~/Library/Application Support/nvsetup
// On Windows: %LOCALAPPDATA%\nvsetup
func AppConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// AppConfigPath returns the path of nvsetup's config.yaml.
func AppConfigPath() string {
	return filepath.Join(AppConfigDir(), "config.yaml")
}

// ToolsPath returns the path of the optional tools.toml overlay, which
// adds extra packages to the built-in dependency sets.
func ToolsPath() string {
	return filepath.Join(AppConfigDir(), "tools.toml")
}
