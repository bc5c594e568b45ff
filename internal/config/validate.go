package config

import (
	"os"

	"github.com/cockroachdb/errors"

	nverrors "github.com/nvsetup/nvsetup/internal/errors"
	"github.com/nvsetup/nvsetup/internal/pkgmgr"
)

// Validate checks the loaded configuration for values nvsetup cannot act on.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(nverrors.ErrInvalidConfig, "nil config")
	}

	if cfg.PackageManager != "" {
		kind := pkgmgr.Kind(cfg.PackageManager)
		if !kind.Supported() && kind != pkgmgr.KindUnknown {
			return errors.Wrapf(nverrors.ErrInvalidConfig,
				"package_manager %q is not one of pacman, apt, dnf, unknown", cfg.PackageManager)
		}
	}

	if cfg.SourceFile != "" {
		info, err := os.Stat(cfg.SourceFile)
		if err != nil {
			return errors.Wrapf(nverrors.ErrInvalidConfig, "source_file %q: %v", cfg.SourceFile, err)
		}
		if info.IsDir() {
			return errors.Wrapf(nverrors.ErrInvalidConfig, "source_file %q is a directory", cfg.SourceFile)
		}
	}

	return nil
}
