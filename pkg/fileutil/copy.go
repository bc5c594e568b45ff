package fileutil

import (
	"io"
	"os"

	"github.com/nvsetup/nvsetup/internal/errors"
)

// CopyFile copies a file from src to dst, preserving the source file's
// permission bits. The destination is created with 0644 permissions
// initially, then updated to match the source.
//
// The caller is responsible for ensuring the parent directory of dst exists.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "creating destination file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, srcInfo.Mode()); err != nil {
		return errors.Wrap(err, "setting permissions")
	}

	return nil
}
