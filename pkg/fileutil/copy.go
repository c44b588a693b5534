// Package fileutil provides the file primitives bk builds on: a plain copy
// and an atomic copy that stages through a temporary file and a rename.
//
// All functions operate on an [afero.Fs] so callers can substitute an
// in-memory or fault-injecting filesystem.
package fileutil

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/thoreinstein/bk/internal/errors"
)

// CopyFile copies the contents of src to dst, creating or truncating dst.
// The destination receives the permission bits of the source.
func CopyFile(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile ignores perm for existing files.
	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "setting permissions")
	}

	return nil
}
