package fileutil

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/bk/internal/errors"
)

// TempPattern is the name pattern of staging files created next to a target.
const TempPattern = ".bk-atomic-*.tmp"

// AtomicCopy replaces dst with the contents of src using a temp file + rename.
// An interrupted or failed copy leaves any existing dst intact.
//
// The temp file is created in the directory of dst so the rename never
// crosses filesystems.
func AtomicCopy(fsys afero.Fs, src, dst string) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(dst), TempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	// Track temp file name for cleanup
	defer func() {
		// Only remove if rename failed (file still exists)
		if exists, _ := afero.Exists(fsys, tmpName); exists {
			fsys.Remove(tmpName)
		}
	}()

	if err := CopyFile(fsys, src, tmpName); err != nil {
		return errors.Wrap(err, "staging copy")
	}

	if err := fsys.Rename(tmpName, dst); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}
