package backup

import (
	"context"
	"os"

	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/naming"
	"github.com/thoreinstein/bk/pkg/fileutil"
)

// step is one fallible stage of the restore pipeline.
type step struct {
	name string
	run  func() error
}

// Restore replaces the original file of backupPath with the backup's
// contents and removes the backup.
//
// The pipeline is: classify, confirm, replace the original (per the
// configured Strategy), remove the backup. The first failing stage stops the
// pipeline and its error is returned; nothing is rolled back. A refused
// confirmation returns ErrDeclined before any filesystem change.
func (m *Manager) Restore(ctx context.Context, backupPath string) (*RestoreResult, error) {
	if !naming.IsBackup(backupPath) {
		return nil, errors.NewPathError(backupPath, errors.ErrNotABackup)
	}

	original := naming.OriginalName(backupPath)
	// "dir/.bak" has no file name to restore to.
	if original == "" || os.IsPathSeparator(original[len(original)-1]) {
		return nil, errors.NewPathError(backupPath, errors.ErrNotABackup)
	}

	if info, err := m.fs.Stat(original); err == nil && info.IsDir() {
		return nil, errors.NewPathError(original, errors.ErrIsDirectory)
	}

	if !m.confirm(ctx, backupPath) {
		return nil, errors.ErrDeclined
	}

	if err := m.run(ctx, m.restoreSteps(backupPath, original)); err != nil {
		return nil, err
	}

	return &RestoreResult{
		Backup:   backupPath,
		Original: original,
		Strategy: m.strategy,
	}, nil
}

// confirm asks the configured Confirmer. Errors count as a refusal.
func (m *Manager) confirm(ctx context.Context, backupPath string) bool {
	if m.confirmer == nil {
		return true
	}
	ok, err := m.confirmer.Confirm(ctx, backupPath)
	if err != nil {
		m.logger.DebugContext(ctx, "confirmation unreadable, treating as declined", "error", err)
		return false
	}
	return ok
}

func (m *Manager) restoreSteps(backupPath, original string) []step {
	removeBackup := step{
		name: "remove backup",
		run: func() error {
			return errors.Wrapf(m.fs.Remove(backupPath), "removing %s", backupPath)
		},
	}

	if m.strategy == StrategyLegacy {
		return []step{
			{
				name: "remove original",
				run: func() error {
					err := m.fs.Remove(original)
					if err != nil && !os.IsNotExist(err) {
						return errors.Wrapf(err, "removing %s", original)
					}
					return nil
				},
			},
			{
				name: "copy backup over original",
				run: func() error {
					return errors.Wrapf(fileutil.CopyFile(m.fs, backupPath, original),
						"copying %s to %s", backupPath, original)
				},
			},
			removeBackup,
		}
	}

	return []step{
		{
			name: "stage and swap",
			run: func() error {
				return errors.Wrapf(fileutil.AtomicCopy(m.fs, backupPath, original),
					"restoring %s to %s", backupPath, original)
			},
		},
		removeBackup,
	}
}

// run executes steps in order and stops at the first failure.
func (m *Manager) run(ctx context.Context, steps []step) error {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "before %s", s.name)
		}
		m.logger.DebugContext(ctx, "restore step", "step", s.name, "strategy", string(m.strategy))
		if err := s.run(); err != nil {
			m.logger.DebugContext(ctx, "restore step failed", "step", s.name, "error", err)
			return err
		}
	}
	return nil
}
