package commands

import (
	"context"

	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/cli/prompt"
	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/logging"
	"github.com/thoreinstein/bk/internal/naming"
)

func runRestore(ctx context.Context, env *environment, backupPath string) error {
	res, err := newManager(ctx, env).Restore(ctx, backupPath)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("backup restored",
		"backup", res.Backup, "original", res.Original, "strategy", string(res.Strategy))
	report(env, backupPath, "Restored as %s", res.Original)
	return nil
}

// runPickRestore lets the user choose a backup of file, then restores it.
// file may name the source or any of its backups.
func runPickRestore(ctx context.Context, env *environment, file string) error {
	source := naming.OriginalName(file)

	entries, err := newManager(ctx, env).List(ctx, source)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackups) {
			return errors.NewUserError(errors.NewPathError(source, err), "")
		}
		return err
	}

	var picked *backup.Entry
	if env.terminal {
		picked, err = prompt.FindBackup(entries)
	} else {
		picked, err = prompt.NewSelectorWithIO(env.stdin, env.stdout).SelectBackup(source, entries)
	}
	switch {
	case errors.Is(err, prompt.ErrSelectionCancelled):
		return errors.ErrDeclined
	case errors.Is(err, prompt.ErrInvalidSelection):
		return errors.NewUserError(err, "")
	case err != nil:
		return err
	}

	return runRestore(ctx, env, picked.Name)
}
