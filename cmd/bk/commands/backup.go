package commands

import (
	"context"
	"path/filepath"

	"github.com/thoreinstein/bk/internal/logging"
)

func runBackup(ctx context.Context, env *environment, source string) error {
	res, err := newManager(ctx, env).Backup(ctx, source)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("backup created", "source", res.Source, "backup", res.Backup)
	report(env, source, "Backed up as %s", res.Backup)
	return nil
}

// baseName returns the final element of path for messages.
func baseName(path string) string {
	return filepath.Base(path)
}
