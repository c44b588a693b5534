// Package backup creates and restores numbered backups that live beside the
// file they were taken from.
//
// # Naming
//
// The first backup of report.csv is report.csv.bak; later ones are
// report.csv.bak.1, report.csv.bak.2, and so on. The next version is derived
// on every call by listing the source's directory (see [NextName]); there is
// no counter file, so deleting intermediate backups never causes a version
// to be reused while the newest one survives.
//
// # Creating Backups
//
//	mgr := backup.NewManager()
//	res, err := mgr.Backup(ctx, "report.csv")
//	// res.Backup == "report.csv.bak"
//
// # Restoring Backups
//
// [Manager.Restore] classifies the path, asks the [Confirmer], replaces the
// original and finally removes the backup:
//
//	mgr := backup.NewManager(backup.WithConfirmer(prompt.NewConfirmer("bk")))
//	res, err := mgr.Restore(ctx, "report.csv.bak.2")
//
// Two replacement strategies exist. [StrategySwap] (the default) stages the
// backup in a temporary file and renames it over the original, so a failed
// copy leaves the original untouched. [StrategyLegacy] deletes the original
// before copying; if that copy fails only the backup remains.
//
// # Filesystem
//
// All I/O goes through an [afero.Fs] supplied with [WithFs], which lets tests
// run against in-memory or fault-injecting filesystems.
//
// # Error Handling
//
//   - [errors.ErrNotABackup]: restore requested on a non-backup name
//   - [errors.ErrDeclined]: the user did not confirm a restore
//   - [ErrNoBackups]: nothing to list for a source
//
// Any other error wraps the underlying filesystem failure.
package backup
