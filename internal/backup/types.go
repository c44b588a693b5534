package backup

import (
	"context"
	"time"

	"github.com/thoreinstein/bk/internal/errors"
)

// Strategy selects how a restore replaces the original file.
type Strategy string

const (
	// StrategySwap copies the backup to a temporary file beside the original
	// and renames it into place, so the original is never missing.
	StrategySwap Strategy = "swap"

	// StrategyLegacy deletes the original, copies the backup over it, then
	// deletes the backup. A copy failure leaves neither the original nor a
	// restored file; only the backup survives.
	StrategyLegacy Strategy = "legacy"

	// DefaultStrategy is used when no strategy is configured.
	DefaultStrategy = StrategySwap
)

// Strategies returns the accepted strategy names.
func Strategies() []string {
	return []string{string(StrategySwap), string(StrategyLegacy)}
}

// ParseStrategy converts a name into a Strategy. The empty string yields
// DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return DefaultStrategy, nil
	case StrategySwap, StrategyLegacy:
		return Strategy(s), nil
	default:
		return "", errors.Wrapf(ErrUnknownStrategy, "%q", s)
	}
}

// Sentinel errors for backup operations.
var (
	// ErrNoBackups indicates a source has no backups to list or pick from.
	ErrNoBackups = errors.New("no backups found")

	// ErrVersionsExhausted indicates an existing backup already holds the
	// largest representable version, so no higher one can be allocated.
	ErrVersionsExhausted = errors.New("backup versions exhausted")

	// ErrUnknownStrategy indicates an unrecognised restore strategy name.
	ErrUnknownStrategy = errors.New("unknown restore strategy")
)

// Confirmer asks the user to approve a restore of the named backup.
// An error is treated the same as a refusal.
type Confirmer interface {
	Confirm(ctx context.Context, backupName string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, backupName string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, backupName string) (bool, error) {
	return f(ctx, backupName)
}

// Result describes a completed backup.
type Result struct {
	// Source is the path that was backed up, as given by the caller.
	Source string

	// Backup is the path of the newly created backup.
	Backup string
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	// Backup is the backup that was restored and then removed.
	Backup string

	// Original is the path the backup was restored to.
	Original string

	// Strategy is the replacement strategy that was used.
	Strategy Strategy
}

// Entry describes one existing backup of a source file.
type Entry struct {
	Name    string    `json:"name" yaml:"name" toml:"name"`
	Version int       `json:"version" yaml:"version" toml:"version"`
	Size    int64     `json:"size" yaml:"size" toml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time" toml:"mod_time"`
}
