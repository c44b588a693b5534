package backup

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/pkg/fileutil"
)

// Manager handles backup creation, restoration, and listing.
type Manager struct {
	fs        afero.Fs
	strategy  Strategy
	confirmer Confirmer
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem the manager operates on.
func WithFs(fsys afero.Fs) Option {
	return func(m *Manager) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

// WithStrategy sets the restore strategy.
func WithStrategy(s Strategy) Option {
	return func(m *Manager) {
		if s != "" {
			m.strategy = s
		}
	}
}

// WithConfirmer sets the confirmation step of Restore.
// Without a Confirmer, restores proceed unprompted.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) {
		m.confirmer = c
	}
}

// WithLogger sets the logger used for step tracing.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a new backup Manager with the given options.
// It defaults to the OS filesystem and DefaultStrategy.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		fs:       afero.NewOsFs(),
		strategy: DefaultStrategy,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Strategy returns the configured restore strategy.
func (m *Manager) Strategy() Strategy {
	return m.strategy
}

// Backup copies source to the next free backup name beside it.
// Exactly one file is created and source is left untouched. A failed copy
// is returned as is; it is never retried.
func (m *Manager) Backup(ctx context.Context, source string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := NextName(m.fs, source)
	if err != nil {
		return nil, errors.Wrap(err, "allocating backup name")
	}
	m.logger.DebugContext(ctx, "allocated backup name", "source", source, "backup", target)

	if err := fileutil.CopyFile(m.fs, source, target); err != nil {
		return nil, errors.Wrapf(err, "copying %s to %s", source, target)
	}

	m.logger.DebugContext(ctx, "backup created", "backup", target)
	return &Result{Source: source, Backup: target}, nil
}
