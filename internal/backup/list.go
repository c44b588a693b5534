package backup

import (
	"context"
)

// List returns every backup of source, ordered by version (the un-numbered
// first backup comes first). Returns ErrNoBackups if there are none.
func (m *Manager) List(ctx context.Context, source string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found, err := scan(m.fs, source)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoBackups
	}

	entries := make([]Entry, 0, len(found))
	for _, c := range found {
		entries = append(entries, Entry{
			Name:    c.path,
			Version: c.version,
			Size:    c.info.Size(),
			ModTime: c.info.ModTime(),
		})
	}
	return entries, nil
}
