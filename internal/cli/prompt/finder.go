package prompt

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/errors"
)

// FindBackup opens a fuzzy finder over entries on the terminal and returns
// the chosen backup. Aborting the finder returns ErrSelectionCancelled.
func FindBackup(entries []backup.Entry) (*backup.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoBackups
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return entries[i].Name
		},
		fuzzyfinder.WithPromptString("restore> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return describe(entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	return &entries[idx], nil
}

// describe renders the preview pane for one backup.
func describe(e backup.Entry) string {
	version := "first (un-numbered)"
	if e.Version > 0 {
		version = fmt.Sprintf("%d", e.Version)
	}
	return fmt.Sprintf("Backup:   %s\nVersion:  %s\nSize:     %s\nModified: %s (%s)",
		e.Name,
		version,
		humanize.Bytes(uint64(max(e.Size, 0))),
		e.ModTime.Format(time.RFC3339),
		humanize.Time(e.ModTime),
	)
}
