package backup

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/naming"
)

// candidate is a directory entry recognised as a backup of the scanned source.
type candidate struct {
	path     string
	version  int
	numbered bool
	info     os.FileInfo
}

// scan lists the directory of source and returns every well-formed backup of
// exactly that source. The directory listing is the only state: no counter
// or metadata file exists.
func scan(fsys afero.Fs, source string) ([]candidate, error) {
	dir := filepath.Dir(source)
	base := filepath.Base(source)
	prefix := source[:len(source)-len(base)]

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}

	var found []candidate
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, base) {
			continue
		}
		if naming.HasBadExtension(name) {
			continue
		}
		parsed, ok := naming.Parse(name)
		if !ok || parsed.Source != base {
			// Sibling such as "<base>x.bak.3": not ours.
			continue
		}
		found = append(found, candidate{
			path:     prefix + name,
			version:  parsed.Version,
			numbered: strings.HasPrefix(name[len(base):], naming.Marker+"."),
			info:     e,
		})
	}

	slices.SortFunc(found, func(a, b candidate) int {
		return a.version - b.version
	})
	return found, nil
}

// NextName returns the name the next backup of source should take.
//
// With no numbered backups on disk the result is <source>.bak, or
// <source>.bak.1 when <source>.bak already exists. Otherwise it is one past
// the highest existing version, so versions are never reused while the
// newest backup survives.
func NextName(fsys afero.Fs, source string) (string, error) {
	found, err := scan(fsys, source)
	if err != nil {
		return "", err
	}

	next := 0
	for _, c := range found {
		// Only names matching <source>*.bak.* take part in numbering;
		// a bare "<source>.bak." counts as version 0 and yields 1.
		if !c.numbered {
			continue
		}
		if c.version == math.MaxInt {
			return "", errors.Wrapf(ErrVersionsExhausted, "%s", c.path)
		}
		next = max(next, c.version+1)
	}
	if next > 0 {
		return naming.Format(source, next), nil
	}

	first := naming.Format(source, 0)
	exists, err := afero.Exists(fsys, first)
	if err != nil {
		return "", errors.Wrapf(err, "checking %s", first)
	}
	if exists {
		return naming.Format(source, 1), nil
	}
	return first, nil
}
