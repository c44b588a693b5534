// Package naming implements the backup naming scheme used by bk.
//
// A backup of <source> is named <source>.bak for the first copy and
// <source>.bak.<N> for later ones, N being a positive integer without leading
// zeros. The functions here are pure: they never touch the filesystem.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Marker is the literal that separates a source name from the backup suffix.
const Marker = ".bak"

// suffixPattern matches the backup suffix at the end of a name. Stray dots
// between the marker and the digits are tolerated so that degenerate names
// such as "x.bak." still classify as backups.
var suffixPattern = regexp.MustCompile(`\.bak\.*[0-9]*$`)

// Name is a parsed backup name.
type Name struct {
	// Source is the original file name the backup was taken from.
	Source string

	// Version is the numeric suffix, 0 for the un-numbered first backup.
	Version int

	// Numbered reports whether the name carried digits after the marker.
	Numbered bool
}

// String formats n back into a backup name.
func (n Name) String() string {
	return Format(n.Source, n.Version)
}

// IsBackup reports whether path ends with a backup suffix.
func IsBackup(path string) bool {
	return suffixPattern.MatchString(path)
}

// OriginalName strips the backup suffix from name. Names that are not
// backups are returned unchanged.
func OriginalName(name string) string {
	loc := suffixPattern.FindStringIndex(name)
	if loc == nil {
		return name
	}
	return name[:loc[0]]
}

// Parse splits a backup name into its source and version.
// The second result is false when name is not a backup name.
func Parse(name string) (Name, bool) {
	loc := suffixPattern.FindStringIndex(name)
	if loc == nil {
		return Name{}, false
	}

	digits := strings.TrimLeft(name[loc[0]+len(Marker):], ".")
	n := Name{Source: name[:loc[0]]}
	if digits == "" {
		return n, true
	}

	v, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow can fail here; the pattern guarantees digits.
		return Name{}, false
	}
	n.Version = v
	n.Numbered = true
	return n, true
}

// Format builds the backup name of source for version. Version 0 yields the
// un-numbered first backup name.
func Format(source string, version int) string {
	if version <= 0 {
		return source + Marker
	}
	return source + Marker + "." + strconv.Itoa(version)
}

// HasBadExtension reports whether the trailing extension of name contains a
// space. Such names are not well-formed backups even if they match the
// directory scan.
func HasBadExtension(name string) bool {
	return strings.ContainsRune(filepath.Ext(name), ' ')
}
