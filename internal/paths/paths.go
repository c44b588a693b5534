package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/bk/internal/errors"
)

// AppName is the application name used for directory and config naming.
const AppName = "bk"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding bk's config.yaml.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths without ~, or when the home directory is unknown, are returned unchanged.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := ResolveHome()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}

	return path
}

// ProgramName returns the base name of the executable as invoked, used as the
// prefix of every message bk prints. It falls back to AppName.
func ProgramName(arg0 string) string {
	if arg0 == "" {
		return AppName
	}
	name := filepath.Base(arg0)
	name = strings.TrimSuffix(name, ".exe")
	if name == "." || name == string(filepath.Separator) || name == "" {
		return AppName
	}
	return name
}
