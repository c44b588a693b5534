// Package paths resolves the locations bk reads from: its configuration
// directory, user-supplied paths starting with "~", and its own program name
// for messages.
//
// # XDG Base Directories
//
// The package wraps github.com/adrg/xdg so the configuration directory
// follows the XDG base directory layout: $XDG_CONFIG_HOME/bk on Linux
// (~/.config/bk by default).
package paths
