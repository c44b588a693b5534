// Package main is the entry point for the bk CLI.
package main

import (
	"os"

	"github.com/thoreinstein/bk/cmd/bk/commands"
)

func main() {
	os.Exit(commands.Execute())
}
