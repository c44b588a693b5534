// Package cmd holds the build metadata printed by bk --version.
//
// Release builds set these with:
//
//	go build -ldflags "-X github.com/thoreinstein/bk/cmd.Version=v1.2.0 \
//	  -X github.com/thoreinstein/bk/cmd.Commit=$(git rev-parse HEAD) \
//	  -X github.com/thoreinstein/bk/cmd.Date=$(date -u +%FT%TZ)" ./cmd/bk
package cmd

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
