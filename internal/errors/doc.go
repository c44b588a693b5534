// Package errors provides error handling conventions for the bk CLI.
//
// This package defines sentinel errors for the failure conditions of the
// backup and restore pipelines, an ExitError type for CLI exit code handling,
// and re-exports the wrapping helpers of [github.com/cockroachdb/errors] so
// every package annotates errors the same way.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, bkerrors.ErrNotABackup) {
//	    // handle restore of a non-backup path
//	}
//
// [ErrDeclined] is not a failure: it reports that the user did not confirm a
// restore, and the entry point exits with [ExitSuccess].
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully, or the user declined
//   - ExitFailure (1): Any reported error
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. It supports error unwrapping via [Unwrap] and [As]:
//
//	err := bkerrors.NewUserError(bkerrors.ErrIsDirectory, "bk only backs up regular files")
//	var exitErr *bkerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
