package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates any reported error (usage, naming, or I/O).
	ExitFailure = 1
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoSuchFile indicates the target file does not exist.
	ErrNoSuchFile = crdb.New("No such file or directory")

	// ErrIsDirectory indicates the target is a directory, which bk never backs up.
	ErrIsDirectory = crdb.New("Is a directory")

	// ErrNotABackup indicates a restore was requested on a path that is not a backup name.
	ErrNotABackup = crdb.New("Is not a backup file")

	// ErrDeclined indicates the user did not confirm a restore. It is a normal outcome.
	ErrDeclined = crdb.New("restore declined")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Re-exported helpers from github.com/cockroachdb/errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Errorf = crdb.Errorf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
	Join   = crdb.Join
)

// PathError attaches the offending path to a usage sentinel so the message
// reads "<path>: <reason>" while errors.Is still matches the sentinel.
type PathError struct {
	Path string
	Err  error
}

// NewPathError creates a PathError for path and sentinel err.
func NewPathError(path string, err error) *PathError {
	return &PathError{Path: path, Err: err}
}

func (e *PathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitFailure code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitFailure,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitFailure code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitFailure,
		Suggestion: "Check the bk config file or the BK_* environment variables",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
// A nil error and ErrDeclined both map to ExitSuccess.
func ExitCode(err error) int {
	if err == nil || Is(err, ErrDeclined) {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
