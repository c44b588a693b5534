// Package logging provides structured logging for the bk CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Verbosity
//
// The CLI maps repeated -v flags onto levels with [LevelFromVerbosity]; the
// deepest level, [LevelTrace], sits below Debug. The configured logger travels
// in the command context ([NewContext], [FromContext]).
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Fan-out
//
// [MultiHandler] sends each record to several handlers; bk uses it to mirror
// terminal logs into a JSON --log-file.
package logging
