package commands

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bk/internal/logging"
)

func testEnvironment(fsys afero.Fs, stdin string) (*environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &environment{
		fs:      fsys,
		stdin:   strings.NewReader(stdin),
		stdout:  &stdout,
		stderr:  &stderr,
		program: "bk",
	}, &stdout, &stderr
}

// newTestRootCmd builds a root command, which resets every flag variable.
func newTestRootCmd(t *testing.T) *cobra.Command {
	t.Helper()
	env, _, _ := testEnvironment(afero.NewMemMapFs(), "")
	return newRootCmd(env)
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"report only (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newTestRootCmd(t)
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"BK_DEBUG=1", "1", slog.LevelDebug},
		{"BK_DEBUG=true", "true", slog.LevelDebug},
		{"BK_DEBUG=2", "2", logging.LevelTrace},
		{"BK_DEBUG=0", "0", slog.LevelWarn},
		{"BK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newTestRootCmd(t)
			t.Setenv("BK_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}

			if tt.wantLevel == slog.LevelDebug {
				if logger.Enabled(t.Context(), logging.LevelTrace) {
					t.Error("expected Trace level to be disabled when BK_DEBUG=1")
				}
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	rootCmd := newTestRootCmd(t)
	t.Setenv("BK_DEBUG", "2")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	rootCmd := newTestRootCmd(t)
	quiet = true

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slog.Default().Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected Warn level to be disabled in quiet mode")
	}

	verbosity = 1
	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for --quiet with --verbose")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	rootCmd := newTestRootCmd(t)
	logFile = t.TempDir() + "/bk.log"
	t.Cleanup(func() { _ = closeLogFile() })
	verbosity = 2

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	slog.Default().Debug("written to both handlers", "k", "v")

	data, err := afero.ReadFile(afero.NewOsFs(), logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"written to both handlers"`) {
		t.Errorf("log file missing JSON record: %s", data)
	}
}
