// Package commands implements the bk command line.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bk/cmd"
	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/cli/prompt"
	"github.com/thoreinstein/bk/internal/config"
	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/logging"
	"github.com/thoreinstein/bk/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// logFileHandle is the open --log-file, closed by closeLogFile.
var logFileHandle *os.File

// configFile holds the value of the --config flag.
var configFile string

// Mode and restore flags.
var (
	restoreFlag     bool
	listFlag        bool
	interactiveFlag bool
	assumeYes       bool
	strategyFlag    string
	outputFormat    string
)

// environment is everything a run touches outside of its arguments.
type environment struct {
	fs      afero.Fs
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	program string

	// terminal reports whether stdin is attached to a terminal, which
	// selects the fuzzy finder over the numbered prompt for -r -i.
	terminal bool
}

func defaultEnvironment() *environment {
	return &environment{
		fs:       afero.NewOsFs(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		program:  paths.ProgramName(os.Args[0]),
		terminal: logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout),
	}
}

// newRootCmd builds the bk command. Building it binds every flag variable
// back to its default.
func newRootCmd(env *environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.program + " [flags] FILE",
		Short: "Make and restore numbered backups of a file",
		Long: `bk copies FILE to a backup beside it. The first backup is FILE.bak,
later ones FILE.bak.1, FILE.bak.2 and so on; the next number is always one
past the highest existing one.

With --restore, FILE must be a backup. After confirmation its contents
replace the original file and the backup is removed.`,
		Example: `  # Back up a file
  bk report.csv

  # Restore the third backup, printing what was done
  bk -v -r report.csv.bak.2

  # Pick a backup of report.csv to restore
  bk -r -i report.csv

  # Show existing backups as JSON
  bk -l --format json report.csv`,
		Args: cobra.ExactArgs(1),
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			cfg, cfgErr := loadConfig()
			if cfgErr == nil {
				applyConfig(c, cfg)
			}
			// Initialize logging first
			if err := setupLogging(c); err != nil {
				return err
			}
			if cfgErr != nil {
				return errors.NewConfigError(cfgErr)
			}
			return validateFlags()
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runRoot(c.Context(), env, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.CountVarP(&verbosity, "verbose", "v",
		"report the action taken; repeat for debug logs (e.g., -v, -vv)")
	flags.BoolVarP(&quiet, "quiet", "q", false,
		"suppress everything but errors")
	flags.StringVar(&logFormat, "log-format", string(logging.FormatText),
		"log format: text, json")
	flags.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	flags.StringVar(&configFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/bk/config.yaml)")
	flags.BoolVarP(&restoreFlag, "restore", "r", false,
		"restore FILE, which must be a backup")
	flags.BoolVarP(&listFlag, "list", "l", false,
		"list the backups of FILE")
	flags.BoolVarP(&interactiveFlag, "interactive", "i", false,
		"with --restore, pick one of FILE's backups")
	flags.BoolVarP(&assumeYes, "yes", "y", false,
		"restore without asking for confirmation")
	flags.StringVar(&strategyFlag, "strategy", string(backup.DefaultStrategy),
		"restore strategy: swap, legacy")
	flags.StringVar(&outputFormat, "format", string(formatText),
		"list format: text, json, yaml, toml")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n  commit: %s\n  built:  %s\n",
		env.program, cmd.Commit, cmd.Date))

	rootCmd.SetIn(env.stdin)
	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	config.Init()
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}
	return cfg, nil
}

// applyConfig fills in every flag the user did not set from cfg.
func applyConfig(c *cobra.Command, cfg *config.Config) {
	flags := c.Flags()
	if !flags.Changed("strategy") && cfg.RestoreStrategy != "" {
		strategyFlag = cfg.RestoreStrategy
	}
	if !flags.Changed("yes") {
		assumeYes = cfg.AssumeYes
	}
	if !flags.Changed("log-format") && cfg.LogFormat != "" {
		logFormat = cfg.LogFormat
	}
}

func validateFlags() error {
	if _, err := backup.ParseStrategy(strategyFlag); err != nil {
		return errors.NewUserError(err, "valid strategies: swap, legacy")
	}
	if listFlag && restoreFlag {
		return errors.NewUserError(errors.New("--list and --restore cannot be used together"), "")
	}
	if interactiveFlag && !restoreFlag {
		return errors.NewUserError(errors.New("--interactive requires --restore"), "")
	}
	if !slices.Contains(logging.Formats(), logFormat) {
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "valid log formats: text, json")
	}
	if _, err := parseFormat(outputFormat); err != nil {
		return errors.NewUserError(err, "")
	}
	return nil
}

// setupLogging configures the default logger based on verbosity flags.
// A single -v only turns on the action report; logs start at -vv.
func setupLogging(c *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("BK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handlers := []slog.Handler{logging.NewFormatHandler(c.ErrOrStderr(), logging.Format(logFormat), opts)}

	if err := closeLogFile(); err != nil {
		return err
	}
	if logFile != "" {
		f, err := os.OpenFile(paths.ExpandHome(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logFileHandle = f
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// runRoot dispatches to the mode selected by the flags.
func runRoot(ctx context.Context, env *environment, file string) error {
	switch {
	case listFlag:
		return runList(ctx, env, file)
	case restoreFlag && interactiveFlag:
		return runPickRestore(ctx, env, file)
	case restoreFlag:
		if err := checkFile(env.fs, file); err != nil {
			return err
		}
		return runRestore(ctx, env, file)
	default:
		if err := checkFile(env.fs, file); err != nil {
			return err
		}
		return runBackup(ctx, env, file)
	}
}

// checkFile requires file to exist and not be a directory.
func checkFile(fsys afero.Fs, file string) error {
	info, err := fsys.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewUserError(errors.NewPathError(file, errors.ErrNoSuchFile), "")
		}
		return errors.Wrapf(err, "checking %s", file)
	}
	if info.IsDir() {
		return errors.NewUserError(errors.NewPathError(file, errors.ErrIsDirectory), "")
	}
	return nil
}

// newManager builds a backup.Manager from the parsed flags.
func newManager(ctx context.Context, env *environment) *backup.Manager {
	// validateFlags has already rejected unknown names.
	strategy, _ := backup.ParseStrategy(strategyFlag)

	var confirmer backup.Confirmer = prompt.NewConfirmerWithIO(env.program, env.stdin, env.stdout)
	if assumeYes {
		confirmer = prompt.AlwaysYes{}
	}

	return backup.NewManager(
		backup.WithFs(env.fs),
		backup.WithStrategy(strategy),
		backup.WithConfirmer(confirmer),
		backup.WithLogger(logging.FromContext(ctx)),
	)
}

// report prints the one-line action summary enabled by -v.
func report(env *environment, file, format string, args ...any) {
	if verbosity < 1 || quiet {
		return
	}
	fmt.Fprintf(env.stdout, "%s: %s: %s\n", env.program, baseName(file), fmt.Sprintf(format, args...))
}

// closeLogFile closes the --log-file opened by setupLogging, if any.
func closeLogFile() error {
	if logFileHandle == nil {
		return nil
	}
	err := logFileHandle.Close()
	logFileHandle = nil
	return errors.Wrap(err, "closing log file")
}

// reportError prints err as the single line "<program>: <detail>". A
// declined restore is silent. Suggestions go to the logger, not w.
func reportError(w io.Writer, logger *slog.Logger, program string, err error) {
	if err == nil || errors.Is(err, errors.ErrDeclined) {
		return
	}
	fmt.Fprintf(w, "%s: %v\n", program, err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		logger.Warn(exitErr.Suggestion)
	}
}

// run executes one invocation of bk and returns its exit code.
func run(ctx context.Context, env *environment, args []string) int {
	// The picker and the confirmation prompt share one buffered reader so
	// neither swallows input meant for the other.
	if _, ok := env.stdin.(*bufio.Reader); !ok {
		env.stdin = bufio.NewReader(env.stdin)
	}

	rootCmd := newRootCmd(env)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	logger := slog.Default()
	if err != nil {
		logger.Debug("command failed", "error", fmt.Sprintf("%+v", err))
	}
	reportError(env.stdout, logger, env.program, err)

	if closeErr := closeLogFile(); closeErr != nil {
		logger.Warn("log file not closed cleanly", "error", closeErr)
	}
	return errors.ExitCode(err)
}

// Execute runs bk with the process arguments and returns the exit code.
func Execute() int {
	return run(context.Background(), defaultEnvironment(), os.Args[1:])
}
