package config

import (
	"slices"
	"strings"

	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/logging"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidValue indicates a field holds a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if _, err := backup.ParseStrategy(cfg.RestoreStrategy); err != nil {
		errs = append(errs, &FieldError{
			Field:   "restore_strategy",
			Value:   cfg.RestoreStrategy,
			Allowed: backup.Strategies(),
			Err:     ErrInvalidValue,
		})
	}

	formats := logging.Formats()
	if cfg.LogFormat != "" && !slices.Contains(formats, cfg.LogFormat) {
		errs = append(errs, &FieldError{
			Field:   "log_format",
			Value:   cfg.LogFormat,
			Allowed: formats,
			Err:     ErrInvalidValue,
		})
	}

	return errs
}

// FieldError represents an invalid value for a specific config field.
type FieldError struct {
	Field   string
	Value   string
	Allowed []string
	Err     error
}

func (e *FieldError) Error() string {
	msg := e.Field + ": " + e.Err.Error() + " " + `"` + e.Value + `"`
	if len(e.Allowed) > 0 {
		msg += " (valid: " + strings.Join(e.Allowed, ", ") + ")"
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
