package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/bk/internal/errors"
)

func TestInit(t *testing.T) {
	// Reset viper state
	viper.Reset()

	Init()

	// Check defaults are set
	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("restore_strategy"); got != "swap" {
		t.Errorf("expected restore_strategy default swap, got %q", got)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()

	// Keep the search away from any real config.
	t.Chdir(t.TempDir())

	Init()

	// Load with no config file should not error
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.RestoreStrategy != "swap" || cfg.AssumeYes {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_IgnoresWorkingDirectoryConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	// A docker-compose style file that is not bk's.
	if err := os.WriteFile("config.yaml", []byte("version: \"3.8\"\nassume_yes: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() must not read ./config.yaml: %v", err)
	}
	if cfg.AssumeYes || cfg.Version != 1 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("version: 1\nrestore_strategy: legacy\nassume_yes: true\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.RestoreStrategy != "legacy" {
		t.Errorf("expected restore_strategy legacy, got %q", cfg.RestoreStrategy)
	}
	if !cfg.AssumeYes {
		t.Error("expected assume_yes true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("BK_RESTORE_STRATEGY", "legacy")

	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RestoreStrategy != "legacy" {
		t.Errorf("expected env override legacy, got %q", cfg.RestoreStrategy)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	// Load with non-existent config file should error
	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	viper.Reset()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("restore_strategy: [unclosed\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	if _, err := Load(configPath); err == nil {
		t.Error("Load() with malformed YAML should error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr []error
	}{
		{
			name: "defaults are valid",
			cfg:  Default(),
		},
		{
			name: "legacy strategy is valid",
			cfg:  &Config{Version: 1, RestoreStrategy: "legacy", LogFormat: "json"},
		},
		{
			name:    "version too low",
			cfg:     &Config{Version: 0, RestoreStrategy: "swap"},
			wantErr: []error{ErrVersionTooLow},
		},
		{
			name:    "unknown strategy and format",
			cfg:     &Config{Version: 1, RestoreStrategy: "atomic", LogFormat: "xml"},
			wantErr: []error{ErrInvalidValue, ErrInvalidValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.cfg)
			if len(errs) != len(tt.wantErr) {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), len(tt.wantErr), errs)
			}
			for i, want := range tt.wantErr {
				if !errors.Is(errs[i], want) {
					t.Errorf("error %d = %v, want %v", i, errs[i], want)
				}
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) returned %d errors, want 1", len(errs))
	}
}

func TestFieldError_Message(t *testing.T) {
	errs := Validate(&Config{Version: 1, RestoreStrategy: "atomic"})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	want := `restore_strategy: invalid value "atomic" (valid: swap, legacy)`
	if got := errs[0].Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
