// Package config provides configuration management for the bk CLI.
//
// # Configuration File
//
// bk looks for config.yaml in the current directory and then in
// $XDG_CONFIG_HOME/bk (usually ~/.config/bk/config.yaml). Every key can also
// be set through a BK_ prefixed environment variable, e.g.
// BK_RESTORE_STRATEGY=legacy.
//
//	version: 1
//	restore_strategy: swap   # swap | legacy
//	assume_yes: false        # skip the restore confirmation prompt
//	log_format: text         # text | json
//
// No configuration file is required; defaults apply when none is found.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if errs := config.Validate(cfg); len(errs) > 0 {
//	    // report errs
//	}
package config
