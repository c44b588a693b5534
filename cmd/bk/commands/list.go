package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/logging"
	"github.com/thoreinstein/bk/internal/naming"
)

// listFormat selects how --list prints backups.
type listFormat string

const (
	formatText listFormat = "text"
	formatJSON listFormat = "json"
	formatYAML listFormat = "yaml"
	formatTOML listFormat = "toml"
)

var listFormats = []listFormat{formatText, formatJSON, formatYAML, formatTOML}

func parseFormat(s string) (listFormat, error) {
	for _, f := range listFormats {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(listFormats))
	for i, f := range listFormats {
		names[i] = string(f)
	}
	return "", errors.Newf("invalid format %q (valid: %s)", s, strings.Join(names, ", "))
}

// listOutput is the document written by the structured formats.
// TOML needs a table at the top level, so entries sit under "backups".
type listOutput struct {
	Source  string         `json:"source" yaml:"source" toml:"source"`
	Backups []backup.Entry `json:"backups" yaml:"backups" toml:"backups"`
}

// runList prints the backups of file. file may name the source or any of
// its backups.
func runList(ctx context.Context, env *environment, file string) error {
	source := naming.OriginalName(file)

	entries, err := newManager(ctx, env).List(ctx, source)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackups) {
			return errors.NewUserError(errors.NewPathError(source, err), "")
		}
		return err
	}
	logging.FromContext(ctx).Debug("listed backups", "source", source, "count", len(entries))

	// validateFlags has already rejected unknown names.
	format, _ := parseFormat(outputFormat)
	if format == formatText {
		logging.ConfigureColor(env.stdout)
	}
	return writeList(env.stdout, format, listOutput{Source: source, Backups: entries})
}

func writeList(w io.Writer, format listFormat, out listOutput) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding JSON")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	case formatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(out), "encoding TOML")
	default:
		return writeListText(w, out)
	}
}

func writeListText(w io.Writer, out listOutput) error {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	if _, err := bold.Fprintf(w, "Backups of %s\n", out.Source); err != nil {
		return errors.Wrap(err, "writing list")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSIZE\tMODIFIED\tNAME")
	for _, e := range out.Backups {
		version := "-"
		if e.Version > 0 {
			version = fmt.Sprintf("%d", e.Version)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			version,
			humanize.Bytes(uint64(max(e.Size, 0))),
			humanize.Time(e.ModTime),
			e.Name,
		)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing list")
	}

	_, err := dim.Fprintf(w, "%d backup(s)\n", len(out.Backups))
	return errors.Wrap(err, "writing list")
}
