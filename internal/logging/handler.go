package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for terminal output: a short time, a
// padded level, the message, then key=value pairs. It colorizes when the
// writer supports it.
type Handler struct {
	opts slog.HandlerOptions
	out  io.Writer
	mu   *sync.Mutex

	// preformatted holds attributes added with WithAttrs, already rendered
	// under the groups that were open at the time.
	preformatted []byte
	// prefix is the dotted group path applied to record attributes.
	prefix string

	useColor bool
	palette  palette
}

type palette struct {
	time, trace, debug, info, warn, err, key *color.Color
}

// NewHandler creates a new terminal handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}

	// The decision is made per writer here, so the colors ignore
	// color.NoColor, which tracks stdout.
	if SupportsColor(out) {
		h.useColor = true
		h.palette = palette{
			time:  forced(color.FgHiBlack),
			trace: forced(color.FgHiBlack),
			debug: forced(color.FgMagenta),
			info:  forced(color.FgGreen),
			warn:  forced(color.FgYellow),
			err:   forced(color.FgRed, color.Bold),
			key:   forced(color.FgCyan),
		}
	}

	return h
}

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes r as one line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.palette.time, r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}

	level := levelName(r.Level)
	// Pad before coloring so escape codes do not break alignment.
	fmt.Fprintf(&buf, "%s ", h.paint(h.levelColor(r.Level), fmt.Sprintf("%-5s", level)))

	buf.WriteString(r.Message)
	buf.Write(h.preformatted)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

func (h *Handler) levelColor(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return h.palette.err
	case l >= slog.LevelWarn:
		return h.palette.warn
	case l >= slog.LevelInfo:
		return h.palette.info
	case l > LevelTrace:
		return h.palette.debug
	default:
		return h.palette.trace
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.useColor || c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, groupPrefix, ga)
		}
		return
	}

	var value string
	switch a.Value.Kind() {
	case slog.KindString:
		value = quoteIfNeeded(a.Value.String())
	case slog.KindTime:
		value = a.Value.Time().Format(time.RFC3339)
	default:
		value = quoteIfNeeded(fmt.Sprint(a.Value.Any()))
	}

	fmt.Fprintf(buf, " %s=%s", h.paint(h.palette.key, prefix+a.Key), value)
}

// quoteIfNeeded quotes values that would otherwise be ambiguous on one line,
// such as file names containing spaces.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	buf.Write(h.preformatted)
	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}
	newH := *h
	newH.preformatted = buf.Bytes()
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered by prefixing keys with "group.".
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}
