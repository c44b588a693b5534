package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
	}{
		{name: "lowercase y", input: "y\n", want: true},
		{name: "uppercase Y", input: "Y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "y without newline", input: "y", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "leading space", input: " y\n", want: false},
		{name: "other word", input: "sure\n", want: false},
		{name: "closed input", input: "", want: false, wantErr: ErrNoInput},
		{name: "only first line counts", input: "n\ny\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			c := NewConfirmerWithIO("bk", strings.NewReader(tt.input), &buf)

			got, err := c.Confirm(t.Context(), "report.csv.bak.2")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Confirm() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfirm_PromptFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConfirmerWithIO("bk", strings.NewReader("y\n"), &buf)

	if _, err := c.Confirm(t.Context(), "report.csv.bak.2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "bk: Restore: report.csv.bak.2 (y to confirm)? "
	if got := buf.String(); got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestConfirm_ReadError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConfirmerWithIO("bk", &errReader{err: io.ErrClosedPipe}, &buf)

	got, err := c.Confirm(t.Context(), "a.bak")
	if got {
		t.Error("unreadable input must not confirm")
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected wrapped read error, got: %v", err)
	}
}

func TestIsAffirmative(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"y", "Y", "yes", "Yep", "y\n"} {
		if !IsAffirmative(in) {
			t.Errorf("IsAffirmative(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"", "n", "no", " y", "\ny", "ÿ"} {
		if IsAffirmative(in) {
			t.Errorf("IsAffirmative(%q) = true, want false", in)
		}
	}
}

func TestAlwaysYes(t *testing.T) {
	t.Parallel()

	ok, err := AlwaysYes{}.Confirm(t.Context(), "a.bak")
	if err != nil || !ok {
		t.Errorf("AlwaysYes.Confirm() = %v, %v", ok, err)
	}
}

// errReader always fails with err.
type errReader struct {
	err error
}

func (r *errReader) Read([]byte) (int, error) {
	return 0, r.err
}
