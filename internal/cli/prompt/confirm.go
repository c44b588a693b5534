// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/thoreinstein/bk/internal/errors"
)

// ErrNoInput indicates the input stream closed before an answer was given.
var ErrNoInput = errors.New("no input")

// Confirmer asks "<program>: Restore: <name> (y to confirm)? " and reads one
// line. It satisfies backup.Confirmer.
type Confirmer struct {
	program string
	reader  io.Reader
	writer  io.Writer
}

// NewConfirmer creates a Confirmer using stdin and stdout.
func NewConfirmer(program string) *Confirmer {
	return NewConfirmerWithIO(program, os.Stdin, os.Stdout)
}

// NewConfirmerWithIO creates a Confirmer with custom reader and writer for testing.
func NewConfirmerWithIO(program string, r io.Reader, w io.Writer) *Confirmer {
	return &Confirmer{
		program: program,
		reader:  r,
		writer:  w,
	}
}

// Confirm writes the prompt without a trailing newline and blocks until a
// line is read. Only an answer starting with y or Y is affirmative. A closed
// stream returns ErrNoInput; a final line without newline is still honoured.
func (c *Confirmer) Confirm(_ context.Context, name string) (bool, error) {
	fmt.Fprintf(c.writer, "%s: Restore: %s (y to confirm)? ", c.program, name)

	line, err := bufio.NewReader(c.reader).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, errors.Wrap(err, "reading confirmation")
		}
		if line == "" {
			return false, ErrNoInput
		}
	}

	return IsAffirmative(line), nil
}

// IsAffirmative reports whether answer begins with a y, compared case-insensitively.
func IsAffirmative(answer string) bool {
	r, _ := utf8.DecodeRuneInString(answer)
	return unicode.ToLower(r) == 'y'
}

// AlwaysYes is a Confirmer that approves every restore without prompting.
type AlwaysYes struct{}

// Confirm implements backup.Confirmer.
func (AlwaysYes) Confirm(context.Context, string) (bool, error) {
	return true, nil
}
