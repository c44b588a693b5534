package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/errors"
)

// Sentinel errors for backup selection.
var (
	ErrNoBackups          = errors.New("no backups to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles numbered backup selection prompts for non-terminal input.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectBackup prompts the user to choose one of the backups of source.
// Entries are expected oldest first; an empty answer picks the newest.
//
// Returns:
//   - ErrNoBackups if the list is empty
//   - The entry if only one exists (auto-selects without prompting)
//   - The selected entry based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectBackup(source string, entries []backup.Entry) (*backup.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoBackups
	}

	// Auto-select if only one backup
	if len(entries) == 1 {
		return &entries[0], nil
	}

	newest := len(entries)
	fmt.Fprintf(s.writer, "Backups of %q:\n", source)
	for i, e := range entries {
		fmt.Fprintf(s.writer, "  [%d] %s (%s, %s)\n", i+1, e.Name,
			humanize.Bytes(uint64(max(e.Size, 0))), humanize.Time(e.ModTime))
	}
	fmt.Fprintf(s.writer, "Select [%d]: ", newest)

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	if input == "" {
		return &entries[newest-1], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(entries) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(entries))
	}

	return &entries[selection-1], nil
}
