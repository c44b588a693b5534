// Package faultfs wraps an afero.Fs and fails selected operations on demand.
// It exists to exercise partial-failure paths of the backup and restore
// pipelines without needing a misbehaving disk.
package faultfs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Op names an intercepted filesystem operation.
type Op string

// Intercepted operations.
const (
	OpOpen   Op = "open"
	OpCreate Op = "create"
	OpRemove Op = "remove"
	OpRename Op = "rename"
	OpList   Op = "list"
)

// Rule fails Op on any path whose base name matches Pattern (filepath.Match syntax).
type Rule struct {
	Op      Op
	Pattern string
	Err     error
}

// Fs is an afero.Fs that returns injected errors for matching operations.
type Fs struct {
	afero.Fs

	mu    sync.Mutex
	rules []Rule
	calls []string
}

// New wraps base.
func New(base afero.Fs) *Fs {
	return &Fs{Fs: base}
}

// Fail registers a rule. It returns the receiver for chaining.
func (f *Fs) Fail(op Op, pattern string, err error) *Fs {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, Rule{Op: op, Pattern: pattern, Err: err})
	return f
}

// Calls returns the intercepted operations in order, formatted "op name".
func (f *Fs) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fs) check(op Op, name string) error {
	return f.checkAs(op, name, name)
}

// checkAs records call and matches rules against the base name of target.
func (f *Fs) checkAs(op Op, call, target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, string(op)+" "+call)
	base := filepath.Base(target)
	for _, r := range f.rules {
		if r.Op != op {
			continue
		}
		if ok, _ := filepath.Match(r.Pattern, base); ok {
			return &os.PathError{Op: string(op), Path: target, Err: r.Err}
		}
	}
	return nil
}

// Create implements afero.Fs.
func (f *Fs) Create(name string) (afero.File, error) {
	if err := f.check(OpCreate, name); err != nil {
		return nil, err
	}
	return f.Fs.Create(name)
}

// Open implements afero.Fs. Opening a directory counts as a listing.
func (f *Fs) Open(name string) (afero.File, error) {
	op := OpOpen
	if info, err := f.Fs.Stat(name); err == nil && info.IsDir() {
		op = OpList
	}
	if err := f.check(op, name); err != nil {
		return nil, err
	}
	return f.Fs.Open(name)
}

// OpenFile implements afero.Fs. Opens that may create or truncate count as creates.
func (f *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	op := OpOpen
	if flag&(os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_RDWR) != 0 {
		op = OpCreate
	}
	if err := f.check(op, name); err != nil {
		return nil, err
	}
	return f.Fs.OpenFile(name, flag, perm)
}

// Remove implements afero.Fs.
func (f *Fs) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.Fs.Remove(name)
}

// Rename implements afero.Fs. Rules match against the new name.
func (f *Fs) Rename(oldname, newname string) error {
	if err := f.checkAs(OpRename, oldname+" -> "+newname, newname); err != nil {
		return err
	}
	return f.Fs.Rename(oldname, newname)
}

// Name implements afero.Fs.
func (f *Fs) Name() string {
	return "faultfs(" + f.Fs.Name() + ")"
}
