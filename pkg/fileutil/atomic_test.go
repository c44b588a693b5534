package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/bk/internal/faultfs"
)

func TestAtomicCopy_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	fsys := afero.NewOsFs()
	src := filepath.Join(dir, "report.csv.bak")
	dst := filepath.Join(dir, "report.csv")
	if err := os.WriteFile(src, []byte("backup"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("current"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := AtomicCopy(fsys, src, dst); err != nil {
		t.Fatalf("AtomicCopy() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "backup" {
		t.Errorf("content = %q, want %q", got, "backup")
	}

	// Source is not consumed
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source should still exist: %v", err)
	}

	assertNoTempFiles(t, dir)
}

func TestAtomicCopy_CreatesMissingTarget(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/d/a.bak", []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := AtomicCopy(fsys, "/d/a.bak", "/d/a"); err != nil {
		t.Fatalf("AtomicCopy() error = %v", err)
	}

	got, err := afero.ReadFile(fsys, "/d/a")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q, want %q", got, "data")
	}
}

func TestAtomicCopy_FailedStagingKeepsTarget(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := afero.WriteFile(base, "/d/a.bak", []byte("backup"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(base, "/d/a", []byte("current"), 0644); err != nil {
		t.Fatal(err)
	}
	// The staging file opens fine but the backup itself cannot be read.
	fsys := faultfs.New(base).Fail(faultfs.OpOpen, "a.bak", syscall.EIO)

	err := AtomicCopy(fsys, "/d/a.bak", "/d/a")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, syscall.EIO) {
		t.Errorf("expected EIO cause, got %v", err)
	}

	got, err := afero.ReadFile(base, "/d/a")
	if err != nil {
		t.Fatalf("target should be intact: %v", err)
	}
	if string(got) != "current" {
		t.Errorf("target content = %q, want %q", got, "current")
	}

	entries, err := afero.ReadDir(base, "/d")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".bk-atomic-") {
			t.Errorf("temp file not cleaned up: %s", e.Name())
		}
	}
}

func TestAtomicCopy_DirectoryNotExists(t *testing.T) {
	dir := t.TempDir()
	fsys := afero.NewOsFs()
	src := filepath.Join(dir, "src")
	if err := os.WriteFile(src, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	err := AtomicCopy(fsys, src, filepath.Join(dir, "nonexistent", "dst"))
	if err == nil {
		t.Fatal("expected error when target directory does not exist")
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".bk-atomic-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
