package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileCreatesMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.css")
	if err := os.WriteFile(src, []byte("body{color:red}"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "public", "css", "a.css")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "body{color:red}" {
		t.Errorf("copied content = %q", got)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists reported a missing file")
	}
	path := filepath.Join(dir, "yes")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Error("Exists missed an existing file")
	}
}
