package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	var fsys OS
	if !fsys.Exists(file) {
		t.Errorf("Exists(%s) = false, want true", file)
	}
	if fsys.Exists(filepath.Join(dir, "absent.txt")) {
		t.Error("Exists(absent.txt) = true, want false")
	}
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	var fsys OS

	if err := fsys.CheckWritable(dir); err != nil {
		t.Errorf("CheckWritable(tempdir): %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("writability check left a file behind: %v", entries)
	}

	if err := fsys.CheckWritable(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CheckWritable(missing) = %v, want ErrNotExist", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := fsys.CheckWritable(file); err == nil {
		t.Error("CheckWritable(file) should fail for a regular file")
	}
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "README.md")
	dst := filepath.Join(dir, "dst", "README.md")

	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("# new"), 0640); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("# old and longer"), 0644); err != nil {
		t.Fatal(err)
	}

	var fsys OS
	if err := fsys.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "# new" {
		t.Errorf("dst content = %q, want %q", got, "# new")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("dst mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	var fsys OS

	err := fsys.CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "out"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyFile(missing) = %v, want ErrNotExist", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err == nil {
		t.Error("destination should not be created when the source is missing")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "auto-generated.ts")

	var fsys OS
	if err := fsys.WriteFile(path, []byte("export {}"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "export {}" {
		t.Errorf("content = %q", got)
	}
}
