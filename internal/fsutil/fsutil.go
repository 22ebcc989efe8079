package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// OS implements the filesystem operations against the real disk.
type OS struct{}

// Exists reports whether path exists. Stat errors other than "not exist"
// count as existing so callers surface them on the next operation.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// CheckWritable verifies dir is an existing directory the process can create
// files in.
func (OS) CheckWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, ".pkgtmpl-writable-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}

// CopyFile copies src to dst, replacing dst atomically and preserving the
// source permissions. Parent directories of dst are created as needed.
func (OS) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return err
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(srcInfo.Mode().Perm()))
	if err != nil {
		return err
	}
	defer pending.Cleanup()

	if _, err := io.Copy(pending, in); err != nil {
		return err
	}

	return pending.CloseAtomicallyReplace()
}

// WriteFile atomically writes data to path, creating parent directories.
func (OS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
