// Package fsops provides the primitive filesystem operations the build
// pipeline is composed of: idempotent directory creation, continue-on-error
// recursive deletion, and a scoped working-directory change.
package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

const dirMode = 0o755

// EnsureDir creates path as a directory. An already existing path is not an
// error. With recursive set, all missing parent segments are created as
// well; without it, a missing parent fails with fs.ErrNotExist.
func EnsureDir(path string, recursive bool) error {
	if recursive {
		return os.MkdirAll(path, dirMode)
	}
	err := os.Mkdir(path, dirMode)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	return err
}

// Failure records one entry that could not be deleted during RemoveTree.
type Failure struct {
	Path string
	Err  error
}

// RemoveTree recursively deletes root and everything under it. Per-entry
// failures are collected rather than aborting the traversal, so a single
// stubborn file does not prevent the rest of the tree from being removed.
// A missing root is a no-op and returns no failures.
func RemoveTree(root string) []Failure {
	if _, err := os.Lstat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	var failures []Failure
	removeTree(root, &failures)
	return failures
}

func removeTree(path string, failures *[]Failure) {
	info, err := os.Lstat(path)
	if err != nil {
		*failures = append(*failures, Failure{Path: path, Err: err})
		return
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			*failures = append(*failures, Failure{Path: path, Err: err})
		} else {
			for _, entry := range entries {
				removeTree(filepath.Join(path, entry.Name()), failures)
			}
		}
	}

	if err := os.Remove(path); err != nil {
		*failures = append(*failures, Failure{Path: path, Err: err})
	}
}

// WithWorkingDir runs fn with the process working directory changed to dir,
// restoring the previous working directory on every exit path. The working
// directory is process-wide state; callers must not run concurrently.
func WithWorkingDir(dir string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine current working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("enter directory %s: %w", dir, err)
	}
	defer func() {
		if err := os.Chdir(prev); err != nil {
			slog.Error("Failed to restore working directory", logfields.Path(prev), logfields.Error(err))
		}
	}()
	return fn()
}
