// Package syncer mirrors the source directory into the build directory.
//
// The mirror is one-way and additive only: files that exist solely in the
// build directory are never touched. Compiler-generated intermediate files
// therefore accumulate across runs instead of being re-derived from scratch
// on every build. This is intentional, not a missing prune step.
package syncer

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/texbuild/internal/errs"
	"git.home.luguber.info/inful/texbuild/internal/fsops"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// Sync copies every file and directory under srcDir into bldDir, preserving
// relative structure, permissions and modification times. bldDir is created
// if absent. Concurrent external writes to either tree are the caller's
// responsibility.
func Sync(srcDir, bldDir string) error {
	if _, err := os.Stat(srcDir); err != nil {
		return errs.Wrap(err, errs.KindNotFound, "sync", "source directory not accessible")
	}
	if err := fsops.EnsureDir(bldDir, true); err != nil {
		return errs.Wrap(err, errs.KindSync, "sync", "create build directory")
	}

	count := 0
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(bldDir, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return err
			}
		case info.Mode()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		default:
			if err := copyFile(path, target, info); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(err, errs.KindSync, "sync", "mirror source into build directory")
	}

	slog.Debug("Synchronized source files into build directory",
		logfields.Path(bldDir), slog.Int("files", count))
	return nil
}

// copyFile copies src to dst, overwriting dst, and carries over permission
// bits and the modification time.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	// An existing target keeps its old mode on OpenFile; force it.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copySymlink recreates a symlink at dst pointing at src's target.
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, dst)
}
