// Package publish copies the finished PDF out of the build directory into
// the destination directory.
package publish

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/texbuild/internal/errs"
	"git.home.luguber.info/inful/texbuild/internal/fsops"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// ArtifactExt is the extension of the compiled artifact.
const ArtifactExt = ".pdf"

// Publish copies buildDir/document.pdf to destDir/output.pdf, creating
// destDir on demand and overwriting any previous artifact. document and
// output are base names without extension. A missing build artifact is a
// not-found error; callers must not publish after a failed compile.
func Publish(buildDir, document, output, destDir string) error {
	src := filepath.Join(buildDir, document+ArtifactExt)
	dst := filepath.Join(destDir, output+ArtifactExt)

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.Wrap(err, errs.KindNotFound, "publish", "build artifact missing")
		}
		return errs.Wrap(err, errs.KindSync, "publish", "stat build artifact")
	}

	if err := fsops.EnsureDir(destDir, false); err != nil {
		return errs.Wrap(err, errs.KindSync, "publish", "create destination directory")
	}
	if err := copyFile(src, dst, info); err != nil {
		return errs.Wrap(err, errs.KindSync, "publish", "copy artifact to destination")
	}

	slog.Info("Published artifact", logfields.Path(dst))
	return nil
}

// copyFile overwrites dst with src, carrying over permissions and mtime.
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
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
