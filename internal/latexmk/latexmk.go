// Package latexmk invokes the external latexmk toolchain against a build
// directory. The tool is opinionated: documents are compiled to PDF with a
// configurable engine (lualatex by default), non-interactively, halting on
// the first error. Compiler diagnostics stream to the caller's console
// verbatim; nothing is captured or parsed.
package latexmk

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/texbuild/internal/errs"
	"git.home.luguber.info/inful/texbuild/internal/fsops"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// SourceExt is the extension latexmk expects on the main document.
const SourceExt = ".tex"

// Runner holds the resolved compiler invocation settings.
type Runner struct {
	// Bin is the latexmk binary to invoke.
	Bin string
	// Engine is the TeX engine latexmk delegates to.
	Engine string
}

// NewRunner returns a Runner for the given binary and engine.
func NewRunner(bin, engine string) Runner {
	return Runner{Bin: bin, Engine: engine}
}

// Compile runs latexmk for document (base name, no extension) inside
// buildDir. extraOpts are appended after the fixed argument set, so callers
// can override defaults. The process working directory is switched into
// buildDir for the duration of the run and restored on every exit path.
//
// A non-zero compiler exit is returned as a compile-kind error; it is an
// expected outcome, not a fault.
func (r Runner) Compile(buildDir, document string, extraOpts []string) error {
	args := []string{
		"-halt-on-error",
		"-interaction=nonstopmode",
		"-pdflatex=" + r.Engine,
		"-pdf",
		document + SourceExt,
	}
	args = append(args, extraOpts...)

	slog.Debug("Invoking latexmk",
		logfields.Document(document),
		logfields.Path(buildDir),
		slog.Any("args", args))

	return fsops.WithWorkingDir(buildDir, func() error {
		cmd := exec.Command(r.Bin, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return errs.Wrap(err, errs.KindCompile, "compile", "latexmk exited non-zero")
			}
			// The compiler never ran: a missing or broken toolchain is an
			// environment fault, not a document failure.
			return errs.Wrap(err, errs.KindEnvironment, "compile", "latexmk could not be started")
		}
		return nil
	})
}
