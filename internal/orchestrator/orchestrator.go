// Package orchestrator composes the build pipeline: the source tree is
// mirrored into the build directory, latexmk compiles the document there,
// and the finished PDF is published to the destination directory. Stages run
// strictly sequentially; a stage failure skips everything after it.
package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/texbuild/internal/console"
	"git.home.luguber.info/inful/texbuild/internal/errs"
	"git.home.luguber.info/inful/texbuild/internal/fsops"
	"git.home.luguber.info/inful/texbuild/internal/latexmk"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
	"git.home.luguber.info/inful/texbuild/internal/project"
	"git.home.luguber.info/inful/texbuild/internal/publish"
	"git.home.luguber.info/inful/texbuild/internal/settings"
	"git.home.luguber.info/inful/texbuild/internal/syncer"
	"git.home.luguber.info/inful/texbuild/internal/watcher"
)

// Stage names for logging.
const (
	stageSync    = "sync"
	stageCompile = "compile"
	stagePublish = "publish"
)

// BuildResult is the outcome of one build transaction. It is ephemeral:
// reported to the caller and the console, never persisted.
type BuildResult struct {
	BuildID  string
	Success  bool
	Duration time.Duration
}

// Orchestrator drives the sync -> compile -> publish pipeline for one
// project. It is not safe for concurrent use; running two orchestrators
// against the same project root is undefined.
type Orchestrator struct {
	proj     project.Project
	runner   latexmk.Runner
	debounce time.Duration
}

// New returns an Orchestrator for proj using the given settings.
func New(proj project.Project, cfg settings.Settings) *Orchestrator {
	return &Orchestrator{
		proj:     proj,
		runner:   latexmk.NewRunner(cfg.LatexmkBin, cfg.Engine),
		debounce: cfg.Debounce,
	}
}

// CopyBuildFiles stages the source tree into the build directory without
// compiling anything.
func (o *Orchestrator) CopyBuildFiles() error {
	console.Frame("COPYING BUILD FILES TO BLD DIRECTORY")
	return syncer.Sync(o.proj.Src(), o.proj.Bld())
}

// BuildOnce runs one full build transaction and reports its outcome.
// output defaults to document when empty. A compiler failure is an expected
// outcome: it yields a failed result with a nil error. Sync and publish
// faults yield a failed result and the underlying error, since they point at
// environment problems rather than document errors.
func (o *Orchestrator) BuildOnce(document, output string, latexmkOpts []string) (BuildResult, error) {
	if output == "" {
		output = document
	}
	res := BuildResult{BuildID: uuid.NewString()}
	start := time.Now()

	slog.Info("Starting build transaction",
		logfields.BuildID(res.BuildID),
		logfields.Document(document),
		logfields.Output(output))

	if err := o.CopyBuildFiles(); err != nil {
		return o.failed(res, start, stageSync, err), err
	}

	console.Frame("BUILDING DOCUMENT")
	if err := o.runner.Compile(o.proj.Bld(), document, latexmkOpts); err != nil {
		if errs.IsKind(err, errs.KindCompile) {
			// Document errors are reported, never raised.
			return o.failed(res, start, stageCompile, err), nil
		}
		return o.failed(res, start, stageCompile, err), err
	}

	if err := publish.Publish(o.proj.Bld(), document, output, o.proj.Dst()); err != nil {
		return o.failed(res, start, stagePublish, err), err
	}

	res.Success = true
	res.Duration = time.Since(start)
	console.Success("BUILD SUCCESSFUL")
	slog.Info("Build transaction succeeded",
		logfields.BuildID(res.BuildID),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}

func (o *Orchestrator) failed(res BuildResult, start time.Time, stage string, err error) BuildResult {
	res.Duration = time.Since(start)
	console.Failure("BUILD FAILED")
	slog.Warn("Build transaction failed",
		logfields.BuildID(res.BuildID),
		logfields.Stage(stage),
		logfields.DurationMS(float64(res.Duration.Milliseconds())),
		logfields.Error(err))
	return res
}

// RunLoop rebuilds the document on every detected source change until ctx is
// canceled. The in-flight stage always runs to completion; cancellation is
// only observed between a build and the next watch cycle.
func (o *Orchestrator) RunLoop(ctx context.Context, document, output string, latexmkOpts []string) error {
	w := watcher.New(o.proj.Src(), o.debounce)

	for {
		if res, err := o.BuildOnce(document, output, latexmkOpts); err != nil {
			// Environment fault: already reported as a failed result,
			// logged here with detail. The loop keeps watching so the
			// problem can be fixed without restarting.
			slog.Error("Build failed with environment error",
				logfields.BuildID(res.BuildID), logfields.Error(err))
		}

		if ctx.Err() != nil {
			console.Warn("QUITTING (interrupt signal received)")
			return nil
		}

		console.Frame("WATCHING SRC DIRECTORY FOR CHANGES")
		if err := w.WaitForChange(ctx); err != nil {
			if ctx.Err() != nil {
				console.Warn("QUITTING (interrupt signal received)")
				return nil
			}
			return err
		}
	}
}

// Clean removes the build directory. Per-entry deletion failures are
// reported but never abort the cleanup; a missing build directory is a
// no-op. Repeated calls succeed trivially.
func (o *Orchestrator) Clean() []fsops.Failure {
	console.Frame("CLEANING BLD DIRECTORY")
	bld := o.proj.Bld()

	if _, err := os.Stat(bld); os.IsNotExist(err) {
		console.Info(bld + " already removed")
		console.Success("CLEANUP FINISHED")
		return nil
	}

	failures := fsops.RemoveTree(bld)
	for _, f := range failures {
		slog.Warn("Failed to remove entry", logfields.Path(f.Path), logfields.Error(f.Err))
	}

	if len(failures) > 0 {
		console.Warn("CLEANUP FINISHED (errors encountered)")
	} else {
		console.Success("CLEANUP FINISHED")
	}
	return failures
}
