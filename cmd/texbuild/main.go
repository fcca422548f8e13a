package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/texbuild/internal/orchestrator"
	"git.home.luguber.info/inful/texbuild/internal/project"
	"git.home.luguber.info/inful/texbuild/internal/settings"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Copy struct {
		Root string `arg:"" help:"Project root folder containing the src, bld and dst sub-folders"`
	} `cmd:"" help:"Copy all source files to the build directory"`

	Build struct {
		Root        string   `arg:"" help:"Project root folder containing the src, bld and dst sub-folders"`
		Document    string   `arg:"" help:"Main document to build (relative to src, omit the .tex extension)"`
		Output      string   `short:"o" help:"Name of the published pdf, without extension (defaults to the document name)"`
		LatexmkOpts []string `help:"Extra options passed to latexmk after the fixed argument set"`
	} `cmd:"" help:"Build the target document once"`

	Loop struct {
		Root        string   `arg:"" help:"Project root folder containing the src, bld and dst sub-folders"`
		Document    string   `arg:"" help:"Main document to build (relative to src, omit the .tex extension)"`
		Output      string   `short:"o" help:"Name of the published pdf, without extension (defaults to the document name)"`
		LatexmkOpts []string `help:"Extra options passed to latexmk after the fixed argument set"`
	} `cmd:"" help:"Re-build the target document on every source change"`

	Clean struct {
		Root string `arg:"" help:"Project root folder containing the src, bld and dst sub-folders"`
	} `cmd:"" help:"Remove the build directory"`

	Init struct {
		Root string `arg:"" help:"Project root folder to initialize"`
	} `cmd:"" help:"Create the project root and an empty source directory"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("texbuild"),
		kong.Description("Build TeX pdf documents in an isolated build directory."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg := settings.Load()

	switch ctx.Command() {
	case "copy <root>":
		o := orchestrator.New(project.New(CLI.Copy.Root), cfg)
		if err := o.CopyBuildFiles(); err != nil {
			slog.Error("Copy failed", "error", err)
			os.Exit(1)
		}

	case "build <root> <document>":
		o := orchestrator.New(project.New(CLI.Build.Root), cfg)
		res, err := o.BuildOnce(CLI.Build.Document, CLI.Build.Output, CLI.Build.LatexmkOpts)
		if err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
		if !res.Success {
			// Compiler diagnostics were already streamed to the console;
			// exit non-zero without crashing.
			os.Exit(1)
		}

	case "loop <root> <document>":
		o := orchestrator.New(project.New(CLI.Loop.Root), cfg)
		loopCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := o.RunLoop(loopCtx, CLI.Loop.Document, CLI.Loop.Output, CLI.Loop.LatexmkOpts); err != nil {
			slog.Error("Loop failed", "error", err)
			os.Exit(1)
		}

	case "clean <root>":
		// Partial cleanup failures are reported on the console but cleanup
		// always completes; they are not a fatal program error.
		o := orchestrator.New(project.New(CLI.Clean.Root), cfg)
		o.Clean()

	case "init <root>":
		if err := project.New(CLI.Init.Root).InitDirs(); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Project initialized", "root", CLI.Init.Root)
	}
}
