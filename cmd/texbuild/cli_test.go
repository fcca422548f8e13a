package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseCLI parses args into a fresh copy of the CLI grammar and returns the
// selected command string.
func parseCLI(t *testing.T, args ...string) (string, *cliGrammar) {
	t.Helper()
	grammar := &cliGrammar{}
	parser, err := kong.New(grammar, kong.Name("texbuild"))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx.Command(), grammar
}

// cliGrammar mirrors the CLI variable so tests can parse without mutating
// package state.
type cliGrammar struct {
	Verbose bool `short:"v"`

	Copy struct {
		Root string `arg:""`
	} `cmd:""`

	Build struct {
		Root        string `arg:""`
		Document    string `arg:""`
		Output      string `short:"o"`
		LatexmkOpts []string
	} `cmd:""`

	Loop struct {
		Root        string `arg:""`
		Document    string `arg:""`
		Output      string `short:"o"`
		LatexmkOpts []string
	} `cmd:""`

	Clean struct {
		Root string `arg:""`
	} `cmd:""`

	Init struct {
		Root string `arg:""`
	} `cmd:""`
}

func TestParseBuildCommand(t *testing.T) {
	cmd, cli := parseCLI(t, "build", "/tmp/proj", "main")
	assert.Equal(t, "build <root> <document>", cmd)
	assert.Equal(t, "/tmp/proj", cli.Build.Root)
	assert.Equal(t, "main", cli.Build.Document)
	assert.Empty(t, cli.Build.Output)
}

func TestParseBuildWithOptions(t *testing.T) {
	cmd, cli := parseCLI(t, "build", "/tmp/proj", "main",
		"--output", "thesis", "--latexmk-opts=-draftmode", "--latexmk-opts=-silent")
	assert.Equal(t, "build <root> <document>", cmd)
	assert.Equal(t, "thesis", cli.Build.Output)
	assert.Equal(t, []string{"-draftmode", "-silent"}, cli.Build.LatexmkOpts)
}

func TestParseLoopCommand(t *testing.T) {
	cmd, cli := parseCLI(t, "loop", "./thesis", "main")
	assert.Equal(t, "loop <root> <document>", cmd)
	assert.Equal(t, "./thesis", cli.Loop.Root)
}

func TestParseSingleArgCommands(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"copy", "/tmp/proj"}, "copy <root>"},
		{[]string{"clean", "/tmp/proj"}, "clean <root>"},
		{[]string{"init", "/tmp/proj"}, "init <root>"},
	} {
		cmd, _ := parseCLI(t, tc.args...)
		assert.Equal(t, tc.want, cmd)
	}
}

func TestParseRejectsMissingDocument(t *testing.T) {
	grammar := &cliGrammar{}
	parser, err := kong.New(grammar, kong.Name("texbuild"))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"build", "/tmp/proj"})
	assert.Error(t, err)
}
