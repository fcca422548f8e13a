package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/texbuild/internal/errs"
)

func TestBuildOnceMissingCompilerBinary(t *testing.T) {
	p := newTestProject(t)
	o := New(p, testSettings(filepath.Join(t.TempDir(), "no-such-latexmk")))

	res, err := o.BuildOnce("main", "", nil)
	// A toolchain that cannot be started is an environment fault and must
	// surface to the caller, unlike an ordinary failed compile.
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindEnvironment), "got %v", err)
	assert.False(t, res.Success)

	// Publishing must still be skipped.
	_, statErr := os.Stat(p.Dst())
	assert.True(t, os.IsNotExist(statErr))
}
