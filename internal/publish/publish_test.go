package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/texbuild/internal/errs"
)

func TestPublishCopiesArtifact(t *testing.T) {
	root := t.TempDir()
	bld := filepath.Join(root, "bld")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.MkdirAll(bld, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bld, "main.pdf"), []byte("%PDF-1.5"), 0o644))

	require.NoError(t, Publish(bld, "main", "main", dst))

	got, err := os.ReadFile(filepath.Join(dst, "main.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.5", string(got))
}

func TestPublishRenamesArtifact(t *testing.T) {
	root := t.TempDir()
	bld := filepath.Join(root, "bld")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.MkdirAll(bld, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bld, "main.pdf"), []byte("pdf"), 0o644))

	require.NoError(t, Publish(bld, "main", "thesis-v2", dst))

	_, err := os.Stat(filepath.Join(dst, "thesis-v2.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "main.pdf"))
	assert.True(t, os.IsNotExist(err), "artifact published under the source name as well")
}

func TestPublishOverwritesExisting(t *testing.T) {
	root := t.TempDir()
	bld := filepath.Join(root, "bld")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.MkdirAll(bld, 0o755))
	require.NoError(t, os.MkdirAll(dst, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bld, "main.pdf"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "main.pdf"), []byte("stale"), 0o644))

	require.NoError(t, Publish(bld, "main", "main", dst))

	got, err := os.ReadFile(filepath.Join(dst, "main.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestPublishMissingArtifact(t *testing.T) {
	root := t.TempDir()
	bld := filepath.Join(root, "bld")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.MkdirAll(bld, 0o755))

	err := Publish(bld, "main", "main", dst)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound), "got %v", err)

	// Nothing may appear in the destination.
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}
