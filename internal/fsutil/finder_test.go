package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "nested/c.hcl", "notes.txt", ".cache/d.hcl")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "layout.hcl", "modules/app.hcl", "readme.md")

	files, err := CollectFiles(".hcl",
		filepath.Join(root, "layout.hcl"),
		root,
		filepath.Join(root, "readme.md"),
		filepath.Join(root, "missing"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "layout.hcl"),
		filepath.Join(root, "modules", "app.hcl"),
	}, files)
}
