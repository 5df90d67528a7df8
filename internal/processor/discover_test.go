package processor

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	files := []string{
		"a.jpg",
		"b.JPEG",
		"notes.txt",
		"README",
		"nested/c.png",
		"nested/deeper/d.gif",
		"nested/deeper/e.webp",
		"nested/f.tiff",
		"nested/.hidden.png",
		"jpg",
	}
	for _, f := range files {
		writeFile(t, filepath.Join(root, f), "x")
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.png"), 0o755))

	items, err := Discover(root, out, nil)
	require.NoError(t, err)

	var got []string
	for _, it := range items {
		rel, err := filepath.Rel(root, it.Source)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
		assert.Equal(t, filepath.Join(out, filepath.Base(it.Source)), it.Destination)
	}
	sort.Strings(got)

	assert.Equal(t, []string{
		"a.jpg",
		"b.JPEG",
		"nested/.hidden.png",
		"nested/c.png",
		"nested/deeper/d.gif",
		"nested/deeper/e.webp",
	}, got)
}

func TestDiscoverSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.png"), "x")
	if err := os.Symlink(filepath.Join(root, "real.png"), filepath.Join(root, "link.png")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// a cycle back to the root must not be walked
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	items, err := Discover(root, "out", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, filepath.Join(root, "real.png"), items[0].Source)
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "one.jpg")
	writeFile(t, src, "x")

	items, err := Discover(src, "out", nil)
	require.NoError(t, err)
	assert.Equal(t, []WorkItem{{Source: src, Destination: filepath.Join("out", "one.jpg")}}, items)

	txt := filepath.Join(dir, "one.txt")
	writeFile(t, txt, "x")
	items, err = Discover(txt, "out", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), "out", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollisions(t *testing.T) {
	items := []WorkItem{
		{Source: "in/a/x.png", Destination: "out/x.png"},
		{Source: "in/b/x.png", Destination: "out/x.png"},
		{Source: "in/y.png", Destination: "out/y.png"},
		{Source: "in/a/b.jpg", Destination: "out/b.jpg"},
		{Source: "in/c/b.jpg", Destination: "out/b.jpg"},
		{Source: "in/d/b.jpg", Destination: "out/b.jpg"},
	}

	got := Collisions(items)
	require.Len(t, got, 2)
	assert.Equal(t, Collision{Destination: "out/b.jpg", Sources: []string{"in/a/b.jpg", "in/c/b.jpg", "in/d/b.jpg"}}, got[0])
	assert.Equal(t, Collision{Destination: "out/x.png", Sources: []string{"in/a/x.png", "in/b/x.png"}}, got[1])

	assert.Empty(t, Collisions(items[2:3]))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
