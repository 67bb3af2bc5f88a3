package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectStatic(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "static")
	root := filepath.Join(base, "staticfiles")

	writeFile(t, filepath.Join(source, "css", "app.css"), "body{}")
	writeFile(t, filepath.Join(source, "js", "app.js"), "void 0;")

	copied, err := CollectStatic([]string{source}, root)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	data, err := os.ReadFile(filepath.Join(root, "css", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

func TestCollectStatic_SecondRunCopiesNothing(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "static")
	root := filepath.Join(base, "staticfiles")

	writeFile(t, filepath.Join(source, "app.css"), "body{}")

	copied, err := CollectStatic([]string{source}, root)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	copied, err = CollectStatic([]string{source}, root)
	require.NoError(t, err)
	assert.Equal(t, 0, copied)
}

func TestCollectStatic_RecopiesChangedFile(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "static")
	root := filepath.Join(base, "staticfiles")

	writeFile(t, filepath.Join(source, "app.css"), "body{}")

	_, err := CollectStatic([]string{source}, root)
	require.NoError(t, err)

	// Same size, newer mtime.
	writeFile(t, filepath.Join(source, "app.css"), "html{}")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(source, "app.css"), future, future))

	copied, err := CollectStatic([]string{source}, root)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	data, err := os.ReadFile(filepath.Join(root, "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "html{}", string(data))
}

func TestCollectStatic_SkipsMissingSource(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "static")
	root := filepath.Join(base, "staticfiles")

	writeFile(t, filepath.Join(source, "app.css"), "body{}")

	copied, err := CollectStatic([]string{filepath.Join(base, "nope"), source}, root)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
}

func TestCollectStatic_LaterSourceWins(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "first")
	second := filepath.Join(base, "second")
	root := filepath.Join(base, "staticfiles")

	writeFile(t, filepath.Join(first, "app.css"), "body{}")
	writeFile(t, filepath.Join(second, "app.css"), "html{color:red}")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(second, "app.css"), future, future))

	copied, err := CollectStatic([]string{first, second}, root)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	data, err := os.ReadFile(filepath.Join(root, "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "html{color:red}", string(data))
}

func TestCollectStatic_FileMode(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "static")
	root := filepath.Join(base, "staticfiles")

	writeFile(t, filepath.Join(source, "app.css"), "body{}")

	_, err := CollectStatic([]string{source}, root)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "app.css"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o664), info.Mode().Perm())
}
