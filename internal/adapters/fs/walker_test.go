package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test structure
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dir1"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dir2"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "file1.js"), []byte("content1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dir1", "file2.css"), []byte("content2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dir2", "file3.js"), []byte("content3"), 0o600))

	walker := fs.NewWalker()
	files := make([]string, 0)

	for filePath := range walker.WalkFiles(tmpDir, nil) {
		files = append(files, filePath)
	}

	// Should find 3 files
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(tmpDir, "file1.js"))
	assert.Contains(t, files, filepath.Join(tmpDir, "dir1", "file2.css"))
	assert.Contains(t, files, filepath.Join(tmpDir, "dir2", "file3.js"))
}

func TestWalker_WalkFiles_SkipsGitAndJJ(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test structure with .git and .jj directories
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git", "objects"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".jj"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src"), 0o750))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("gitconfig"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".jj", "store"), []byte("jjstore"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", "main.js"), []byte("main();"), 0o600))

	walker := fs.NewWalker()
	files := make([]string, 0)

	for filePath := range walker.WalkFiles(tmpDir, nil) {
		files = append(files, filePath)
	}

	// Should only find src/main.js, not .git or .jj files
	assert.Len(t, files, 1)
	assert.Contains(t, files, filepath.Join(tmpDir, "src", "main.js"))
}

func TestWalker_WalkFiles_WithIgnores(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "build"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "application.js"), []byte("app();"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "application.js.swp"), []byte("swap"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "build", "output.js"), []byte("built"), 0o600))

	walker := fs.NewWalker()
	files := make([]string, 0)

	ignores := []string{"*.swp", "build"}
	for filePath := range walker.WalkFiles(tmpDir, ignores) {
		files = append(files, filePath)
	}

	assert.Equal(t, []string{filepath.Join(tmpDir, "application.js")}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(name), 0o600))
	}

	walker := fs.NewWalker()
	count := 0
	for range walker.WalkFiles(tmpDir, nil) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}

func TestWalker_WalkFiles_EmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	walker := fs.NewWalker()
	files := make([]string, 0)

	for filePath := range walker.WalkFiles(tmpDir, nil) {
		files = append(files, filePath)
	}

	// Should find no files
	assert.Empty(t, files)
}
