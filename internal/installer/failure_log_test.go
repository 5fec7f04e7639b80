package installer

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylib-setup/internal/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	restore := logger.SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestFailureLine(t *testing.T) {
	assert.Equal(t, "numpy installation failed", FailureLine("numpy"))
}

func TestFailureLog_ReplaceCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Failed.txt")
	log := FailureLog{Path: path}

	previous, err := log.Replace([]string{"kats", "pyflux"})
	require.NoError(t, err)
	assert.Empty(t, previous)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kats installation failed\npyflux installation failed\n", string(data))
}

func TestFailureLog_ReplaceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Failed.txt")
	require.NoError(t, os.WriteFile(path, []byte("old1 installation failed\nold2 installation failed\nold3 installation failed\n"), 0644))
	log := FailureLog{Path: path}

	previous, err := log.Replace([]string{"new"})
	require.NoError(t, err)
	assert.Equal(t, "old1 installation failed\nold2 installation failed\nold3 installation failed\n", previous)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new installation failed\n", string(data))
}

func TestFailureLog_ReplaceWithNoFailuresEmptiesLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Failed.txt")
	require.NoError(t, os.WriteFile(path, []byte("x installation failed\n"), 0644))

	_, err := FailureLog{Path: path}.Replace(nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFailureLog_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Failed.txt")
	log := FailureLog{Path: path}

	content, err := log.Read()
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, os.WriteFile(path, []byte("a installation failed\n"), 0644))
	content, err = log.Read()
	require.NoError(t, err)
	assert.Equal(t, "a installation failed\n", content)
}

func TestFailureLog_FlushShowsPreviousContent(t *testing.T) {
	buf := captureLog(t)
	path := filepath.Join(t.TempDir(), "Failed.txt")
	require.NoError(t, os.WriteFile(path, []byte("renpy installation failed"), 0644))

	ok := FailureLog{Path: path}.Flush([]string{"tcod"})
	require.True(t, ok)

	assert.Contains(t, buf.String(), "renpy installation failed\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tcod installation failed\n", string(data))
}

func TestFailureLog_FlushPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced the same way on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	buf := captureLog(t)
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	ok := FailureLog{Path: filepath.Join(dir, "Failed.txt")}.Flush([]string{"pygtk"})

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "Permission denied")
}

func TestFailureLog_FlushOtherErrorIsDiagnostic(t *testing.T) {
	buf := captureLog(t)
	// A directory cannot be opened for writing
	dir := t.TempDir()

	ok := FailureLog{Path: dir}.Flush([]string{"x"})

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestIsPermissionAndIsUnsupported(t *testing.T) {
	perm := &fs.PathError{Op: "open", Path: "Failed.txt", Err: syscall.EACCES}
	assert.True(t, IsPermission(fmt.Errorf("failed to open: %w", perm)))
	assert.False(t, IsUnsupported(perm))

	rofs := &fs.PathError{Op: "open", Path: "Failed.txt", Err: syscall.EROFS}
	assert.True(t, IsUnsupported(fmt.Errorf("wrap: %w", rofs)))
	assert.True(t, IsUnsupported(errors.ErrUnsupported))
	assert.False(t, IsPermission(rofs))

	assert.False(t, IsPermission(errors.New("boom")))
	assert.False(t, IsUnsupported(errors.New("boom")))
}

// denyOpen makes every log open fail with EACCES until the test ends.
func denyOpen(t *testing.T) {
	t.Helper()
	prev := openFile
	openFile = func(name string, flag int, perm os.FileMode) (*os.File, error) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: syscall.EACCES}
	}
	t.Cleanup(func() { openFile = prev })
}

func TestFailureLog_FlushOpenDenied(t *testing.T) {
	buf := captureLog(t)
	denyOpen(t)

	ok := FailureLog{Path: filepath.Join(t.TempDir(), "Failed.txt")}.Flush([]string{"pygtk"})

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "Permission denied")
}

func TestFailureLog_FlushReadOnlyLogShowsPreviousContent(t *testing.T) {
	buf := captureLog(t)
	path := filepath.Join(t.TempDir(), "Failed.txt")
	require.NoError(t, os.WriteFile(path, []byte("hadoop installation failed\n"), 0444))
	denyOpen(t)

	ok := FailureLog{Path: path}.Flush([]string{"koalas"})

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "hadoop installation failed\n")
	assert.Contains(t, buf.String(), "Permission denied")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hadoop installation failed\n", string(data))
}
