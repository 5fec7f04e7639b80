package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip builds a zip archive at path from name -> content.
func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

// writeTarGz builds a .tar.gz archive at path from name -> content.
func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
}

func TestIsArchive(t *testing.T) {
	for _, name := range []string{"w.zip", "w.7z", "w.tar", "w.tar.gz", "W.TGZ", "w.tar.bz2", "w.tar.xz"} {
		assert.True(t, IsArchive(name), name)
	}
	for _, name := range []string{"w.whl", "w.gz", "wheels", "w.rar"} {
		assert.False(t, IsArchive(name), name)
	}
}

func TestExtractArchive_ZipWithTopLevelFolder(t *testing.T) {
	src := filepath.Join(t.TempDir(), "wheels.zip")
	writeZip(t, src, map[string]string{
		"wheels/numpy-1.26.0-cp312-none-any.whl": "numpy",
		"wheels/six-1.16.0-py2.py3-none-any.whl":  "six",
	})
	dest := t.TempDir()

	dir, err := ExtractArchive(src, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "wheels"), dir)

	data, err := os.ReadFile(filepath.Join(dir, "six-1.16.0-py2.py3-none-any.whl"))
	require.NoError(t, err)
	assert.Equal(t, "six", string(data))
}

func TestExtractArchive_TarGzFlat(t *testing.T) {
	src := filepath.Join(t.TempDir(), "wheels.tar.gz")
	writeTarGz(t, src, map[string]string{
		"a-1.0-py3-none-any.whl": "a",
		"b-1.0-py3-none-any.whl": "b",
	})
	dest := t.TempDir()

	dir, err := ExtractArchive(src, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, dir)
	assert.FileExists(t, filepath.Join(dest, "a-1.0-py3-none-any.whl"))
	assert.FileExists(t, filepath.Join(dest, "b-1.0-py3-none-any.whl"))
}

func TestExtractArchive_RejectsEscapingEntries(t *testing.T) {
	src := filepath.Join(t.TempDir(), "evil.tar.gz")
	writeTarGz(t, src, map[string]string{"../escape.whl": "x"})

	dest := t.TempDir()
	_, err := ExtractArchive(src, dest)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "escape.whl"))
}

func TestSafeJoin(t *testing.T) {
	dest := t.TempDir()

	got, err := safeJoin(dest, "wheels/a.whl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "wheels", "a.whl"), got)

	_, err = safeJoin(dest, "../../etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestExtractArchive_Unsupported(t *testing.T) {
	_, err := ExtractArchive("wheels.rar", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive format")
}

func TestPrepareWheelhouse_Directory(t *testing.T) {
	dir := t.TempDir()

	wh, err := PrepareWheelhouse(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, wh.Dir)

	// Closing must not remove a user-provided directory
	require.NoError(t, wh.Close())
	assert.DirExists(t, dir)
}

func TestPrepareWheelhouse_Archive(t *testing.T) {
	src := filepath.Join(t.TempDir(), "wheels.zip")
	writeZip(t, src, map[string]string{"pkg-1.0-py3-none-any.whl": "pkg"})

	wh, err := PrepareWheelhouse(src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(wh.Dir, "pkg-1.0-py3-none-any.whl"))

	require.NoError(t, wh.Close())
	assert.NoDirExists(t, wh.Dir)
}

func TestPrepareWheelhouse_URL(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bundle.tar.gz")
	writeTarGz(t, src, map[string]string{"pkg-2.0-py3-none-any.whl": "pkg"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bundle.tar.gz" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, src)
	}))
	defer srv.Close()

	wh, err := PrepareWheelhouse(srv.URL + "/bundle.tar.gz")
	require.NoError(t, err)
	defer wh.Close()
	assert.FileExists(t, filepath.Join(wh.Dir, "pkg-2.0-py3-none-any.whl"))

	_, err = PrepareWheelhouse(srv.URL + "/missing.tar.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestPrepareWheelhouse_Errors(t *testing.T) {
	_, err := PrepareWheelhouse(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	plain := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("hi"), 0644))
	_, err = PrepareWheelhouse(plain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a directory nor a supported archive")

	_, err = PrepareWheelhouse("https://example.invalid/wheels.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not point to a supported archive")
}
