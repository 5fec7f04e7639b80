package installer

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pylib-setup/internal/logger"
)

// Wheelhouse is a local directory of pre-built distributions handed to pip
// with --find-links.
type Wheelhouse struct {
	Dir     string // Directory pip should search
	tempDir string // Scratch directory to remove on Close, if any
}

// Close removes any files extracted or downloaded for the wheelhouse.
func (w *Wheelhouse) Close() error {
	if w == nil || w.tempDir == "" {
		return nil
	}
	return os.RemoveAll(w.tempDir)
}

// PrepareWheelhouse turns src into a directory pip can read.
//   - a directory is used as is
//   - an archive (.zip, .7z, .tar, .tar.gz, .tgz, .tar.bz2, .tar.xz) is extracted
//     into a temporary directory
//   - an http(s) URL to an archive is downloaded first, then extracted
func PrepareWheelhouse(src string) (*Wheelhouse, error) {
	if isURL(src) {
		return prepareRemote(src)
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("wheelhouse %s: %w", src, err)
	}
	if info.IsDir() {
		logger.Debug("[DEBUG] Using wheelhouse directory %s\n", src)
		return &Wheelhouse{Dir: src}, nil
	}
	if !IsArchive(src) {
		return nil, fmt.Errorf("wheelhouse %s is neither a directory nor a supported archive", src)
	}

	tmp, err := os.MkdirTemp("", "pylib-wheelhouse-")
	if err != nil {
		return nil, fmt.Errorf("cannot create wheelhouse directory: %w", err)
	}

	dir, err := ExtractArchive(src, tmp)
	if err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	logger.Info("[INFO] Extracted wheelhouse %s to %s\n", src, dir)
	return &Wheelhouse{Dir: dir, tempDir: tmp}, nil
}

// prepareRemote downloads an archive and extracts it below one scratch dir.
func prepareRemote(rawURL string) (*Wheelhouse, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid wheelhouse URL %s: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if !IsArchive(name) {
		return nil, fmt.Errorf("wheelhouse URL %s does not point to a supported archive", rawURL)
	}

	tmp, err := os.MkdirTemp("", "pylib-wheelhouse-")
	if err != nil {
		return nil, fmt.Errorf("cannot create wheelhouse directory: %w", err)
	}

	archive := filepath.Join(tmp, name)
	logger.Info("[INFO] Downloading wheelhouse %s\n", rawURL)
	if err := downloadFile(rawURL, archive); err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}

	extractDir := filepath.Join(tmp, "wheels")
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	dir, err := ExtractArchive(archive, extractDir)
	if err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	return &Wheelhouse{Dir: dir, tempDir: tmp}, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
func downloadFile(url, destPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to GET %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded wheelhouse archive to: %s\n", destPath)
	return nil
}
