package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"

	"pylib-setup/internal/logger"
)

// openFile opens the log for Replace. Tests swap it to simulate
// filesystems that refuse the open.
var openFile = os.OpenFile

// FailureLine formats one log entry.
func FailureLine(name string) string {
	return name + " installation failed"
}

// FailureLog is the plain-text file listing the packages that failed in the
// most recent run. Every flush replaces the previous content.
type FailureLog struct {
	Path string
}

// Read returns the current content of the log. A missing file reads as empty.
func (l FailureLog) Read() (string, error) {
	data, err := os.ReadFile(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l.Path, err)
	}
	return string(data), nil
}

// Replace opens the log (creating it when absent), reads what the previous
// run left there, truncates it and writes one line per failed name.
// It returns the previous content.
func (l FailureLog) Replace(failed []string) (previous string, err error) {
	f, err := openFile(l.Path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", l.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", l.Path, cerr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l.Path, err)
	}
	previous = string(data)

	if err := f.Truncate(0); err != nil {
		return previous, fmt.Errorf("failed to truncate %s: %w", l.Path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return previous, fmt.Errorf("failed to rewind %s: %w", l.Path, err)
	}

	var b strings.Builder
	for _, name := range failed {
		b.WriteString(FailureLine(name))
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return previous, fmt.Errorf("failed to write %s: %w", l.Path, err)
	}

	return previous, nil
}

// Flush replaces the log with failed, echoing the previous content to the
// console first. Log errors are reported as diagnostics and never returned:
// the run is complete whether or not the log could be written.
// It reports whether the log was written.
func (l FailureLog) Flush(failed []string) bool {
	previous, err := l.Replace(failed)

	// A read-only log still shows what the previous run left behind
	if err != nil && previous == "" && IsPermission(err) {
		if content, rerr := l.Read(); rerr == nil {
			previous = content
		}
	}

	if strings.TrimSpace(previous) != "" {
		logger.Info("[INFO] Failures recorded by the previous run (%s):\n", l.Path)
		logger.Plain("%s", previous)
		if !strings.HasSuffix(previous, "\n") {
			logger.Plain("\n")
		}
	}

	switch {
	case err == nil:
		logger.Debug("[DEBUG] Wrote %d entries to %s\n", len(failed), l.Path)
		return true
	case IsPermission(err):
		logger.Error("[ERROR] Permission denied: cannot write failure log %s\n", l.Path)
	case IsUnsupported(err):
		logger.Error("[ERROR] Unsupported operation: cannot write failure log %s\n", l.Path)
	default:
		logger.Error("[ERROR] Could not write failure log: %v\n", err)
	}
	return false
}

// IsPermission reports whether err is an access-denied condition.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// IsUnsupported reports whether err means the filesystem cannot perform the
// operation, e.g. a read-only mount or a file type without truncate support.
func IsUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported) ||
		errors.Is(err, syscall.ENOTSUP) ||
		errors.Is(err, syscall.EOPNOTSUPP) ||
		errors.Is(err, syscall.EROFS) ||
		errors.Is(err, syscall.EINVAL)
}
