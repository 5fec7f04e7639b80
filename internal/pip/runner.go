package pip

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"pylib-setup/internal/logger"
)

// Runner executes external commands. It exists so tests can replace the
// package manager with a fake.
type Runner interface {
	// Stream runs a command with its output attached to the console and
	// reports whether it exited successfully.
	Stream(name string, args ...string) error
	// Output runs a command and returns its standard output.
	Output(name string, args ...string) (string, error)
}

// ExecRunner is the default Runner backed by os/exec.
type ExecRunner struct {
	Stdout io.Writer // Console for streamed commands; os.Stdout when nil
	Stderr io.Writer // Console for streamed commands; os.Stderr when nil
}

// Stream runs the command and waits for it to exit.
func (r *ExecRunner) Stream(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)
	cmd.Stderr = orDefault(r.Stderr, os.Stderr)

	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}

// Output runs the command and captures stdout. Stderr is kept for the error
// message when the command fails.
func (r *ExecRunner) Output(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%s: %w: %s", strings.Join(cmd.Args, " "), err, msg)
		}
		return stdout.String(), fmt.Errorf("%s: %w", strings.Join(cmd.Args, " "), err)
	}
	return stdout.String(), nil
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
