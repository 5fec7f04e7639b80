package pip

import (
	"fmt"
	"runtime"
)

// Requirement is a single install target.
type Requirement struct {
	Name     string
	Version  string // exact pin, rendered as name==version
	IndexURL string // alternate index, rendered as --index-url
}

// String renders the requirement the way pip expects it on the command line.
func (r Requirement) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "==" + r.Version
}

// Manager drives pip through "<python> -m pip".
type Manager struct {
	python    string
	runner    Runner
	findLinks string
}

// New creates a Manager using the real os/exec runner.
func New(python string) *Manager {
	return NewWithRunner(python, &ExecRunner{})
}

// NewWithRunner creates a Manager with a custom runner (for testing).
func NewWithRunner(python string, r Runner) *Manager {
	return &Manager{python: python, runner: r}
}

// SetFindLinks makes every install also look for distributions in dir.
func (m *Manager) SetFindLinks(dir string) {
	m.findLinks = dir
}

// Python returns the interpreter the manager invokes.
func (m *Manager) Python() string {
	return m.python
}

// EnsurePip bootstraps pip into the interpreter.
func (m *Manager) EnsurePip() error {
	if err := m.runner.Stream(m.python, "-m", "ensurepip", "--upgrade"); err != nil {
		return fmt.Errorf("ensurepip failed: %w", err)
	}
	return nil
}

// Install runs "pip install --upgrade <pkg>".
func (m *Manager) Install(pkg string) error {
	return m.InstallRequirement(Requirement{Name: pkg})
}

// InstallRequirement installs a possibly pinned requirement.
func (m *Manager) InstallRequirement(req Requirement) error {
	return m.runner.Stream(m.python, InstallArgs(req, m.findLinks)...)
}

// Show returns the text output of "pip show <pkg>".
func (m *Manager) Show(pkg string) (string, error) {
	return m.runner.Output(m.python, "-m", "pip", "show", pkg)
}

// InstallArgs builds the interpreter arguments for installing req.
func InstallArgs(req Requirement, findLinks string) []string {
	args := []string{"-m", "pip", "install", "--upgrade", req.String()}
	if req.IndexURL != "" {
		args = append(args, "--index-url", req.IndexURL)
	}
	if findLinks != "" {
		args = append(args, "--find-links", findLinks)
	}
	return args
}

// ClearScreen clears the terminal. Failures are returned but carry no
// consequence for the install run.
func ClearScreen(r Runner) error {
	if runtime.GOOS == "windows" {
		return r.Stream("cmd", "/c", "cls")
	}
	return r.Stream("clear")
}
