package installer

import (
	"pylib-setup/internal/config"
	"pylib-setup/internal/logger"
	"pylib-setup/internal/pip"
)

// PackageManager is the subset of the pip adapter the install loop needs.
type PackageManager interface {
	Install(pkg string) error
	InstallRequirement(req pip.Requirement) error
	Show(pkg string) (string, error)
}

// Result summarizes one run.
type Result struct {
	Attempted    int      // Number of install invocations made
	Installed    []string // Names installed successfully, in install order
	Failed       []string // Names that failed, first failure first, no duplicates
	Dependencies []string // Dependency names discovered by the pre-pass, sorted
}

// Succeeded reports whether nothing failed.
func (r Result) Succeeded() bool {
	return len(r.Failed) == 0
}

// Installer runs the sequential install loop over a catalog.
// An Installer is meant for a single run; create a new one per run.
type Installer struct {
	pm     PackageManager
	extras config.Extras

	attempted map[string]bool // names already installed (or tried) in this run
	installed []string
	failures  *Failures
	count     int
}

// New creates an Installer driving pm. extras may be nil.
func New(pm PackageManager, extras config.Extras) *Installer {
	return &Installer{
		pm:        pm,
		extras:    extras,
		attempted: make(map[string]bool),
		failures:  NewFailures(),
	}
}

// Run installs every package of every category in catalog order.
// When resolveDeps is set, the dependency pre-pass runs first and installs
// the declared dependencies of all catalog packages.
// Failures never stop the run; they are collected in the returned Result.
func (in *Installer) Run(catalog config.Catalog, resolveDeps bool) Result {
	logger.Debug("[DEBUG] Run: %d categories, %d packages, resolveDeps=%t\n",
		len(catalog.Categories), catalog.Len(), resolveDeps)

	var deps []string
	if resolveDeps {
		deps = in.ResolveDependencies(catalog)
		in.InstallDependencies(deps)
	}

	for _, category := range catalog.Categories {
		logger.Info("[INFO] == %s (%d packages) ==\n", category.Name, len(category.Packages))
		for _, pkg := range category.Packages {
			in.installPackage(pkg)
		}
	}

	return Result{
		Attempted:    in.count,
		Installed:    append([]string(nil), in.installed...),
		Failed:       in.failures.Names(),
		Dependencies: deps,
	}
}

// Failed returns the names recorded as failed so far.
func (in *Installer) Failed() []string {
	return in.failures.Names()
}

// installPackage installs one catalog package and then its extras.
func (in *Installer) installPackage(pkg string) {
	if in.attempted[pkg] {
		logger.Debug("[DEBUG] %s already handled in this run. Skipping.\n", pkg)
		return
	}
	in.install(pip.Requirement{Name: pkg})

	// Extras run regardless of the owning package's outcome
	for _, extra := range in.extras[pkg] {
		in.install(pip.Requirement{Name: extra.Name, Version: extra.Version, IndexURL: extra.IndexURL})
	}
}

// install performs one pip invocation and records its outcome.
func (in *Installer) install(req pip.Requirement) {
	in.attempted[req.Name] = true
	in.count++

	logger.Info("[INFO] Installing %s...\n", req)
	var err error
	if req.Version == "" && req.IndexURL == "" {
		err = in.pm.Install(req.Name)
	} else {
		err = in.pm.InstallRequirement(req)
	}

	if err != nil {
		logger.Error("[ERROR] Failed to install %s: %v\n", req, err)
		in.failures.Add(req.Name)
		return
	}

	logger.Success("Successfully installed %s.\n", req)
	in.installed = append(in.installed, req.Name)
}
