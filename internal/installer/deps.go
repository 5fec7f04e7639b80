package installer

import (
	"bufio"
	"sort"
	"strings"

	"pylib-setup/internal/config"
	"pylib-setup/internal/logger"
)

// requiresPrefix starts the dependency line of "pip show" output.
const requiresPrefix = "Requires:"

// ParseRequires extracts the dependency names from "pip show" output.
// It returns the raw comma-separated entries of the first "Requires:" line,
// which may include empty strings (e.g. for "Requires:" with no value).
// Output without such a line yields nil.
func ParseRequires(output string) []string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, requiresPrefix) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, requiresPrefix))
		return strings.Split(value, ", ")
	}
	return nil
}

// ResolveDependencies queries "pip show" for every distinct catalog package
// and returns the union of their declared dependencies, sorted.
// Empty names are dropped. A package whose metadata cannot be read is
// recorded as failed and contributes nothing.
// Only direct dependencies are collected.
func (in *Installer) ResolveDependencies(catalog config.Catalog) []string {
	set := make(map[string]struct{})

	for _, pkg := range catalog.Distinct() {
		logger.Debug("[DEBUG] Reading metadata for %s\n", pkg)
		out, err := in.pm.Show(pkg)
		if err != nil {
			logger.Error("[ERROR] Failed to read metadata for %s: %v\n", pkg, err)
			in.failures.Add(pkg)
			continue
		}

		for _, dep := range ParseRequires(out) {
			dep = strings.TrimSpace(dep)
			if dep == "" {
				continue
			}
			set[dep] = struct{}{}
		}
	}

	deps := make([]string, 0, len(set))
	for dep := range set {
		deps = append(deps, dep)
	}
	sort.Strings(deps)

	logger.Info("[INFO] Resolved %d dependencies\n", len(deps))
	return deps
}

// InstallDependencies installs each non-empty name, recording failures the
// same way catalog packages are recorded.
func (in *Installer) InstallDependencies(deps []string) {
	for _, dep := range deps {
		if strings.TrimSpace(dep) == "" {
			continue
		}
		in.installPackage(dep)
	}
}
