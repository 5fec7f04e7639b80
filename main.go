package main

import (
	"pylib-setup/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles argument parsing and execution.
//
// pylib-setup installs a catalog of Python libraries on a workstation:
//   - Reads a catalog of categories and package names (built-in, or a YAML file)
//   - Runs "<python> -m pip install --upgrade <pkg>" for each package, one at a time
//   - Optionally reads "pip show" metadata first and installs declared dependencies
//   - Writes every failed package to a plain-text log, replacing the previous run's log
//
// Error handling strategy:
//   - A failed install is recorded and the run continues; no package failure is fatal
//   - Log write problems (permissions, unsupported filesystems) are printed, not raised
//   - Only configuration errors (bad catalog file, unknown category) exit non-zero
func main() {
	cmd.Execute()
}
