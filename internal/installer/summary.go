package installer

import "pylib-setup/internal/logger"

// PrintSummary prints the final outcome of a run.
// Failed names include metadata lookups, so the count is not a share of
// the install attempts.
func PrintSummary(r Result) {
	if r.Succeeded() {
		logger.Success("All %d packages installed successfully.\n", r.Attempted)
		return
	}

	logger.Error("[ERROR] %d packages failed (%d install attempts):\n", len(r.Failed), r.Attempted)
	for _, name := range r.Failed {
		logger.Error("  - %s\n", name)
	}
}
