package state

import (
	"encoding/json" // For JSON encoding and decoding of the report file
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"pylib-setup/internal/logger"
)

// Report records the outcome of one install run.
type Report struct {
	ID           string    `json:"id"`                     // Unique run identifier
	StartedAt    time.Time `json:"started_at"`             // When the run began
	FinishedAt   time.Time `json:"finished_at"`            // When the failure log was flushed
	Python       string    `json:"python"`                 // Interpreter used to run pip
	Catalog      string    `json:"catalog"`                // Catalog file, or the embedded default
	Attempted    int       `json:"attempted"`              // Number of pip install invocations
	Installed    []string  `json:"installed"`              // Successful installs, in order
	Failed       []string  `json:"failed"`                 // Failed installs, in order
	Dependencies []string  `json:"dependencies,omitempty"` // Names found by the dependency pre-pass
	LogWritten   bool      `json:"log_written"`            // Whether the failure log could be written
}

// NewReport starts a report for a run beginning now.
func NewReport(python, catalog string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Python:    python,
		Catalog:   catalog,
	}
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}

// SaveReport writes the report as indented JSON.
// Errors are logged and returned; a report is never required for a run to succeed.
func SaveReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal report: %v\n", err)
		return err
	}

	logger.Debug("[DEBUG] Writing report to %s:\n%s\n", path, string(data))

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("[ERROR] Failed to write report file %s: %v\n", path, err)
		return err
	}
	return nil
}
