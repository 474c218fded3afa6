// pkg/pipeline/result.go
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/dfbarros/unificador/pkg/model"
)

// RunResult represents the outcome of one pipeline run
type RunResult struct {
	RunID        string
	Success      bool
	SheetRows    map[string]int // sheet name -> rows loaded
	NormalizeOps int
	Warnings     []model.Warning
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	Snapshots    []string // relations whose snapshot was written
}

// NewRunResult initializes a result for a fresh run
func NewRunResult() *RunResult {
	return &RunResult{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
		SheetRows: make(map[string]int),
		Warnings:  make([]model.Warning, 0),
		Snapshots: make([]string, 0),
	}
}

// Complete marks the run as finished and calculates its duration
func (r *RunResult) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// AddWarning appends a warning to the result
func (r *RunResult) AddWarning(w model.Warning) {
	r.Warnings = append(r.Warnings, w)
}

// AddWarnings appends several warnings to the result
func (r *RunResult) AddWarnings(ws []model.Warning) {
	r.Warnings = append(r.Warnings, ws...)
}

// WarningCount returns the number of warnings recorded
func (r *RunResult) WarningCount() int {
	return len(r.Warnings)
}

// HasWarnings checks if any warnings were recorded
func (r *RunResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// WarningsByCategory groups the warning counts by category
func (r *RunResult) WarningsByCategory() map[model.WarningCategory]int {
	counts := make(map[model.WarningCategory]int)
	for _, w := range r.Warnings {
		counts[w.Category]++
	}
	return counts
}
