// pkg/pipeline/metrics.go
package pipeline

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/model"
)

// RunMetrics tracks counters for a pipeline run and renders the
// end-of-run summary. The pipeline itself is single-threaded; the
// metrics only ever see one writer.
type RunMetrics struct {
	logger        *zap.Logger
	StartTime     time.Time
	EndTime       time.Time
	RowsRead      int64
	RowsWritten   int64
	NormalizeOps  int
	WarningCounts map[model.WarningCategory]int
}

// NewRunMetrics creates a metrics collector for one run
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		logger:        logger,
		StartTime:     time.Now(),
		WarningCounts: make(map[model.WarningCategory]int),
	}
}

// RecordSheetLoad accounts for a loaded sheet
func (m *RunMetrics) RecordSheetLoad(sheet string, rows int) {
	m.RowsRead += int64(rows)

	if m.logger != nil {
		m.logger.Info("Loaded sheet",
			zap.String("sheet", sheet),
			zap.Int("rows", rows))
	}
}

// RecordWarning increments the count for a warning's category and logs
// it in real time
func (m *RunMetrics) RecordWarning(w model.Warning) {
	m.WarningCounts[w.Category]++

	if m.logger != nil {
		m.logger.Warn(w.Message,
			zap.String("category", w.Category.String()),
			zap.String("sheet", w.SheetName),
			zap.String("column", w.ColumnName))
	}
}

// RecordNormalizeOps accounts for cell rewrites performed by the rules
func (m *RunMetrics) RecordNormalizeOps(count int) {
	m.NormalizeOps += count
}

// RecordRowsWritten accounts for rows handed to the sink
func (m *RunMetrics) RecordRowsWritten(rows int) {
	m.RowsWritten += int64(rows)
}

// Duration returns the elapsed run time
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// Complete marks the run as finished and logs the summary
func (m *RunMetrics) Complete(success bool) {
	m.EndTime = time.Now()

	if m.logger != nil {
		m.logger.Info("Pipeline run completed",
			zap.Bool("success", success),
			zap.Duration("duration", m.Duration()),
			zap.Int64("rowsRead", m.RowsRead),
			zap.Int64("rowsWritten", m.RowsWritten),
			zap.Int("normalizeOps", m.NormalizeOps),
			zap.Int("warnings", m.totalWarnings()))
	}
}

func (m *RunMetrics) totalWarnings() int {
	total := 0
	for _, count := range m.WarningCounts {
		total += count
	}
	return total
}

// GenerateReport renders a human-readable run report
func (m *RunMetrics) GenerateReport(result *RunResult) string {
	report := fmt.Sprintf(`
Pipeline Run Report
===================
Run ID:            %s
Success:           %t
Duration:          %.2fs

Rows read:         %d
Rows written:      %d
Cell rewrites:     %d
Warnings:          %d
`,
		result.RunID,
		result.Success,
		m.Duration().Seconds(),
		m.RowsRead,
		m.RowsWritten,
		m.NormalizeOps,
		m.totalWarnings(),
	)

	if len(result.SheetRows) > 0 {
		report += "\nSheets\n------\n"
		names := make([]string, 0, len(result.SheetRows))
		for name := range result.SheetRows {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			report += fmt.Sprintf("- %s: %d rows\n", name, result.SheetRows[name])
		}
	}

	if m.totalWarnings() > 0 {
		report += "\nWarning Distribution\n--------------------\n"
		for category, count := range m.WarningCounts {
			report += fmt.Sprintf("- %s: %d\n", category.String(), count)
		}
	}

	return report
}
