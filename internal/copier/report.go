package copier

import (
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusMissing Status = "missing"
)

// TableReport compares one table between source and target after a run.
// Copied and Failed stay zero for verify-only runs.
type TableReport struct {
	Table       string `json:"table"`
	SourceCount int64  `json:"source_count"`
	TargetCount int64  `json:"target_count"`
	Copied      int64  `json:"copied"`
	Skipped     int64  `json:"skipped"`
	Failed      int64  `json:"failed"`
	Status      Status `json:"status"`
	Error       string `json:"error,omitempty"`
}

type Report struct {
	RunID  uuid.UUID     `json:"run_id"`
	Tables []TableReport `json:"tables"`
}

func (r Report) OK() bool {
	for _, table := range r.Tables {
		if table.Status != StatusOK {
			return false
		}
	}
	return true
}

// Counts tallies tables per status.
func (r Report) Counts() map[Status]int {
	counts := map[Status]int{StatusOK: 0, StatusPartial: 0, StatusMissing: 0}
	for _, table := range r.Tables {
		counts[table.Status]++
	}
	return counts
}

func (r Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "run %s\n", r.RunID); err != nil {
		return err
	}
	for _, table := range r.Tables {
		line := fmt.Sprintf("%-25s source=%-6d target=%-6d copied=%-6d skipped=%-6d failed=%-6d %s",
			table.Table, table.SourceCount, table.TargetCount, table.Copied, table.Skipped, table.Failed, table.Status)
		if table.Error != "" {
			line += " (" + table.Error + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	counts := r.Counts()
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	summary := "summary:"
	for _, status := range statuses {
		summary += fmt.Sprintf(" %s=%d", status, counts[Status(status)])
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func reconcile(table string, source int64, target int64, targetErr error) TableReport {
	report := TableReport{Table: table, SourceCount: source, TargetCount: target}
	switch {
	case targetErr != nil:
		report.Status = StatusMissing
		report.Error = targetErr.Error()
	case source == target:
		report.Status = StatusOK
	default:
		report.Status = StatusPartial
	}
	return report
}

// fail downgrades an otherwise reconciled table and keeps the first error.
func (t *TableReport) fail(message string) {
	if t.Status == StatusOK {
		t.Status = StatusPartial
	}
	if t.Error == "" {
		t.Error = message
	}
}
