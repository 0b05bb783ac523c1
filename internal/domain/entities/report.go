package entities

import (
	"fmt"
	"strings"
)

// RenderReport builds the managed status section from an analysis and the
// tasks synthesized out of it. The section starts with the marker heading
// and uses only deeper headings internally, so MergeSection's boundary
// detection never matches generated content.
func RenderReport(analysis *Analysis, tasks []Task, marker string) string {
	var report strings.Builder

	report.WriteString(marker + "\n\n")
	fmt.Fprintf(&report, "_Last updated: %s_\n\n", analysis.Timestamp)

	if analysis.Error != "" {
		fmt.Fprintf(&report, "> Change-set retrieval degraded: %s\n\n", analysis.Error)
	}

	fmt.Fprintf(&report, "Analyzed %d merged change sets.\n\n", analysis.TotalCount)

	if len(analysis.RecentRecords) > 0 {
		report.WriteString("### Recent activity\n\n")
		for _, record := range analysis.RecentRecords {
			fmt.Fprintf(&report, "- %s\n", record.Summary)
		}
		report.WriteString("\n")
	}

	report.WriteString("### Suggested tasks\n\n")
	for _, task := range tasks {
		fmt.Fprintf(
			&report, "- **%s** (%s, %s, %gh): %s\n",
			task.Title, task.Category, task.Priority, task.EstimatedHours, task.Description,
		)
	}
	report.WriteString("\n")
	fmt.Fprintf(&report, "Total estimated effort: %gh\n", TotalEffort(tasks))

	return report.String()
}

// TotalEffort sums the estimated hours across all tasks.
func TotalEffort(tasks []Task) float64 {
	total := 0.0
	for _, task := range tasks {
		total += task.EstimatedHours
	}
	return total
}
