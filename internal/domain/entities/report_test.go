//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

func TestRenderReport(t *testing.T) {
	t.Parallel()

	t.Run("should render marker, activity, tasks and the effort total", func(t *testing.T) {
		// given
		analysis := &entities.Analysis{
			Timestamp:  "2025-06-01T12:00:00Z",
			TotalCount: 7,
			RecentRecords: []entities.ChangeSetRecord{
				{ID: 1, Title: "Fix parser", Summary: "Fix parser (2 files) [documentation]"},
			},
		}
		tasks := []entities.Task{
			{
				ID:             "documentation-abcd1234-1",
				Title:          "Close the documentation gap",
				Description:    "Bring the docs in line.",
				Category:       entities.TaskDocumentation,
				Priority:       entities.PriorityMedium,
				EstimatedHours: 2,
			},
			{
				ID:             "feature-abcd1234-2",
				Title:          "Extend the analysis notebook",
				Description:    "Follow up on the new material.",
				Category:       entities.TaskFeature,
				Priority:       entities.PriorityMedium,
				EstimatedHours: 4,
			},
		}

		// when
		report := entities.RenderReport(analysis, tasks, "## Automated Status")

		// then
		assert.True(t, strings.HasPrefix(report, "## Automated Status\n"))
		assert.Contains(t, report, "_Last updated: 2025-06-01T12:00:00Z_")
		assert.Contains(t, report, "Analyzed 7 merged change sets.")
		assert.Contains(t, report, "### Recent activity")
		assert.Contains(t, report, "- Fix parser (2 files) [documentation]")
		assert.Contains(t, report, "### Suggested tasks")
		assert.Contains(t, report,
			"- **Close the documentation gap** (documentation, medium, 2h): Bring the docs in line.")
		assert.Contains(t, report, "Total estimated effort: 6h")
		assert.NotContains(t, report, "degraded")
	})

	t.Run("should surface the degradation note when the analysis carries an error", func(t *testing.T) {
		// given
		analysis := &entities.Analysis{
			Timestamp:     "2025-06-01T12:00:00Z",
			TotalCount:    0,
			RecentRecords: []entities.ChangeSetRecord{},
			Error:         "api rate limited",
		}

		// when
		report := entities.RenderReport(analysis, nil, "## Automated Status")

		// then
		assert.Contains(t, report, "> Change-set retrieval degraded: api rate limited")
		assert.Contains(t, report, "Analyzed 0 merged change sets.")
		assert.NotContains(t, report, "### Recent activity")
		assert.Contains(t, report, "Total estimated effort: 0h")
	})

	t.Run("should never emit a same-level heading below the marker", func(t *testing.T) {
		// given
		analysis := &entities.Analysis{
			Timestamp:  "2025-06-01T12:00:00Z",
			TotalCount: 1,
			RecentRecords: []entities.ChangeSetRecord{
				{ID: 1, Title: "Fix parser", Summary: "Fix parser (1 files)"},
			},
		}

		// when
		report := entities.RenderReport(analysis, nil, "## Automated Status")

		// then
		for i, line := range strings.Split(report, "\n") {
			if i == 0 {
				continue
			}
			assert.False(t, strings.HasPrefix(line, "## "), "line %d: %q", i, line)
		}
	})
}

func TestTotalEffort(t *testing.T) {
	t.Parallel()

	t.Run("should sum estimated hours", func(t *testing.T) {
		// given
		tasks := []entities.Task{
			{EstimatedHours: 2},
			{EstimatedHours: 3.5},
		}

		// when / then
		assert.InDelta(t, 5.5, entities.TotalEffort(tasks), 0.001)
	})

	t.Run("should return zero for no tasks", func(t *testing.T) {
		assert.Zero(t, entities.TotalEffort(nil))
	})
}
