//go:build unit

package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autoreport/internal/domain/commands"
	"github.com/rios0rios0/autoreport/internal/domain/entities"
	builders "github.com/rios0rios0/autoreport/test/domain/entitybuilders"
)

var testSynthOpts = commands.SynthesizeOptions{
	StatusDocument: "README.md",
	WorkflowsDir:   ".github/workflows",
	Notebook:       "analysis.ipynb",
}

func analysisWithPaths(paths ...string) *entities.Analysis {
	return &entities.Analysis{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		TotalCount: 1,
		RecentRecords: []entities.ChangeSetRecord{
			builders.NewChangeSetBuilder().WithPaths(paths...).BuildRecord(),
		},
	}
}

func TestSynthesizeCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should suggest a documentation task when no markdown was touched", func(t *testing.T) {
		// given
		analysis := analysisWithPaths("main.go", "internal/server.go")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		require.Len(t, tasks, 1)
		assert.Equal(t, entities.TaskDocumentation, tasks[0].Category)
		assert.Equal(t, "Close the documentation gap", tasks[0].Title)
		assert.Equal(t, []string{"README.md"}, tasks[0].TargetFiles)
		assert.InDelta(t, 2.0, tasks[0].EstimatedHours, 0.001)
	})

	t.Run("should not suggest the documentation task when markdown was touched", func(t *testing.T) {
		// given
		analysis := analysisWithPaths("README.md", "main.go")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		for _, task := range tasks {
			assert.NotEqual(t, entities.TaskDocumentation, task.Category)
		}
	})

	t.Run("should suggest a workflow task for paths under the configured directory", func(t *testing.T) {
		// given
		opts := commands.SynthesizeOptions{
			StatusDocument: "README.md",
			WorkflowsDir:   "pipeline",
			Notebook:       "analysis.ipynb",
		}
		analysis := analysisWithPaths("README.md", "pipeline/ci.yml")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, opts)

		// then
		require.Len(t, tasks, 1)
		assert.Equal(t, entities.TaskAutomation, tasks[0].Category)
		assert.Equal(t, "Optimize automation workflows", tasks[0].Title)
		assert.Equal(t, []string{"pipeline"}, tasks[0].TargetFiles)
	})

	t.Run("should not match workflow paths outside the configured directory", func(t *testing.T) {
		// given
		analysis := analysisWithPaths("README.md", "pipeline/ci.yml")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts) // workflows dir is .github/workflows

		// then
		for _, task := range tasks {
			assert.NotEqual(t, entities.TaskAutomation, task.Category)
		}
	})

	t.Run("should order documentation before automation when both fire", func(t *testing.T) {
		// given
		opts := commands.SynthesizeOptions{
			StatusDocument: "README.md",
			WorkflowsDir:   "pipeline",
			Notebook:       "analysis.ipynb",
		}
		analysis := analysisWithPaths("pipeline/ci.yml")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, opts)

		// then
		require.Len(t, tasks, 2)
		assert.Equal(t, entities.TaskDocumentation, tasks[0].Category)
		assert.Equal(t, entities.TaskAutomation, tasks[1].Category)
	})

	t.Run("should suggest a notebook task targeting the touched notebook", func(t *testing.T) {
		// given
		analysis := analysisWithPaths("README.md", "notebooks/research.ipynb")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		require.Len(t, tasks, 1)
		assert.Equal(t, entities.TaskFeature, tasks[0].Category)
		assert.Equal(t, []string{"notebooks/research.ipynb"}, tasks[0].TargetFiles)
		assert.InDelta(t, 4.0, tasks[0].EstimatedHours, 0.001)
	})

	t.Run("should fire multiple rules independently", func(t *testing.T) {
		// given
		analysis := analysisWithPaths(
			"main.go",
			".github/workflows/ci.yml",
			"analysis.ipynb",
		)
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		require.Len(t, tasks, 3)
		assert.Equal(t, entities.TaskDocumentation, tasks[0].Category)
		assert.Equal(t, entities.TaskAutomation, tasks[1].Category)
		assert.Equal(t, entities.TaskFeature, tasks[2].Category)
	})

	t.Run("should fall back to a maintenance task for an empty analysis", func(t *testing.T) {
		// given
		analysis := &entities.Analysis{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			TotalCount:    0,
			RecentRecords: []entities.ChangeSetRecord{},
		}
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		require.Len(t, tasks, 1)
		assert.Equal(t, entities.TaskMaintenance, tasks[0].Category)
		assert.Equal(t, []string{"README.md", "analysis.ipynb"}, tasks[0].TargetFiles)
	})

	t.Run("should fall back when records exist but no rule fires", func(t *testing.T) {
		// given
		// markdown touched, nothing under workflows, no notebook
		analysis := analysisWithPaths("README.md", "main.go")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		require.Len(t, tasks, 1)
		assert.Equal(t, entities.TaskMaintenance, tasks[0].Category)
	})

	t.Run("should issue unique well-formed ids within a run", func(t *testing.T) {
		// given
		analysis := analysisWithPaths("main.go", ".github/workflows/ci.yml", "analysis.ipynb")
		cmd := commands.NewSynthesizeCommand()

		// when
		tasks := cmd.Execute(analysis, testSynthOpts)

		// then
		seen := make(map[string]struct{})
		for _, task := range tasks {
			assert.NotEmpty(t, task.ID)
			assert.Contains(t, task.ID, string(task.Category)+"-")
			_, dup := seen[task.ID]
			assert.False(t, dup, "duplicate id %q", task.ID)
			seen[task.ID] = struct{}{}

			assert.True(t, task.Category.Valid())
			assert.True(t, task.Priority.Valid())
			assert.Positive(t, task.EstimatedHours)
			_, parseErr := time.Parse(time.RFC3339, task.CreatedAt)
			assert.NoError(t, parseErr)
		}
	})
}
