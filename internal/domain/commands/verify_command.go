package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

// Verify is the interface for the artifact contract checker.
type Verify interface {
	Execute(settings *entities.Settings) []CheckResult
}

// CheckResult is the outcome of one contract check.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// VerifyCommand evaluates a checklist against the artifacts a run
// produced: artifact presence, schema fields, invariants, the literal
// substrings the patched document must carry, and the synthesizer's
// totality guarantee. It is the executable contract of the pipeline.
type VerifyCommand struct {
	store      repositories.StoreRepository
	synthesize Synthesize
}

// NewVerifyCommand creates a new VerifyCommand.
func NewVerifyCommand(store repositories.StoreRepository, synthesize Synthesize) *VerifyCommand {
	return &VerifyCommand{store: store, synthesize: synthesize}
}

// Execute runs every check and returns the per-check results. Checks that
// depend on an unreadable artifact are reported as failed, never skipped
// silently.
func (it *VerifyCommand) Execute(settings *entities.Settings) []CheckResult {
	var results []CheckResult

	it.checkAnalysisArtifact(settings, &results)
	tasks := it.checkTaskArtifact(settings, &results)
	it.checkDocument(settings, tasks, &results)
	it.checkTotality(settings, &results)

	return results
}

func (it *VerifyCommand) checkAnalysisArtifact(
	settings *entities.Settings,
	results *[]CheckResult,
) {
	analysis, err := it.store.ReadAnalysis(settings.Report.ArtifactsDir)
	if err != nil {
		*results = append(*results, fail("analysis artifact readable", err.Error()))
		return
	}
	*results = append(*results, pass("analysis artifact readable"))

	if _, parseErr := time.Parse(time.RFC3339, analysis.Timestamp); parseErr != nil {
		*results = append(*results, fail(
			"analysis timestamp valid",
			fmt.Sprintf("timestamp %q is not RFC 3339", analysis.Timestamp),
		))
	} else {
		*results = append(*results, pass("analysis timestamp valid"))
	}

	switch {
	case analysis.TotalCount < 0:
		*results = append(*results, fail(
			"analysis count invariant",
			fmt.Sprintf("totalCount %d is negative", analysis.TotalCount),
		))
	case analysis.TotalCount < len(analysis.RecentRecords):
		*results = append(*results, fail(
			"analysis count invariant",
			fmt.Sprintf(
				"totalCount %d < %d recent records",
				analysis.TotalCount, len(analysis.RecentRecords),
			),
		))
	case len(analysis.RecentRecords) > entities.MaxRecentRecords:
		*results = append(*results, fail(
			"analysis count invariant",
			fmt.Sprintf(
				"%d recent records exceed the cap of %d",
				len(analysis.RecentRecords), entities.MaxRecentRecords,
			),
		))
	default:
		*results = append(*results, pass("analysis count invariant"))
	}

	for _, record := range analysis.RecentRecords {
		if record.Summary == "" {
			*results = append(*results, fail(
				"analysis summaries attached",
				fmt.Sprintf("record #%d has no summary", record.ID),
			))
			return
		}
	}
	*results = append(*results, pass("analysis summaries attached"))
}

func (it *VerifyCommand) checkTaskArtifact(
	settings *entities.Settings,
	results *[]CheckResult,
) []entities.Task {
	tasks, err := it.store.ReadTasks(settings.Report.ArtifactsDir)
	if err != nil {
		*results = append(*results, fail("task artifact readable", err.Error()))
		return nil
	}
	*results = append(*results, pass("task artifact readable"))

	if len(tasks) == 0 {
		*results = append(*results, fail("task list non-empty", "artifact holds zero tasks"))
		return tasks
	}
	*results = append(*results, pass("task list non-empty"))

	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if detail := taskFieldProblem(task); detail != "" {
			*results = append(*results, fail("task fields valid", detail))
			return tasks
		}
		if _, dup := seen[task.ID]; dup {
			*results = append(*results, fail(
				"task ids unique",
				fmt.Sprintf("duplicate task id %q", task.ID),
			))
			return tasks
		}
		seen[task.ID] = struct{}{}
	}
	*results = append(*results, pass("task fields valid"))
	*results = append(*results, pass("task ids unique"))
	return tasks
}

func (it *VerifyCommand) checkDocument(
	settings *entities.Settings,
	tasks []entities.Task,
	results *[]CheckResult,
) {
	document, err := it.store.ReadDocument(settings.Report.Document)
	if err != nil {
		*results = append(*results, fail("document readable", err.Error()))
		return
	}
	*results = append(*results, pass("document readable"))

	if !strings.Contains(document, settings.Report.Marker) {
		*results = append(*results, fail(
			"document marker present",
			fmt.Sprintf("marker %q not found", settings.Report.Marker),
		))
	} else {
		*results = append(*results, pass("document marker present"))
	}

	for _, task := range tasks {
		if !strings.Contains(document, task.Title) {
			*results = append(*results, fail(
				"task titles in document",
				fmt.Sprintf("title %q not found", task.Title),
			))
			return
		}
	}
	*results = append(*results, pass("task titles in document"))

	totalLine := fmt.Sprintf("Total estimated effort: %gh", entities.TotalEffort(tasks))
	if !strings.Contains(document, totalLine) {
		*results = append(*results, fail(
			"effort total in document",
			fmt.Sprintf("line %q not found", totalLine),
		))
		return
	}
	*results = append(*results, pass("effort total in document"))
}

// checkTotality re-runs the synthesizer on a zero Analysis: it must never
// return an empty task list.
func (it *VerifyCommand) checkTotality(
	settings *entities.Settings,
	results *[]CheckResult,
) {
	empty := &entities.Analysis{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		TotalCount:    0,
		RecentRecords: []entities.ChangeSetRecord{},
	}
	tasks := it.synthesize.Execute(empty, SynthesizeOptions{
		StatusDocument: settings.Report.Document,
		WorkflowsDir:   settings.Targets.WorkflowsDir,
		Notebook:       settings.Targets.Notebook,
	})
	if len(tasks) == 0 {
		*results = append(*results, fail(
			"synthesizer totality",
			"empty analysis produced zero tasks",
		))
		return
	}
	*results = append(*results, pass("synthesizer totality"))
}

func taskFieldProblem(task entities.Task) string {
	switch {
	case task.ID == "":
		return "task with empty id"
	case !task.Category.Valid():
		return fmt.Sprintf("task %q has unknown category %q", task.ID, task.Category)
	case !task.Priority.Valid():
		return fmt.Sprintf("task %q has unknown priority %q", task.ID, task.Priority)
	case task.EstimatedHours <= 0:
		return fmt.Sprintf("task %q has non-positive effort %g", task.ID, task.EstimatedHours)
	}
	if _, err := time.Parse(time.RFC3339, task.CreatedAt); err != nil {
		return fmt.Sprintf("task %q createdAt %q is not RFC 3339", task.ID, task.CreatedAt)
	}
	return ""
}

func pass(name string) CheckResult {
	return CheckResult{Name: name, Passed: true, Detail: ""}
}

func fail(name, detail string) CheckResult {
	return CheckResult{Name: name, Passed: false, Detail: detail}
}
