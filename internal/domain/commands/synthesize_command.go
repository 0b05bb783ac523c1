package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// Estimated effort per heuristic rule, in hours.
const (
	documentationEffortHours = 2
	automationEffortHours    = 3
	notebookEffortHours      = 4
	maintenanceEffortHours   = 2
)

// Synthesize is the interface for the task synthesis step.
type Synthesize interface {
	Execute(analysis *entities.Analysis, opts SynthesizeOptions) []entities.Task
}

// SynthesizeOptions names the repository paths the heuristic rules target.
type SynthesizeOptions struct {
	StatusDocument string
	WorkflowsDir   string
	Notebook       string
}

// SynthesizeCommand derives an ordered, never-empty backlog of follow-up
// tasks from an Analysis via fixed heuristic rules. The rules are
// independent of each other; only when none of them produces a task does
// the maintenance fallback fire.
type SynthesizeCommand struct{}

// NewSynthesizeCommand creates a new SynthesizeCommand.
func NewSynthesizeCommand() *SynthesizeCommand {
	return &SynthesizeCommand{}
}

// Execute evaluates the heuristic rules, in order, over the union of
// touched paths across the analysis' recent records. An analysis with no
// recent records skips straight to the fallback rule.
func (it *SynthesizeCommand) Execute(
	analysis *entities.Analysis,
	opts SynthesizeOptions,
) []entities.Task {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	ids := newTaskIDGenerator()

	var tasks []entities.Task
	if len(analysis.RecentRecords) > 0 {
		paths := unionPaths(analysis.RecentRecords)

		if !anyWithSuffix(paths, ".md") {
			tasks = append(tasks, entities.Task{
				ID:             ids.Next(entities.TaskDocumentation),
				CreatedAt:      createdAt,
				Title:          "Close the documentation gap",
				Description:    "None of the recent change sets touched markdown documentation. Review the status document and bring it in line with the latest changes.",
				Category:       entities.TaskDocumentation,
				Priority:       entities.PriorityMedium,
				EstimatedHours: documentationEffortHours,
				TargetFiles:    []string{opts.StatusDocument},
			})
		}

		if anyUnderDir(paths, opts.WorkflowsDir) {
			tasks = append(tasks, entities.Task{
				ID:             ids.Next(entities.TaskAutomation),
				CreatedAt:      createdAt,
				Title:          "Optimize automation workflows",
				Description:    fmt.Sprintf("Recent change sets touched pipeline definitions under %s. Review them for redundant steps and caching opportunities.", opts.WorkflowsDir),
				Category:       entities.TaskAutomation,
				Priority:       entities.PriorityMedium,
				EstimatedHours: automationEffortHours,
				TargetFiles:    []string{opts.WorkflowsDir},
			})
		}

		if notebook := firstWithSuffix(paths, ".ipynb"); notebook != "" {
			tasks = append(tasks, entities.Task{
				ID:             ids.Next(entities.TaskFeature),
				CreatedAt:      createdAt,
				Title:          "Extend the analysis notebook",
				Description:    fmt.Sprintf("Recent change sets touched %s. Extend it with follow-up analysis of the new material.", notebook),
				Category:       entities.TaskFeature,
				Priority:       entities.PriorityMedium,
				EstimatedHours: notebookEffortHours,
				TargetFiles:    []string{notebook},
			})
		}
	}

	if len(tasks) == 0 {
		tasks = append(tasks, entities.Task{
			ID:             ids.Next(entities.TaskMaintenance),
			CreatedAt:      createdAt,
			Title:          "Routine repository maintenance",
			Description:    "No specific follow-up was derived from the recent change-set history. Do a routine review of the status document and the primary notebook.",
			Category:       entities.TaskMaintenance,
			Priority:       entities.PriorityMedium,
			EstimatedHours: maintenanceEffortHours,
			TargetFiles:    []string{opts.StatusDocument, opts.Notebook},
		})
	}

	return tasks
}

// unionPaths collects the distinct touched paths across all records,
// preserving first-seen order.
func unionPaths(records []entities.ChangeSetRecord) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, record := range records {
		for _, delta := range record.FileDeltas {
			if _, ok := seen[delta.Path]; ok {
				continue
			}
			seen[delta.Path] = struct{}{}
			paths = append(paths, delta.Path)
		}
	}
	return paths
}

func anyWithSuffix(paths []string, suffix string) bool {
	return firstWithSuffix(paths, suffix) != ""
}

func firstWithSuffix(paths []string, suffix string) string {
	for _, path := range paths {
		if strings.HasSuffix(strings.ToLower(path), suffix) {
			return path
		}
	}
	return ""
}

func anyUnderDir(paths []string, dir string) bool {
	if dir == "" {
		return false
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	for _, path := range paths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// taskIDGenerator issues run-unique task identifiers: a category-scoped
// prefix, a random per-run suffix and a monotonic counter. Wall-clock
// timestamps alone would collide for tasks created in the same run.
type taskIDGenerator struct {
	runID string
	next  int
}

func newTaskIDGenerator() *taskIDGenerator {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return &taskIDGenerator{runID: hex.EncodeToString(buf), next: 0}
}

func (g *taskIDGenerator) Next(category entities.TaskCategory) string {
	g.next++
	return fmt.Sprintf("%s-%s-%d", category, g.runID, g.next)
}
