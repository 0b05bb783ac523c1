package commands

import (
	"context"
	"sort"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

// Analyze is the interface for the change-set analysis step.
type Analyze interface {
	Execute(
		ctx context.Context,
		provider repositories.ProviderRepository,
		repo entities.Repository,
		pageSize int,
	) *entities.Analysis
}

// AnalyzeCommand turns the raw closed change-set history of a repository
// into a structured Analysis. It always returns a structurally valid
// Analysis: collaborator failures degrade the result instead of
// propagating.
type AnalyzeCommand struct{}

// NewAnalyzeCommand creates a new AnalyzeCommand.
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{}
}

// Execute fetches the closed change sets, keeps the merged ones, caps the
// detailed subset to the most recently merged records and attaches a
// summary to each. A failing per-record file-delta fetch degrades that
// record to an empty delta list; a failing listing call yields a zero
// Analysis carrying the error detail.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	provider repositories.ProviderRepository,
	repo entities.Repository,
	pageSize int,
) *entities.Analysis {
	analysis := &entities.Analysis{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		TotalCount:    0,
		RecentRecords: []entities.ChangeSetRecord{},
	}

	records, err := provider.ListClosedChangeSets(ctx, repo, pageSize)
	if err != nil {
		logger.Warnf(
			"Failed to list change sets for %s/%s: %v",
			repo.Organization, repo.Name, err,
		)
		analysis.Error = err.Error()
		return analysis
	}

	merged := make([]entities.ChangeSetRecord, 0, len(records))
	for _, record := range records {
		if record.Merged {
			merged = append(merged, record)
		}
	}
	analysis.TotalCount = len(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedAt.After(merged[j].MergedAt)
	})
	recent := merged
	if len(recent) > entities.MaxRecentRecords {
		recent = recent[:entities.MaxRecentRecords]
	}

	for i := range recent {
		deltas, deltaErr := provider.ListFileDeltas(ctx, repo, recent[i].ID)
		if deltaErr != nil {
			logger.Warnf(
				"Failed to fetch file deltas for change set #%d: %v",
				recent[i].ID, deltaErr,
			)
			deltas = nil
		}
		recent[i].FileDeltas = deltas
		recent[i].Summary = entities.Summarize(recent[i])
	}
	analysis.RecentRecords = recent

	logger.Debugf(
		"Analyzed %d merged change sets (%d detailed) for %s/%s",
		analysis.TotalCount, len(recent), repo.Organization, repo.Name,
	)
	return analysis
}
