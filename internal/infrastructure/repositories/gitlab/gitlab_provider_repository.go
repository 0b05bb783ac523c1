package gitlab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

const (
	providerName  = "gitlab"
	deltasPerPage = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
type GitLabProviderRepository struct {
	token  string
	client *gl.Client
}

// NewProviderRepository creates a new GitLab provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &GitLabProviderRepository{token: token, client: nil}
	}
	return &GitLabProviderRepository{
		token:  token,
		client: client,
	}
}

func (p *GitLabProviderRepository) Name() string { return providerName }

// ListClosedChangeSets lists the project's merged merge requests ordered
// by update recency descending.
func (p *GitLabProviderRepository) ListClosedChangeSets(
	ctx context.Context,
	repo entities.Repository,
	pageSize int,
) ([]entities.ChangeSetRecord, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	opts := &gl.ListProjectMergeRequestsOptions{
		State:       gl.Ptr("merged"),
		OrderBy:     gl.Ptr("updated_at"),
		Sort:        gl.Ptr("desc"),
		ListOptions: gl.ListOptions{PerPage: int64(pageSize)},
	}

	mrs, _, err := p.client.MergeRequests.ListProjectMergeRequests(
		projectPath(repo), opts, gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests: %w", err)
	}

	records := make([]entities.ChangeSetRecord, 0, len(mrs))
	for _, mr := range mrs {
		record := entities.ChangeSetRecord{
			ID:          int(mr.IID),
			Title:       mr.Title,
			Description: mr.Description,
			Merged:      mr.State == "merged",
		}
		switch {
		case mr.MergedAt != nil:
			record.MergedAt = *mr.MergedAt
		case mr.UpdatedAt != nil:
			record.MergedAt = *mr.UpdatedAt
		}
		records = append(records, record)
	}

	return records, nil
}

// ListFileDeltas lists the per-file changes of one merge request. The
// added/removed line counts are derived from the unified diff body, which
// is the only per-file change detail the diffs API exposes.
func (p *GitLabProviderRepository) ListFileDeltas(
	ctx context.Context,
	repo entities.Repository,
	changeSetID int,
) ([]entities.FileDelta, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	var allDeltas []entities.FileDelta
	opts := &gl.ListMergeRequestDiffsOptions{
		ListOptions: gl.ListOptions{PerPage: deltasPerPage},
	}

	for {
		diffs, resp, err := p.client.MergeRequests.ListMergeRequestDiffs(
			projectPath(repo), int64(changeSetID), opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to list diffs for merge request !%d: %w", changeSetID, err,
			)
		}

		for _, diff := range diffs {
			additions, deletions := countDiffLines(diff.Diff)
			allDeltas = append(allDeltas, entities.FileDelta{
				Path:      diff.NewPath,
				Status:    diffStatus(diff),
				Additions: additions,
				Deletions: deletions,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allDeltas, nil
}

func projectPath(repo entities.Repository) string {
	return repo.Organization + "/" + repo.Name
}

func diffStatus(diff *gl.MergeRequestDiff) string {
	switch {
	case diff.NewFile:
		return entities.ChangeAdded
	case diff.DeletedFile:
		return entities.ChangeRemoved
	case diff.RenamedFile:
		return entities.ChangeRenamed
	default:
		return entities.ChangeModified
	}
}

// countDiffLines counts the added and removed lines of a unified diff,
// skipping the "+++" and "---" file headers.
func countDiffLines(diff string) (int, int) {
	additions := 0
	deletions := 0
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}
