package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

const (
	providerName  = "github"
	deltasPerPage = 100
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	token  string
	client *gh.Client
}

// NewProviderRepository creates a new GitHub provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	client := gh.NewClient(nil).WithAuthToken(token)
	return &GitHubProviderRepository{
		token:  token,
		client: client,
	}
}

func (p *GitHubProviderRepository) Name() string { return providerName }

// ListClosedChangeSets lists the repository's closed pull requests sorted
// by update recency descending. The merged flag is derived from the merge
// timestamp the list API carries.
func (p *GitHubProviderRepository) ListClosedChangeSets(
	ctx context.Context,
	repo entities.Repository,
	pageSize int,
) ([]entities.ChangeSetRecord, error) {
	opts := &gh.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}

	prs, _, err := p.client.PullRequests.List(
		ctx, repo.Organization, repo.Name, opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	records := make([]entities.ChangeSetRecord, 0, len(prs))
	for _, pr := range prs {
		record := entities.ChangeSetRecord{
			ID:          pr.GetNumber(),
			Title:       pr.GetTitle(),
			Description: pr.GetBody(),
			Merged:      pr.MergedAt != nil,
		}
		if pr.MergedAt != nil {
			record.MergedAt = pr.GetMergedAt().Time
		}
		records = append(records, record)
	}

	return records, nil
}

// ListFileDeltas lists the per-file changes of one pull request.
func (p *GitHubProviderRepository) ListFileDeltas(
	ctx context.Context,
	repo entities.Repository,
	changeSetID int,
) ([]entities.FileDelta, error) {
	var allDeltas []entities.FileDelta
	opts := &gh.ListOptions{PerPage: deltasPerPage}

	for {
		files, resp, err := p.client.PullRequests.ListFiles(
			ctx, repo.Organization, repo.Name, changeSetID, opts,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to list files for pull request #%d: %w", changeSetID, err,
			)
		}

		for _, file := range files {
			allDeltas = append(allDeltas, entities.FileDelta{
				Path:      file.GetFilename(),
				Status:    normalizeStatus(file.GetStatus()),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allDeltas, nil
}

// normalizeStatus folds GitHub's file statuses into the four change kinds
// the analysis works with.
func normalizeStatus(status string) string {
	switch status {
	case "added", "copied":
		return entities.ChangeAdded
	case "removed":
		return entities.ChangeRemoved
	case "renamed":
		return entities.ChangeRenamed
	default:
		return entities.ChangeModified
	}
}
