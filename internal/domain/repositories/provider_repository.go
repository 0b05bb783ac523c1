package repositories

import (
	"context"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service (GitHub, GitLab, etc.)
// exposing the closed change-set history of a repository. Both calls are
// individually fallible; callers decide how to degrade.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// ListClosedChangeSets lists the closed change sets of the repository,
	// sorted by update recency descending, carrying the merged flag and
	// merge timestamp. At most pageSize records are returned.
	ListClosedChangeSets(
		ctx context.Context,
		repo entities.Repository,
		pageSize int,
	) ([]entities.ChangeSetRecord, error)

	// ListFileDeltas lists the per-file changes of one change set.
	ListFileDeltas(
		ctx context.Context,
		repo entities.Repository,
		changeSetID int,
	) ([]entities.FileDelta, error)
}
