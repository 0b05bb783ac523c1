//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autoreport/internal/domain/commands"
	"github.com/rios0rios0/autoreport/internal/domain/entities"
	builders "github.com/rios0rios0/autoreport/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/autoreport/test/infrastructure/repositorydoubles"
)

//nolint:exhaustruct // Only the identity fields matter for the provider calls
var testRepo = entities.Repository{Organization: "acme", Name: "widgets"}

func TestAnalyzeCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should keep only merged records and attach summaries", func(t *testing.T) {
		// given
		spy := &doubles.SpyProviderRepository{
			Records: []entities.ChangeSetRecord{
				builders.NewChangeSetBuilder().WithID(1).WithTitle("Fix parser").BuildRecord(),
				builders.NewChangeSetBuilder().WithID(2).WithTitle("Closed only").WithMerged(false).BuildRecord(),
			},
			Deltas: map[int][]entities.FileDelta{
				1: {{Path: "README.md", Status: entities.ChangeModified, Additions: 3, Deletions: 1}},
			},
		}
		cmd := commands.NewAnalyzeCommand()

		// when
		analysis := cmd.Execute(context.Background(), spy, testRepo, 10)

		// then
		require.Len(t, analysis.RecentRecords, 1)
		assert.Equal(t, 1, analysis.TotalCount)
		assert.Equal(t, 1, analysis.RecentRecords[0].ID)
		assert.Equal(t, "Fix parser (1 files) [documentation]", analysis.RecentRecords[0].Summary)
		assert.Empty(t, analysis.Error)
		assert.Equal(t, []int{10}, spy.ListPageSizes)
	})

	t.Run("should cap detailed records while counting every merged one", func(t *testing.T) {
		// given
		base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		records := make([]entities.ChangeSetRecord, 0, 8)
		for i := 1; i <= 8; i++ {
			records = append(records, builders.NewChangeSetBuilder().
				WithID(i).
				WithMergedAt(base.Add(time.Duration(i)*time.Hour)).
				BuildRecord())
		}
		spy := &doubles.SpyProviderRepository{Records: records}
		cmd := commands.NewAnalyzeCommand()

		// when
		analysis := cmd.Execute(context.Background(), spy, testRepo, 10)

		// then
		assert.Equal(t, 8, analysis.TotalCount)
		require.Len(t, analysis.RecentRecords, entities.MaxRecentRecords)
		// newest first
		assert.Equal(t, 8, analysis.RecentRecords[0].ID)
		assert.Equal(t, 4, analysis.RecentRecords[len(analysis.RecentRecords)-1].ID)
	})

	t.Run("should degrade to a zero analysis when listing fails", func(t *testing.T) {
		// given
		spy := &doubles.SpyProviderRepository{ListErr: errors.New("api rate limited")}
		cmd := commands.NewAnalyzeCommand()

		// when
		analysis := cmd.Execute(context.Background(), spy, testRepo, 10)

		// then
		require.NotNil(t, analysis)
		assert.Zero(t, analysis.TotalCount)
		assert.Empty(t, analysis.RecentRecords)
		assert.Equal(t, "api rate limited", analysis.Error)
		_, parseErr := time.Parse(time.RFC3339, analysis.Timestamp)
		assert.NoError(t, parseErr)
	})

	t.Run("should keep the record with empty deltas when the delta fetch fails", func(t *testing.T) {
		// given
		spy := &doubles.SpyProviderRepository{
			Records: []entities.ChangeSetRecord{
				builders.NewChangeSetBuilder().WithID(1).WithTitle("Fix parser").BuildRecord(),
			},
			DeltaErrs: map[int]error{1: errors.New("not found")},
		}
		cmd := commands.NewAnalyzeCommand()

		// when
		analysis := cmd.Execute(context.Background(), spy, testRepo, 10)

		// then
		require.Len(t, analysis.RecentRecords, 1)
		assert.Empty(t, analysis.RecentRecords[0].FileDeltas)
		assert.Equal(t, "Fix parser (0 files)", analysis.RecentRecords[0].Summary)
		assert.Empty(t, analysis.Error)
	})
}
