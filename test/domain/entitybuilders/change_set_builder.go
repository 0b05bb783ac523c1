//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// ChangeSetBuilder helps create test change-set records with a fluent interface.
type ChangeSetBuilder struct {
	*testkit.BaseBuilder
	id          int
	title       string
	description string
	mergedAt    time.Time
	merged      bool
	fileDeltas  []entities.FileDelta
}

// NewChangeSetBuilder creates a new change-set builder with sensible defaults.
func NewChangeSetBuilder() *ChangeSetBuilder {
	return &ChangeSetBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		title:       "Test change set",
		description: "A change set used in tests",
		mergedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		merged:      true,
		fileDeltas:  nil,
	}
}

// WithID sets the change-set identifier.
func (b *ChangeSetBuilder) WithID(id int) *ChangeSetBuilder {
	b.id = id
	return b
}

// WithTitle sets the title.
func (b *ChangeSetBuilder) WithTitle(title string) *ChangeSetBuilder {
	b.title = title
	return b
}

// WithDescription sets the description.
func (b *ChangeSetBuilder) WithDescription(description string) *ChangeSetBuilder {
	b.description = description
	return b
}

// WithMergedAt sets the merge timestamp.
func (b *ChangeSetBuilder) WithMergedAt(mergedAt time.Time) *ChangeSetBuilder {
	b.mergedAt = mergedAt
	return b
}

// WithMerged marks the record as merged or merely closed.
func (b *ChangeSetBuilder) WithMerged(merged bool) *ChangeSetBuilder {
	b.merged = merged
	return b
}

// WithFileDeltas sets the file deltas.
func (b *ChangeSetBuilder) WithFileDeltas(deltas ...entities.FileDelta) *ChangeSetBuilder {
	b.fileDeltas = deltas
	return b
}

// WithPaths sets one modified file delta per given path.
func (b *ChangeSetBuilder) WithPaths(paths ...string) *ChangeSetBuilder {
	deltas := make([]entities.FileDelta, 0, len(paths))
	for _, path := range paths {
		deltas = append(deltas, entities.FileDelta{
			Path:      path,
			Status:    entities.ChangeModified,
			Additions: 1,
			Deletions: 0,
		})
	}
	b.fileDeltas = deltas
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *ChangeSetBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *ChangeSetBuilder) BuildRecord() entities.ChangeSetRecord {
	return entities.ChangeSetRecord{
		ID:          b.id,
		Title:       b.title,
		Description: b.description,
		MergedAt:    b.mergedAt,
		Merged:      b.merged,
		FileDeltas:  b.fileDeltas,
		Summary:     "",
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangeSetBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.title = "Test change set"
	b.description = "A change set used in tests"
	b.mergedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b.merged = true
	b.fileDeltas = nil
	return b
}

// Clone creates a deep copy of the ChangeSetBuilder.
func (b *ChangeSetBuilder) Clone() testkit.Builder {
	deltas := make([]entities.FileDelta, len(b.fileDeltas))
	copy(deltas, b.fileDeltas)
	return &ChangeSetBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		title:       b.title,
		description: b.description,
		mergedAt:    b.mergedAt,
		merged:      b.merged,
		fileDeltas:  deltas,
	}
}
