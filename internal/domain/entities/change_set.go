package entities

import "time"

// Change kinds reported for a single touched path.
const (
	ChangeAdded    = "added"
	ChangeModified = "modified"
	ChangeRemoved  = "removed"
	ChangeRenamed  = "renamed"
)

// FileDelta is one file's change record within a change set. It is owned
// exclusively by its ChangeSetRecord.
type FileDelta struct {
	Path      string `json:"path"`
	Status    string `json:"status"` // "added", "modified", "removed", "renamed"
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// ChangeSetRecord is one closed change set (pull/merge request) as fetched
// from a Git hosting provider. Records are immutable once fetched; the
// Summary field is attached during analysis.
type ChangeSetRecord struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	MergedAt    time.Time   `json:"mergedAt"`
	Merged      bool        `json:"-"`
	FileDeltas  []FileDelta `json:"fileDeltas"`
	Summary     string      `json:"summary"`
}
