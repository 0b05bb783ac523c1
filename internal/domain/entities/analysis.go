package entities

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Path categories derived from file-extension classification.
const (
	PathDocumentation = "documentation"
	PathAutomation    = "automation"
	PathWorkflows     = "workflows"
	PathNotebook      = "notebook"
)

// MaxRecentRecords caps how many merged change sets an Analysis keeps in
// detail. The total merged count is never capped.
const MaxRecentRecords = 5

// Analysis is the structured digest of the recent merged change-set
// history of one repository. TotalCount counts every merged record
// considered, while RecentRecords holds only the capped newest subset, so
// TotalCount >= len(RecentRecords) always holds.
type Analysis struct {
	Timestamp     string            `json:"timestamp"`
	TotalCount    int               `json:"totalCount"`
	RecentRecords []ChangeSetRecord `json:"recentRecords"`
	Error         string            `json:"error,omitempty"`
}

// ClassifyPath maps a touched path to a coarse category based on its
// extension alone. File content is never inspected. The second return
// value is false for extensions outside the classification table.
func ClassifyPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return PathDocumentation, true
	case ".js", ".json":
		return PathAutomation, true
	case ".yml", ".yaml":
		return PathWorkflows, true
	case ".ipynb":
		return PathNotebook, true
	}
	return "", false
}

// Summarize builds the one-line digest for a record: its title, the count
// of touched files and the sorted category set of its paths.
func Summarize(record ChangeSetRecord) string {
	categorySet := make(map[string]struct{})
	for _, delta := range record.FileDeltas {
		if category, ok := ClassifyPath(delta.Path); ok {
			categorySet[category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	if len(categories) == 0 {
		return fmt.Sprintf("%s (%d files)", record.Title, len(record.FileDeltas))
	}
	return fmt.Sprintf(
		"%s (%d files) [%s]",
		record.Title, len(record.FileDeltas), strings.Join(categories, ", "),
	)
}
