package repositories

import (
	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// StoreRepository abstracts the blob store holding the status document and
// the per-run analysis/task artifacts. "Latest" artifacts are overwritten
// on every run; timestamped snapshots accumulate.
type StoreRepository interface {
	ReadDocument(path string) (string, error)
	WriteDocument(path, content string) error

	WriteAnalysis(dir string, analysis *entities.Analysis) error
	ReadAnalysis(dir string) (*entities.Analysis, error)

	WriteTasks(dir string, tasks []entities.Task) error
	ReadTasks(dir string) ([]entities.Task, error)
}
