package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

const (
	analysisLatestName = "analysis-latest.json"
	tasksLatestName    = "tasks-latest.json"
	snapshotStamp      = "20060102-150405"

	fileMode = 0o644
	dirMode  = 0o755
)

// FilesystemStoreRepository implements repositories.StoreRepository on the
// local filesystem: the status document is a plain file and the
// analysis/task artifacts live as JSON under the artifacts directory, as
// both "latest" files (overwritten each run) and timestamped snapshots.
type FilesystemStoreRepository struct{}

// NewStoreRepository creates a new filesystem-backed store.
func NewStoreRepository() repositories.StoreRepository {
	return &FilesystemStoreRepository{}
}

func (s *FilesystemStoreRepository) ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document %q: %w", path, err)
	}
	return string(data), nil
}

func (s *FilesystemStoreRepository) WriteDocument(path, content string) error {
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return fmt.Errorf("failed to write document %q: %w", path, err)
	}
	return nil
}

// WriteAnalysis persists the analysis as the "latest" artifact and as a
// timestamped snapshot.
func (s *FilesystemStoreRepository) WriteAnalysis(dir string, analysis *entities.Analysis) error {
	snapshot := fmt.Sprintf("analysis-%s.json", time.Now().UTC().Format(snapshotStamp))
	return writeArtifact(dir, analysisLatestName, snapshot, analysis)
}

func (s *FilesystemStoreRepository) ReadAnalysis(dir string) (*entities.Analysis, error) {
	var analysis entities.Analysis
	if err := readArtifact(dir, analysisLatestName, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// WriteTasks persists the task list as the "latest" artifact and as a
// timestamped snapshot.
func (s *FilesystemStoreRepository) WriteTasks(dir string, tasks []entities.Task) error {
	snapshot := fmt.Sprintf("tasks-%s.json", time.Now().UTC().Format(snapshotStamp))
	return writeArtifact(dir, tasksLatestName, snapshot, tasks)
}

func (s *FilesystemStoreRepository) ReadTasks(dir string) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := readArtifact(dir, tasksLatestName, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func writeArtifact(dir, latestName, snapshotName string, value any) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("failed to create artifacts directory %q: %w", dir, err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact %q: %w", latestName, err)
	}
	data = append(data, '\n')

	for _, name := range []string{latestName, snapshotName} {
		path := filepath.Join(dir, name)
		if writeErr := os.WriteFile(path, data, fileMode); writeErr != nil {
			return fmt.Errorf("failed to write artifact %q: %w", path, writeErr)
		}
	}
	return nil
}

func readArtifact(dir, name string, value any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %q: %w", path, err)
	}
	if unmarshalErr := json.Unmarshal(data, value); unmarshalErr != nil {
		return fmt.Errorf("failed to decode artifact %q: %w", path, unmarshalErr)
	}
	return nil
}
