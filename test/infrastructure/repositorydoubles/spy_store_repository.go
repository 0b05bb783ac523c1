//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

// SpyStoreRepository implements repositories.StoreRepository as an in-memory spy.
type SpyStoreRepository struct {
	// --- documents ---
	Documents   map[string]string
	ReadDocErr  error
	WriteDocErr error
	WrittenDocs map[string]string

	// --- analysis artifact ---
	Analysis         *entities.Analysis
	ReadAnalysisErr  error
	WriteAnalysisErr error
	WrittenAnalysis  *entities.Analysis

	// --- task artifact ---
	Tasks         []entities.Task
	ReadTasksErr  error
	WriteTasksErr error
	WrittenTasks  []entities.Task
}

var _ repositories.StoreRepository = (*SpyStoreRepository)(nil)

func (s *SpyStoreRepository) ReadDocument(path string) (string, error) {
	if s.ReadDocErr != nil {
		return "", s.ReadDocErr
	}
	return s.Documents[path], nil
}

func (s *SpyStoreRepository) WriteDocument(path, content string) error {
	if s.WriteDocErr != nil {
		return s.WriteDocErr
	}
	if s.WrittenDocs == nil {
		s.WrittenDocs = make(map[string]string)
	}
	s.WrittenDocs[path] = content
	return nil
}

func (s *SpyStoreRepository) WriteAnalysis(_ string, analysis *entities.Analysis) error {
	if s.WriteAnalysisErr != nil {
		return s.WriteAnalysisErr
	}
	s.WrittenAnalysis = analysis
	return nil
}

func (s *SpyStoreRepository) ReadAnalysis(_ string) (*entities.Analysis, error) {
	if s.ReadAnalysisErr != nil {
		return nil, s.ReadAnalysisErr
	}
	return s.Analysis, nil
}

func (s *SpyStoreRepository) WriteTasks(_ string, tasks []entities.Task) error {
	if s.WriteTasksErr != nil {
		return s.WriteTasksErr
	}
	s.WrittenTasks = tasks
	return nil
}

func (s *SpyStoreRepository) ReadTasks(_ string) ([]entities.Task, error) {
	if s.ReadTasksErr != nil {
		return nil, s.ReadTasksErr
	}
	return s.Tasks, nil
}
