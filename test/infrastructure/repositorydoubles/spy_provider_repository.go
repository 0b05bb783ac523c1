//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListClosedChangeSets ---
	Records       []entities.ChangeSetRecord
	ListErr       error
	ListPageSizes []int

	// --- ListFileDeltas ---
	Deltas       map[int][]entities.FileDelta
	DeltaErrs    map[int]error
	DeltaQueries []int
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string {
	if p.ProviderName != "" {
		return p.ProviderName
	}
	return "spy"
}

func (p *SpyProviderRepository) ListClosedChangeSets(
	_ context.Context, _ entities.Repository, pageSize int,
) ([]entities.ChangeSetRecord, error) {
	p.ListPageSizes = append(p.ListPageSizes, pageSize)
	return p.Records, p.ListErr
}

func (p *SpyProviderRepository) ListFileDeltas(
	_ context.Context, _ entities.Repository, changeSetID int,
) ([]entities.FileDelta, error) {
	p.DeltaQueries = append(p.DeltaQueries, changeSetID)
	if p.DeltaErrs != nil {
		if err, ok := p.DeltaErrs[changeSetID]; ok {
			return nil, err
		}
	}
	if p.Deltas != nil {
		return p.Deltas[changeSetID], nil
	}
	return nil, nil
}

// DummyProviderRepository is a no-op implementation of repositories.ProviderRepository.
type DummyProviderRepository struct{}

var _ repositories.ProviderRepository = (*DummyProviderRepository)(nil)

func (d *DummyProviderRepository) Name() string { return "dummy" }

func (d *DummyProviderRepository) ListClosedChangeSets(
	_ context.Context, _ entities.Repository, _ int,
) ([]entities.ChangeSetRecord, error) {
	return nil, nil
}

func (d *DummyProviderRepository) ListFileDeltas(
	_ context.Context, _ entities.Repository, _ int,
) ([]entities.FileDelta, error) {
	return nil, nil
}
