package repositories

import (
	"go.uber.org/dig"

	fsRepo "github.com/rios0rios0/autoreport/internal/infrastructure/repositories/filesystem"
	ghRepo "github.com/rios0rios0/autoreport/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/autoreport/internal/infrastructure/repositories/gitlab"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewProviderRepository)
		reg.Register("gitlab", glRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register the filesystem-backed artifact store
	if err := container.Provide(fsRepo.NewStoreRepository); err != nil {
		return err
	}

	return nil
}
