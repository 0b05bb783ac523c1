package internal

import (
	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// AppInternal is the composition root handed to the CLI layer: it holds
// every controller the binary exposes as a subcommand.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the AppInternal from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
