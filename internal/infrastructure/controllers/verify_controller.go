package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autoreport/internal/domain/commands"
	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// VerifyController handles the "verify" subcommand (the artifact
// contract checker).
type VerifyController struct {
	command commands.Verify
}

// NewVerifyController creates a new VerifyController.
func NewVerifyController(command commands.Verify) *VerifyController {
	return &VerifyController{command: command}
}

// GetBind returns the Cobra command metadata for the verify controller.
func (it *VerifyController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "verify",
		Short: "Verify the artifacts of the last run",
		Long: `Check the analysis and task artifacts of the most recent run
against their contract: presence, field validity, the count and
uniqueness invariants, and the literal lines the patched status
document must carry. Exits non-zero when any check fails.`,
	}
}

// Execute runs every contract check and reports the results.
func (it *VerifyController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	results := it.command.Execute(settings)

	failed := 0
	for _, result := range results {
		if result.Passed {
			logger.Infof("PASS %s", result.Name)
			continue
		}
		failed++
		logger.Errorf("FAIL %s: %s", result.Name, result.Detail)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	logger.Infof("All %d checks passed", len(results))
	return nil
}
