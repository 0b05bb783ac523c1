package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autoreport/internal/domain/commands"
	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

// RunController handles the "run" subcommand (the full pipeline).
type RunController struct {
	command commands.Run
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Run) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Run the status-report pipeline",
		Long: `Analyze the merged change-set history, synthesize follow-up
tasks, persist the analysis and task artifacts, and patch the
managed section of the status document.

This is the main command intended to be used in a cronjob. A run
completes with exit code 0 even when individual collaborator calls
degrade; only unrecoverable top-level failures exit non-zero.`,
	}
}

// Execute runs the full pipeline once.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	token, _ := cmd.Flags().GetString("token")

	logger.Info("Starting autoreport run...")

	return it.command.Execute(cmd.Context(), settings, commands.RunOptions{
		DryRun:  dryRun,
		Verbose: verbose,
		Token:   token,
	})
}
