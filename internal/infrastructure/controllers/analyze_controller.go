package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autoreport/internal/domain/commands"
	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/autoreport/internal/infrastructure/repositories"
)

// AnalyzeController handles the "analyze" subcommand: it runs only the
// change-set analysis step and persists the analysis artifact, without
// synthesizing tasks or touching the status document.
type AnalyzeController struct {
	providerRegistry *infraRepos.ProviderRegistry
	store            repositories.StoreRepository
	command          commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(
	providerRegistry *infraRepos.ProviderRegistry,
	store repositories.StoreRepository,
	command commands.Analyze,
) *AnalyzeController {
	return &AnalyzeController{
		providerRegistry: providerRegistry,
		store:            store,
		command:          command,
	}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze",
		Short: "Analyze the merged change-set history only",
		Long: `Fetch the recently closed change sets from the configured provider,
build the analysis and persist it as a JSON artifact. Tasks are not
synthesized and the status document is not modified.`,
	}
}

// Execute runs the analysis step once.
func (it *AnalyzeController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	token := settings.Provider.Token
	if flagToken, _ := cmd.Flags().GetString("token"); flagToken != "" {
		token = flagToken
	}

	provider, err := it.providerRegistry.Get(settings.Provider.Type, token)
	if err != nil {
		return fmt.Errorf("failed to initialize provider %q: %w", settings.Provider.Type, err)
	}

	repo := settings.TargetRepository()
	logger.Infof("Analyzing %s/%s via %s...", repo.Organization, repo.Name, provider.Name())

	analysis := it.command.Execute(cmd.Context(), provider, repo, settings.Report.PageSize)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		for _, record := range analysis.RecentRecords {
			logger.Infof("  #%d %s", record.ID, record.Summary)
		}
		logger.Info("Dry run: analysis artifact not written")
		return nil
	}

	if writeErr := it.store.WriteAnalysis(settings.Report.ArtifactsDir, analysis); writeErr != nil {
		return fmt.Errorf("failed to persist analysis artifact: %w", writeErr)
	}

	logger.Infof(
		"Analysis complete: %d merged change sets (%d detailed), artifacts under %s",
		analysis.TotalCount, len(analysis.RecentRecords), settings.Report.ArtifactsDir,
	)
	return nil
}
