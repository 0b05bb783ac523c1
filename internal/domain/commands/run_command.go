package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
	"github.com/rios0rios0/autoreport/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/autoreport/internal/infrastructure/repositories"
)

// Run is the interface for the run command (the full pipeline).
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RunOptions) error
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	DryRun  bool
	Verbose bool
	Token   string // If set, overrides the configured provider token
}

// RunCommand orchestrates the full status-report flow:
// analyze change sets -> synthesize tasks -> persist artifacts -> patch
// the status document. The flow is strictly sequential; collaborator
// failures degrade the affected step and the run continues.
type RunCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	store            repositories.StoreRepository
	analyze          Analyze
	synthesize       Synthesize
}

// NewRunCommand creates a new RunCommand with its collaborators.
func NewRunCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	store repositories.StoreRepository,
	analyze Analyze,
	synthesize Synthesize,
) *RunCommand {
	return &RunCommand{
		providerRegistry: providerRegistry,
		store:            store,
		analyze:          analyze,
		synthesize:       synthesize,
	}
}

// Execute runs the full pipeline once. It returns an error only for
// unrecoverable top-level failures (e.g. an unknown provider type);
// degraded sub-steps are logged and the run completes.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	runOpts RunOptions,
) error {
	if runOpts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	token := settings.Provider.Token
	if runOpts.Token != "" {
		token = runOpts.Token
	}

	provider, err := it.providerRegistry.Get(settings.Provider.Type, token)
	if err != nil {
		return fmt.Errorf("failed to initialize provider %q: %w", settings.Provider.Type, err)
	}

	repo := settings.TargetRepository()
	logger.Infof("Analyzing %s/%s via %s...", repo.Organization, repo.Name, provider.Name())

	analysis := it.analyze.Execute(ctx, provider, repo, settings.Report.PageSize)
	tasks := it.synthesize.Execute(analysis, SynthesizeOptions{
		StatusDocument: settings.Report.Document,
		WorkflowsDir:   settings.Targets.WorkflowsDir,
		Notebook:       settings.Targets.Notebook,
	})

	logger.Infof(
		"Synthesized %d tasks from %d merged change sets",
		len(tasks), analysis.TotalCount,
	)

	if runOpts.DryRun {
		for _, task := range tasks {
			logger.Infof("  [%s] %s (%gh)", task.Category, task.Title, task.EstimatedHours)
		}
		logger.Info("Dry run: no artifacts written, document untouched")
		return nil
	}

	artifactsDir := settings.Report.ArtifactsDir
	if writeErr := it.store.WriteAnalysis(artifactsDir, analysis); writeErr != nil {
		logger.Errorf("Failed to persist analysis artifact: %v", writeErr)
	}
	if writeErr := it.store.WriteTasks(artifactsDir, tasks); writeErr != nil {
		logger.Errorf("Failed to persist task artifact: %v", writeErr)
	}

	it.patchDocument(settings, analysis, tasks)

	logger.Infof("Run complete: %d tasks, artifacts under %s", len(tasks), artifactsDir)
	return nil
}

// patchDocument merges the rendered report into the status document. A
// document read or write failure skips the patch with a warning; the
// artifacts persisted earlier in the run are not rolled back.
func (it *RunCommand) patchDocument(
	settings *entities.Settings,
	analysis *entities.Analysis,
	tasks []entities.Task,
) {
	documentPath := settings.Report.Document

	document, readErr := it.store.ReadDocument(documentPath)
	if readErr != nil {
		logger.Warnf("Skipping document patch: %v", readErr)
		return
	}

	section := entities.RenderReport(analysis, tasks, settings.Report.Marker)
	patched := entities.MergeSection(document, settings.Report.Marker, section, settings.Report.Anchor)

	if writeErr := it.store.WriteDocument(documentPath, patched); writeErr != nil {
		logger.Warnf("Failed to write patched document: %v", writeErr)
		return
	}
	logger.Debugf("Patched %q at marker %q", documentPath, settings.Report.Marker)
}
