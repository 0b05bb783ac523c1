package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults applied to optional report settings.
const (
	DefaultDocument     = "README.md"
	DefaultMarker       = "## Automated Status"
	DefaultAnchor       = "## License"
	DefaultArtifactsDir = "reports"
	DefaultPageSize     = 10
	DefaultWorkflowsDir = ".github/workflows"
	DefaultNotebook     = "analysis.ipynb"
)

// Settings is the top-level configuration for autoreport.
type Settings struct {
	Provider   ProviderSettings   `yaml:"provider"`
	Repository RepositorySettings `yaml:"repository"`
	Report     ReportSettings     `yaml:"report"`
	Targets    TargetSettings     `yaml:"targets"`
}

// ProviderSettings describes the Git hosting provider to pull the
// change-set history from.
type ProviderSettings struct {
	Type  string `yaml:"type"`  // "github" or "gitlab"
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// RepositorySettings identifies the repository under analysis.
type RepositorySettings struct {
	Organization string `yaml:"organization"`
	Name         string `yaml:"name"`
}

// ReportSettings controls the status document and the persisted artifacts.
type ReportSettings struct {
	Document     string `yaml:"document"`      // Status document to patch
	Marker       string `yaml:"marker"`        // Managed section heading
	Anchor       string `yaml:"anchor"`        // First-time insertion anchor
	ArtifactsDir string `yaml:"artifacts_dir"` // Analysis/task JSON artifacts
	PageSize     int    `yaml:"page_size"`     // Closed change sets fetched per run
}

// TargetSettings names the repository paths the task heuristics point at.
type TargetSettings struct {
	WorkflowsDir string `yaml:"workflows_dir"`
	Notebook     string `yaml:"notebook"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving token file paths and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Provider.Token = resolveToken(settings.Provider.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".autoreport.yaml",
		".autoreport.yml",
		"autoreport.yaml",
		"autoreport.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// TargetRepository builds the provider-facing repository identity out of
// the configured settings.
func (s *Settings) TargetRepository() Repository {
	//nolint:exhaustruct // Only the identity fields matter for API access
	return Repository{
		Name:         s.Repository.Name,
		Organization: s.Repository.Organization,
		ProviderName: s.Provider.Type,
	}
}

func (s *Settings) applyDefaults() {
	if s.Report.Document == "" {
		s.Report.Document = DefaultDocument
	}
	if s.Report.Marker == "" {
		s.Report.Marker = DefaultMarker
	}
	if s.Report.Anchor == "" {
		s.Report.Anchor = DefaultAnchor
	}
	if s.Report.ArtifactsDir == "" {
		s.Report.ArtifactsDir = DefaultArtifactsDir
	}
	if s.Report.PageSize <= 0 {
		s.Report.PageSize = DefaultPageSize
	}
	if s.Targets.WorkflowsDir == "" {
		s.Targets.WorkflowsDir = DefaultWorkflowsDir
	}
	if s.Targets.Notebook == "" {
		s.Targets.Notebook = DefaultNotebook
	}
}

// validate checks for required configuration values.
func (s *Settings) validate() error {
	if s.Provider.Type == "" {
		return errors.New("provider.type is required")
	}
	if s.Provider.Token == "" {
		return errors.New(
			"provider.token is required (set inline, via ${ENV_VAR}, or as file path)",
		)
	}
	if s.Repository.Organization == "" {
		return errors.New("repository.organization is required")
	}
	if s.Repository.Name == "" {
		return errors.New("repository.name is required")
	}
	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
