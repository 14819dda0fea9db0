// Package config provides configuration management for the exporter.
package config

import (
	"fmt"
	"os"

	apperrors "github.com/issuedown/issuedown/internal/errors"
)

// Defaults for the flag-configurable settings
const (
	DefaultOutputDir  = "./md"
	DefaultIssueState = "open"
)

// Config holds the configuration for an export run
type Config struct {
	GitHubToken string
	OutputDir   string
	IssueState  string // "open", "closed", or "all"
}

// Load loads configuration from environment variables. The CLI layer loads a
// local .env file into the environment first, so a token in either place
// lands here. OutputDir and IssueState are owned by CLI flags.
func Load() Config {
	return Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
	}
}

// Validate checks if the required configuration is present
func (c Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("set the GITHUB_TOKEN environment variable or add it to a .env file: %w", apperrors.ErrMissingCredential)
	}
	switch c.IssueState {
	case "open", "closed", "all":
	default:
		return fmt.Errorf("invalid issue state %q, expected open, closed, or all", c.IssueState)
	}
	return nil
}
