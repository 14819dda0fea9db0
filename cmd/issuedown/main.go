package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/issuedown/issuedown/cmd/issuedown/cmd"
	apperrors "github.com/issuedown/issuedown/internal/errors"
)

// Version information set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cmd.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, apperrors.ErrMissingCredential) ||
		errors.Is(err, apperrors.ErrAuthFailed) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrRateLimited) {
		return 2 // Authentication/authorization errors
	}

	return 1 // General error
}
