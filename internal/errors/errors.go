// Package errors defines sentinel errors for consistent error handling across
// the exporter. The CLI maps these to exit codes.
package errors

import "errors"

var (
	// ErrMissingCredential indicates no GitHub token was found in the
	// environment or a local .env file.
	ErrMissingCredential = errors.New("missing github token")

	// ErrInvalidTarget indicates the owner/repo[#issue] argument could not
	// be parsed.
	ErrInvalidTarget = errors.New("invalid export target")

	// ErrAuthFailed indicates GitHub rejected the token (401 or 403).
	ErrAuthFailed = errors.New("github authentication failed")

	// ErrNotFound indicates the repository or issue does not exist or is
	// not accessible (404).
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the GitHub API rate limit was hit (429).
	// The tool does not retry; it surfaces the condition and exits.
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrServer indicates any other non-success response from GitHub.
	ErrServer = errors.New("github server error")

	// ErrIO indicates a local filesystem failure.
	ErrIO = errors.New("i/o error")
)
