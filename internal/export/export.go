// Package export orchestrates the issue export pipeline: resolve the target,
// fetch issues and comments, render markdown, write files.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/issuedown/issuedown/internal/errors"
	"github.com/issuedown/issuedown/internal/github"
	"github.com/issuedown/issuedown/internal/render"
)

// Target identifies what to export: a repository, and optionally a single
// issue within it. Parsed once from the CLI argument.
type Target struct {
	Owner       string
	Repo        string
	IssueNumber *int // nil means export all issues
}

func (t Target) String() string {
	if t.IssueNumber != nil {
		return fmt.Sprintf("%s/%s#%d", t.Owner, t.Repo, *t.IssueNumber)
	}
	return fmt.Sprintf("%s/%s", t.Owner, t.Repo)
}

// ParseTarget parses an argument of the form "owner/repo[#issue_number]"
func ParseTarget(arg string) (Target, error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 {
		return Target{}, fmt.Errorf("%q: expected owner/repo[#issue_number]: %w", arg, apperrors.ErrInvalidTarget)
	}

	target := Target{Owner: strings.TrimSpace(parts[0])}

	rest := strings.TrimSpace(parts[1])
	if repo, numStr, found := strings.Cut(rest, "#"); found {
		number, err := strconv.Atoi(numStr)
		if err != nil || number <= 0 {
			return Target{}, fmt.Errorf("%q: bad issue number %q: %w", arg, numStr, apperrors.ErrInvalidTarget)
		}
		target.Repo = repo
		target.IssueNumber = &number
	} else {
		target.Repo = rest
	}

	if target.Owner == "" || target.Repo == "" {
		return Target{}, fmt.Errorf("%q: owner and repo must be non-empty: %w", arg, apperrors.ErrInvalidTarget)
	}

	return target, nil
}

// Exporter runs the export pipeline for one target
type Exporter struct {
	issues     github.IssueService
	outputDir  string
	issueState string
}

// New creates an Exporter writing to outputDir. issueState filters the issue
// listing ("open", "closed", or "all") and is ignored for single-issue
// targets.
func New(issues github.IssueService, outputDir, issueState string) *Exporter {
	return &Exporter{
		issues:     issues,
		outputDir:  outputDir,
		issueState: issueState,
	}
}

// Run exports the target's issues to markdown files, one per issue, named
// <number>.md. Existing files of the same name are overwritten.
func (e *Exporter) Run(ctx context.Context, target Target) error {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %v: %w", e.outputDir, err, apperrors.ErrIO)
	}

	if target.IssueNumber != nil {
		return e.exportSingle(ctx, target)
	}
	return e.exportAll(ctx, target)
}

// exportSingle exports one requested issue. Any failure is fatal: with a
// single issue there is nothing to continue past.
func (e *Exporter) exportSingle(ctx context.Context, target Target) error {
	issue, err := e.issues.GetIssue(ctx, target.Owner, target.Repo, *target.IssueNumber)
	if err != nil {
		return err
	}

	comments, err := e.issues.ListComments(ctx, target.Owner, target.Repo, issue.Number)
	if err != nil {
		return err
	}

	if err := e.writeIssue(issue, comments); err != nil {
		return err
	}

	log.Printf("[export] Exported 1 issue from %s/%s to %s", target.Owner, target.Repo, e.outputDir)
	return nil
}

// exportAll enumerates issues and exports each. A comment-fetch failure on
// one issue is logged and the issue is exported with an empty comment
// section; a write failure is logged and the issue skipped. Authentication
// and rate-limit failures abort the whole run.
func (e *Exporter) exportAll(ctx context.Context, target Target) error {
	issues, err := e.issues.ListIssues(ctx, target.Owner, target.Repo, e.issueState)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		log.Printf("[export] No %s issues found in %s/%s", e.issueState, target.Owner, target.Repo)
		return nil
	}

	exported := 0
	for _, issue := range issues {
		comments, err := e.issues.ListComments(ctx, target.Owner, target.Repo, issue.Number)
		if err != nil {
			if !recoverable(err) {
				return err
			}
			log.Printf("[export] Warning: could not fetch comments for %s/%s#%d, exporting without comments: %v",
				target.Owner, target.Repo, issue.Number, err)
			comments = nil
		}

		if err := e.writeIssue(issue, comments); err != nil {
			log.Printf("[export] Warning: skipping issue %s/%s#%d: %v",
				target.Owner, target.Repo, issue.Number, err)
			continue
		}
		exported++
	}

	log.Printf("[export] Exported %d issues from %s/%s to %s", exported, target.Owner, target.Repo, e.outputDir)
	return nil
}

func (e *Exporter) writeIssue(issue github.Issue, comments []github.Comment) error {
	content := render.Markdown(issue, comments)
	filename := filepath.Join(e.outputDir, fmt.Sprintf("%d.md", issue.Number))

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %v: %w", filename, err, apperrors.ErrIO)
	}

	log.Printf("[export] Wrote %s", filename)
	return nil
}

// recoverable reports whether a per-issue failure allows the batch to
// continue. Credential problems and rate limiting affect every remaining
// request, so they abort the run.
func recoverable(err error) bool {
	return !errors.Is(err, apperrors.ErrAuthFailed) && !errors.Is(err, apperrors.ErrRateLimited)
}
