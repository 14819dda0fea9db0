// Package github wraps the GitHub REST API behind a small issue-reading
// interface so the exporter can be tested without a live network.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v72/github"

	apperrors "github.com/issuedown/issuedown/internal/errors"
)

// IssueService handles GitHub issue read operations
type IssueService interface {
	// ListIssues returns all issues with the given state ("open", "closed",
	// or "all") in server order. Pull requests are excluded.
	ListIssues(ctx context.Context, owner, repo, state string) ([]Issue, error)
	// GetIssue fetches a single issue by number.
	GetIssue(ctx context.Context, owner, repo string, number int) (Issue, error)
	// ListComments returns all comments on an issue in chronological order.
	ListComments(ctx context.Context, owner, repo string, number int) ([]Comment, error)
}

// issueService implements IssueService using the GitHub API
type issueService struct {
	client *github.Client
}

// NewIssueService creates a new IssueService backed by the given client
func NewIssueService(client *github.Client) IssueService {
	return &issueService{
		client: client,
	}
}

func (is *issueService) ListIssues(ctx context.Context, owner, repo, state string) ([]Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State: state,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allIssues []Issue
	for {
		issues, resp, err := is.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapError(fmt.Sprintf("list issues for %s/%s", owner, repo), err)
		}

		for _, issue := range issues {
			if issue == nil || issue.Number == nil {
				continue
			}
			// The issues endpoint interleaves pull requests; skip them
			if issue.IsPullRequest() {
				continue
			}
			allIssues = append(allIssues, fromIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		// IssueListByRepoOptions embeds both ListOptions and
		// ListCursorOptions, so the page field needs qualifying
		opts.ListOptions.Page = resp.NextPage
	}

	return allIssues, nil
}

func (is *issueService) GetIssue(ctx context.Context, owner, repo string, number int) (Issue, error) {
	issue, _, err := is.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return Issue{}, mapError(fmt.Sprintf("get issue %s/%s#%d", owner, repo, number), err)
	}
	if issue == nil || issue.Number == nil {
		return Issue{}, fmt.Errorf("get issue %s/%s#%d: empty response: %w", owner, repo, number, apperrors.ErrServer)
	}
	return fromIssue(issue), nil
}

func (is *issueService) ListComments(ctx context.Context, owner, repo string, number int) ([]Comment, error) {
	opts := &github.IssueListCommentsOptions{
		Sort:      github.Ptr("created"),
		Direction: github.Ptr("asc"),
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allComments []Comment
	for {
		comments, resp, err := is.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, mapError(fmt.Sprintf("list comments for %s/%s#%d", owner, repo, number), err)
		}

		for _, comment := range comments {
			if comment == nil {
				continue
			}
			allComments = append(allComments, fromComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

func fromIssue(issue *github.Issue) Issue {
	return Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Author:    issue.GetUser().GetLogin(),
		Body:      issue.GetBody(),
		State:     issue.GetState(),
		URL:       issue.GetHTMLURL(),
		CreatedAt: issue.GetCreatedAt().Time,
	}
}

func fromComment(comment *github.IssueComment) Comment {
	return Comment{
		Author:    comment.GetUser().GetLogin(),
		Body:      comment.GetBody(),
		URL:       comment.GetHTMLURL(),
		CreatedAt: comment.GetCreatedAt().Time,
	}
}

// mapError converts a go-github error into one of the exporter's sentinel
// error kinds, keeping the original message for diagnosis.
func mapError(op string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrRateLimited)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrRateLimited)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrAuthFailed)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrNotFound)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrRateLimited)
		}
	}

	return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrServer)
}
