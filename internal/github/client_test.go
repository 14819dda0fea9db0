package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v72/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/issuedown/issuedown/internal/errors"
)

// setupTestClient points a go-github client at a local test server
func setupTestClient(t *testing.T, handler http.Handler) IssueService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return NewIssueService(client)
}

func TestListIssues_Pagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("state"))

		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", `<https://api.github.com/repos/octo/repo/issues?page=2>; rel="next"`)
			fmt.Fprint(w, `[
				{"number": 1, "title": "First", "state": "open", "body": "one",
				 "html_url": "https://github.com/octo/repo/issues/1",
				 "user": {"login": "alice"}, "created_at": "2023-04-05T12:30:00Z"}
			]`)
		case "2":
			fmt.Fprint(w, `[
				{"number": 2, "title": "Second", "state": "open",
				 "user": {"login": "bob"}, "created_at": "2023-04-06T08:00:00Z"}
			]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	service := setupTestClient(t, mux)
	issues, err := service.ListIssues(context.Background(), "octo", "repo", "open")
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, Issue{
		Number:    1,
		Title:     "First",
		Author:    "alice",
		Body:      "one",
		State:     "open",
		URL:       "https://github.com/octo/repo/issues/1",
		CreatedAt: time.Date(2023, 4, 5, 12, 30, 0, 0, time.UTC),
	}, issues[0])
	assert.Equal(t, 2, issues[1].Number)
}

func TestListIssues_FiltersPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"number": 1, "title": "An issue", "user": {"login": "alice"}},
			{"number": 2, "title": "A pull request", "user": {"login": "bob"},
			 "pull_request": {"url": "https://api.github.com/repos/octo/repo/pulls/2"}}
		]`)
	})

	service := setupTestClient(t, mux)
	issues, err := service.ListIssues(context.Background(), "octo", "repo", "open")
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "An issue", issues[0].Title)
}

func TestGetIssue(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/repo/issues/42", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number": 42, "title": "Bug", "body": "It crashes", "state": "open",
			"user": {"login": "octocat"}, "created_at": "2023-04-05T12:30:00Z"}`)
	})

	service := setupTestClient(t, mux)
	issue, err := service.GetIssue(context.Background(), "octo", "repo", 42)
	require.NoError(t, err)

	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, "Bug", issue.Title)
	assert.Equal(t, "It crashes", issue.Body)
	assert.Equal(t, "octocat", issue.Author)
}

func TestGetIssue_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/repo/issues/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	service := setupTestClient(t, mux)
	_, err := service.GetIssue(context.Background(), "octo", "repo", 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "octo/repo#99")
}

func TestListComments_Pagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/repo/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "created", r.URL.Query().Get("sort"))
		assert.Equal(t, "asc", r.URL.Query().Get("direction"))

		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", `<https://api.github.com/repos/octo/repo/issues/42/comments?page=2>; rel="next"`)
			fmt.Fprint(w, `[{"body": "first", "user": {"login": "alice"}, "created_at": "2023-04-06T09:00:00Z"}]`)
		case "2":
			fmt.Fprint(w, `[{"body": "second", "user": {"login": "bob"}, "created_at": "2023-04-07T09:00:00Z"}]`)
		}
	})

	service := setupTestClient(t, mux)
	comments, err := service.ListComments(context.Background(), "octo", "repo", 42)
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body)
	assert.Equal(t, "alice", comments[0].Author)
	assert.Equal(t, "second", comments[1].Body)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		want    error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: apperrors.ErrAuthFailed},
		{name: "forbidden", status: http.StatusForbidden, want: apperrors.ErrAuthFailed},
		{
			name:   "forbidden with exhausted rate limit",
			status: http.StatusForbidden,
			headers: map[string]string{
				"X-RateLimit-Limit":     "60",
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1680700000",
			},
			want: apperrors.ErrRateLimited,
		},
		{name: "not found", status: http.StatusNotFound, want: apperrors.ErrNotFound},
		{name: "too many requests", status: http.StatusTooManyRequests, want: apperrors.ErrRateLimited},
		{name: "internal server error", status: http.StatusInternalServerError, want: apperrors.ErrServer},
		{name: "bad gateway", status: http.StatusBadGateway, want: apperrors.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/octo/repo/issues", func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message": "nope"}`)
			})

			service := setupTestClient(t, mux)
			_, err := service.ListIssues(context.Background(), "octo", "repo", "open")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
