// Package render formats an issue and its comment thread as a markdown
// document. Rendering is deterministic and touches no network or filesystem.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/issuedown/issuedown/internal/github"
)

// Markdown renders one issue plus its ordered comments as a single markdown
// document. Comments are rendered in the order given; with no comments the
// document has no comment section.
func Markdown(issue github.Issue, comments []github.Comment) string {
	var builder strings.Builder

	writeHeader(&builder, issue)
	writeBody(&builder, issue.Body)

	if len(comments) > 0 {
		writeComments(&builder, comments)
	}

	return builder.String()
}

// writeHeader writes the title heading and the metadata line.
func writeHeader(builder *strings.Builder, issue github.Issue) {
	if issue.URL != "" {
		fmt.Fprintf(builder, "# [%s](%s) (#%d)\n\n", issue.Title, issue.URL, issue.Number)
	} else {
		fmt.Fprintf(builder, "# %s (#%d)\n\n", issue.Title, issue.Number)
	}
	fmt.Fprintf(builder, "> state: **%s** opened by: **%s** on: **%s**\n\n",
		issue.State, issue.Author, formatDate(issue.CreatedAt))
}

// writeBody writes the issue body verbatim.
func writeBody(builder *strings.Builder, body string) {
	builder.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		builder.WriteString("\n")
	}
}

// writeComments writes the comment section with one separated entry per
// comment.
func writeComments(builder *strings.Builder, comments []github.Comment) {
	builder.WriteString("\n### Comments\n")

	for _, comment := range comments {
		builder.WriteString("\n---\n")
		if comment.URL != "" {
			fmt.Fprintf(builder, "> from: [**%s**](%s) on: **%s**\n\n",
				comment.Author, comment.URL, formatDate(comment.CreatedAt))
		} else {
			fmt.Fprintf(builder, "> from: **%s** on: **%s**\n\n",
				comment.Author, formatDate(comment.CreatedAt))
		}
		builder.WriteString(comment.Body)
		if comment.Body != "" && !strings.HasSuffix(comment.Body, "\n") {
			builder.WriteString("\n")
		}
	}
}

// formatDate normalizes timestamps to UTC so output does not depend on the
// local timezone.
func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
