package github

import "time"

// Issue is a flat view of a GitHub issue, holding only the fields the
// exporter renders.
type Issue struct {
	Number int

	Title  string
	Author string
	Body   string // May be empty
	State  string // "open" or "closed"
	URL    string // html_url, suitable for linking in markdown

	CreatedAt time.Time
}

// Comment is a reply attached to an issue. Comments carry no identity of
// their own; ordering is the server's chronological order.
type Comment struct {
	Author string
	Body   string
	URL    string // html_url of the comment, may be empty

	CreatedAt time.Time
}
