package search

import "github-repo-search/internal/filter"

// RepoSummary is the fixed projection of a repository handed back to callers.
type RepoSummary struct {
	FullName    string   `json:"full_name"`
	Stars       int      `json:"stars"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Topics      []string `json:"topics,omitempty"`
}

// Envelope is one page of provider results. A zero total count is a valid
// envelope, not a failure.
type Envelope struct {
	TotalCount int           `json:"total_count"`
	Items      []RepoSummary `json:"items"`
}

// Result is the response shape returned to callers: the filter set that was
// actually searched with, echoed next to the results.
type Result struct {
	Filters filter.Filters `json:"filters"`
	Results Envelope       `json:"results"`
}
