package llm

import (
	"time"

	"github-repo-search/internal/filter"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 15 * time.Second
)

// Config carries the credentials and tuning for the Gemini call. Resolved at
// startup and passed to NewClient.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type issueFlags struct {
	GoodFirstIssue bool `json:"good_first_issue"`
	HelpWanted     bool `json:"help_wanted"`
}

// parsedFilters is the JSON shape the instruction template asks the model
// for. Issue flags arrive nested; the resolver flattens them into a
// filter.Filters.
type parsedFilters struct {
	Language     string             `json:"language"`
	Topics       []string           `json:"topics"`
	Stars        *filter.StarsRange `json:"stars"`
	License      string             `json:"license"`
	Issues       *issueFlags        `json:"issues"`
	UpdatedAfter string             `json:"updated_after"`
	CreatedAfter string             `json:"created_after"`
	Archived     bool               `json:"archived"`
	IncludeForks bool               `json:"include_forks"`
	Sort         string             `json:"sort"`
	Order        string             `json:"order"`
	Limit        int                `json:"limit"`
}
