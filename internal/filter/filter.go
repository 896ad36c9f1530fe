package filter

import (
	"strings"
	"time"
)

// Sort values accepted by the GitHub repository search API.
const (
	SortStars            = "stars"
	SortForks            = "forks"
	SortHelpWantedIssues = "help-wanted-issues"
	SortUpdated          = "updated"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	DefaultSort  = SortStars
	DefaultOrder = OrderDesc
	DefaultLimit = 10

	// MaxLimit is GitHub's per_page ceiling.
	MaxLimit = 100
)

// StarsRange bounds the stargazer count. A nil bound is open; the query
// compiler substitutes a sentinel so the clause is always a closed range.
type StarsRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// Filters is the canonical structured search request. Fill it in (or let the
// resolver produce one), call Normalize and Validate, then treat it as
// immutable through compilation and execution.
type Filters struct {
	Language        string      `json:"language,omitempty"`
	Topics          []string    `json:"topics,omitempty"`
	Stars           *StarsRange `json:"stars,omitempty"`
	License         string      `json:"license,omitempty"`
	GoodFirstIssue  bool        `json:"good_first_issue"`
	HelpWanted      bool        `json:"help_wanted"`
	UpdatedAfter    string      `json:"updated_after,omitempty"`
	CreatedAfter    string      `json:"created_after,omitempty"`
	IncludeForks    bool        `json:"include_forks"`
	IncludeArchived bool        `json:"archived"`
	Sort            string      `json:"sort"`
	Order           string      `json:"order"`
	Limit           int         `json:"limit"`
	Page            int         `json:"page"`
}

// Default returns the filter set used when nothing is specified. It is also
// the fallback when natural-language interpretation fails.
func Default() Filters {
	return Filters{
		Sort:  DefaultSort,
		Order: DefaultOrder,
		Limit: DefaultLimit,
		Page:  1,
	}
}

// Normalize trims and lowercases the identifiers GitHub treats
// case-insensitively and fills zero-valued sort and pagination fields with
// their defaults.
func (f *Filters) Normalize() {
	f.Language = strings.ToLower(strings.TrimSpace(f.Language))
	f.License = strings.ToLower(strings.TrimSpace(f.License))
	for i, topic := range f.Topics {
		f.Topics[i] = strings.TrimSpace(topic)
	}
	if f.Sort == "" {
		f.Sort = DefaultSort
	}
	if f.Order == "" {
		f.Order = DefaultOrder
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Page == 0 {
		f.Page = 1
	}
}

// Validate checks every field against its constraints and returns a
// *ValidationError naming the first offending field. Filter values are
// embedded verbatim in the compiled query, so values that would break the
// query grammar are rejected here.
func (f *Filters) Validate() error {
	if f.Language != "" && !validValue(f.Language) {
		return &ValidationError{Field: "language", Message: "must not contain whitespace or quotes"}
	}
	for _, topic := range f.Topics {
		if topic == "" {
			return &ValidationError{Field: "topics", Message: "topics must not be empty"}
		}
		if !validValue(topic) {
			return &ValidationError{Field: "topics", Message: "topics must not contain whitespace or quotes"}
		}
	}
	if f.Stars != nil {
		if f.Stars.Min != nil && *f.Stars.Min < 0 {
			return &ValidationError{Field: "stars", Message: "min must not be negative"}
		}
		if f.Stars.Max != nil && *f.Stars.Max < 0 {
			return &ValidationError{Field: "stars", Message: "max must not be negative"}
		}
		if f.Stars.Min != nil && f.Stars.Max != nil && *f.Stars.Min > *f.Stars.Max {
			return &ValidationError{Field: "stars", Message: "min must not exceed max"}
		}
	}
	if f.License != "" && !validValue(f.License) {
		return &ValidationError{Field: "license", Message: "must not contain whitespace or quotes"}
	}
	if f.UpdatedAfter != "" && !validDate(f.UpdatedAfter) {
		return &ValidationError{Field: "updated_after", Message: "must be a valid YYYY-MM-DD date"}
	}
	if f.CreatedAfter != "" && !validDate(f.CreatedAfter) {
		return &ValidationError{Field: "created_after", Message: "must be a valid YYYY-MM-DD date"}
	}
	switch f.Sort {
	case SortStars, SortForks, SortHelpWantedIssues, SortUpdated:
	default:
		return &ValidationError{Field: "sort", Message: "must be one of stars, forks, help-wanted-issues, updated"}
	}
	if f.Order != OrderAsc && f.Order != OrderDesc {
		return &ValidationError{Field: "order", Message: "must be asc or desc"}
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		return &ValidationError{Field: "limit", Message: "must be between 1 and 100"}
	}
	if f.Page < 1 {
		return &ValidationError{Field: "page", Message: "must be at least 1"}
	}
	return nil
}

func validValue(s string) bool {
	return !strings.ContainsAny(s, " \t\n\"")
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
