package query

import (
	"fmt"
	"strconv"
	"strings"

	"github-repo-search/internal/filter"
)

// Sentinels substituted for open star bounds. GitHub's qualifier grammar
// accepts open ranges, but emitting a closed range keeps the output uniform.
const (
	starsFloor   = 0
	starsCeiling = 500000
)

// Compile turns a filter set into a GitHub repository search query string.
// Token order is fixed, so structurally equal filter sets always produce the
// identical string. Values are embedded verbatim; validation has already
// rejected anything that would break the query grammar.
func Compile(f filter.Filters) string {
	var parts []string

	if f.Language != "" {
		parts = append(parts, "language:"+f.Language)
	}

	if f.Stars != nil {
		lo, hi := starsFloor, starsCeiling
		if f.Stars.Min != nil {
			lo = *f.Stars.Min
		}
		if f.Stars.Max != nil {
			hi = *f.Stars.Max
		}
		parts = append(parts, fmt.Sprintf("stars:%d..%d", lo, hi))
	}

	for _, topic := range f.Topics {
		parts = append(parts, "topic:"+topic)
	}

	if f.License != "" {
		parts = append(parts, "license:"+f.License)
	}

	if f.GoodFirstIssue {
		parts = append(parts, "good-first-issues:>0")
	}
	if f.HelpWanted {
		parts = append(parts, "help-wanted-issues:>0")
	}

	if f.UpdatedAfter != "" {
		parts = append(parts, "pushed:>"+f.UpdatedAfter)
	}
	if f.CreatedAfter != "" {
		parts = append(parts, "created:>"+f.CreatedAfter)
	}

	parts = append(parts, "fork:"+strconv.FormatBool(f.IncludeForks))
	parts = append(parts, "archived:"+strconv.FormatBool(f.IncludeArchived))

	return strings.Join(parts, " ")
}
