package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github-repo-search/internal/filter"
)

func intPtr(n int) *int { return &n }

func TestCompileAllDefaults(t *testing.T) {
	got := Compile(filter.Default())
	assert.Equal(t, "fork:false archived:false", got)
}

func TestCompileDeterministic(t *testing.T) {
	f := filter.Default()
	f.Language = "go"
	f.Topics = []string{"web", "api"}
	f.Stars = &filter.StarsRange{Min: intPtr(100), Max: intPtr(2000)}
	f.License = "mit"
	f.GoodFirstIssue = true

	assert.Equal(t, Compile(f), Compile(f))
}

func TestCompileStructuredExample(t *testing.T) {
	f := filter.Default()
	f.Language = "python"
	f.Stars = &filter.StarsRange{Min: intPtr(500)}
	f.GoodFirstIssue = true

	got := Compile(f)
	assert.Equal(t, "language:python stars:500..500000 good-first-issues:>0 fork:false archived:false", got)
}

func TestCompileRangeClosure(t *testing.T) {
	f := filter.Default()
	f.Stars = &filter.StarsRange{Min: intPtr(100)}
	assert.Contains(t, Compile(f), "stars:100..500000")

	f.Stars = &filter.StarsRange{Max: intPtr(500)}
	assert.Contains(t, Compile(f), "stars:0..500")
}

func TestCompileTopicOrderPreserved(t *testing.T) {
	f := filter.Default()
	f.Topics = []string{"web", "api", "cli"}

	got := Compile(f)
	web := strings.Index(got, "topic:web")
	api := strings.Index(got, "topic:api")
	cli := strings.Index(got, "topic:cli")
	assert.True(t, web >= 0 && web < api && api < cli, "topics out of order in %q", got)
}

func TestCompileTokenOrder(t *testing.T) {
	f := filter.Default()
	f.Language = "rust"
	f.Stars = &filter.StarsRange{Min: intPtr(10), Max: intPtr(100)}
	f.Topics = []string{"cli"}
	f.License = "apache-2.0"
	f.GoodFirstIssue = true
	f.HelpWanted = true
	f.UpdatedAfter = "2024-01-01"
	f.CreatedAfter = "2023-01-01"
	f.IncludeForks = true
	f.IncludeArchived = true

	got := Compile(f)
	want := "language:rust stars:10..100 topic:cli license:apache-2.0 " +
		"good-first-issues:>0 help-wanted-issues:>0 " +
		"pushed:>2024-01-01 created:>2023-01-01 fork:true archived:true"
	assert.Equal(t, want, got)
}

func TestCompileAlwaysEmitsForkAndArchiveTokens(t *testing.T) {
	cases := []filter.Filters{
		filter.Default(),
		{Language: "go", Sort: filter.SortStars, Order: filter.OrderDesc, Limit: 10, Page: 1},
		{IncludeForks: true, Sort: filter.SortStars, Order: filter.OrderDesc, Limit: 10, Page: 1},
		{IncludeArchived: true, Sort: filter.SortStars, Order: filter.OrderDesc, Limit: 10, Page: 1},
	}

	for _, f := range cases {
		got := Compile(f)
		assert.Equal(t, 1, strings.Count(got, "fork:"), "query %q", got)
		assert.Equal(t, 1, strings.Count(got, "archived:"), "query %q", got)
	}
}

func TestCompileSkipsPaginationAndSort(t *testing.T) {
	f := filter.Default()
	f.Sort = filter.SortUpdated
	f.Order = filter.OrderAsc
	f.Limit = 50
	f.Page = 7

	// Sort and pagination travel as request parameters, never as query tokens.
	got := Compile(f)
	assert.Equal(t, "fork:false archived:false", got)
}
