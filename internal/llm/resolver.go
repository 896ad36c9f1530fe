package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github-repo-search/internal/filter"
)

const promptTemplate = `Convert this GitHub search query to JSON filters.

Available filters:
- language: string (e.g., "python", "javascript")
- topics: array (e.g., ["web", "api"])
- stars: object (e.g., {"min": 100, "max": 2000})
- license: string (e.g., "mit")
- issues: object (e.g., {"good_first_issue": true, "help_wanted": true})
- updated_after: date (e.g., "2023-01-01")
- created_after: date (e.g., "2023-06-01")

Handle spelling mistakes intelligently.

Query: "%s"

Return ONLY valid JSON with these defaults:
{"archived": false, "include_forks": false, "sort": "stars", "order": "desc", "limit": 10}

JSON:`

// generateFunc is the seam between the resolver and the model call, so
// resolution logic is testable without the network.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// Resolver converts free text into a filter set via Gemini. It absorbs every
// failure mode of the model: the caller always gets some filter set back.
type Resolver struct {
	generate generateFunc
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{generate: client.Generate}
}

// Resolve interprets free text as a filter set. It never fails: a model
// error, a malformed response, or unparseable JSON all yield the default
// filter set.
func (r *Resolver) Resolve(ctx context.Context, text string) filter.Filters {
	raw, err := r.generate(ctx, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		log.Printf("❌ Gemini call failed: %v", err)
		return filter.Default()
	}

	f, err := parseFilters(raw)
	if err != nil {
		log.Printf("❌ Could not parse model response: %v", err)
		return filter.Default()
	}
	return f
}

func parseFilters(raw string) (filter.Filters, error) {
	var parsed parsedFilters
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return filter.Filters{}, fmt.Errorf("parsing filter JSON: %w", err)
	}

	f := filter.Filters{
		Language:        parsed.Language,
		Topics:          parsed.Topics,
		Stars:           parsed.Stars,
		License:         parsed.License,
		UpdatedAfter:    parsed.UpdatedAfter,
		CreatedAfter:    parsed.CreatedAfter,
		IncludeForks:    parsed.IncludeForks,
		IncludeArchived: parsed.Archived,
		Sort:            parsed.Sort,
		Order:           parsed.Order,
		Limit:           parsed.Limit,
		Page:            1,
	}
	if parsed.Issues != nil {
		f.GoodFirstIssue = parsed.Issues.GoodFirstIssue
		f.HelpWanted = parsed.Issues.HelpWanted
	}
	f.Normalize()
	return f, nil
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\}|\\[.*\\])\\s*```")

// stripCodeFence removes surrounding ```json markup when present. The model
// is told to return bare JSON but fences it anyway often enough.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(trimmed); len(m) == 2 {
		return m[1]
	}
	return trimmed
}
