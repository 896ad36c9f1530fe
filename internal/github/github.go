package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"

	"github-repo-search/internal/filter"
	"github-repo-search/internal/search"
)

// Per-call bound on the provider round trip. Not caller-configurable.
const defaultTimeout = 15 * time.Second

// Config carries the credentials for the GitHub client. An empty token gives
// an unauthenticated client with the lower rate limit.
type Config struct {
	Token   string
	BaseURL string // override for tests; empty means api.github.com
	Timeout time.Duration
}

// Client executes compiled queries against the GitHub repository search API.
type Client struct {
	client *github.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	hc := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		hc.Transport = &oauth2.Transport{Source: ts}
	}

	gh := github.NewClient(hc)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
		gh.BaseURL = u
	}

	return &Client{client: gh}, nil
}

// Search sends one repository search request with the compiled query and the
// filter set's sort and pagination parameters. No retry: failures come back
// classified as *search.ProviderUnavailableError or
// *search.ProviderRejectedError. Zero results is a valid envelope.
func (c *Client) Search(ctx context.Context, query string, f filter.Filters) (*search.Envelope, error) {
	opts := &github.SearchOptions{
		Sort:        f.Sort,
		Order:       f.Order,
		ListOptions: github.ListOptions{Page: f.Page, PerPage: f.Limit},
	}

	res, _, err := c.client.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, classify(err)
	}

	env := &search.Envelope{
		TotalCount: res.GetTotal(),
		Items:      make([]search.RepoSummary, 0, len(res.Repositories)),
	}
	for _, repo := range res.Repositories {
		env.Items = append(env.Items, search.RepoSummary{
			FullName:    repo.GetFullName(),
			Stars:       repo.GetStargazersCount(),
			URL:         repo.GetHTMLURL(),
			Description: repo.GetDescription(),
			Topics:      repo.Topics,
		})
	}
	return env, nil
}

// classify maps go-github errors onto the failure taxonomy: any response the
// provider actually produced is a rejection, everything else is transport.
func classify(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return &search.ProviderRejectedError{
			StatusCode: errResp.Response.StatusCode,
			Message:    errResp.Message,
		}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &search.ProviderRejectedError{
			StatusCode: rateErr.Response.StatusCode,
			Message:    rateErr.Message,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &search.ProviderRejectedError{
			StatusCode: abuseErr.Response.StatusCode,
			Message:    abuseErr.Message,
		}
	}

	return &search.ProviderUnavailableError{Err: err}
}
