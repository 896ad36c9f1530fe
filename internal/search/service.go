package search

import (
	"context"
	"log"

	"github-repo-search/internal/filter"
	"github-repo-search/internal/query"
)

// Resolver turns free text into a filter set. Implementations never fail:
// when interpretation breaks down they return the default filter set.
type Resolver interface {
	Resolve(ctx context.Context, text string) filter.Filters
}

// Executor runs one compiled query against the search provider. Errors are
// *ProviderUnavailableError or *ProviderRejectedError.
type Executor interface {
	Search(ctx context.Context, query string, f filter.Filters) (*Envelope, error)
}

// Recorder archives returned repositories for later full-text lookup.
type Recorder interface {
	Record(ctx context.Context, items []RepoSummary) error
}

// Service ties resolution, validation, compilation and execution together.
// It keeps no state between calls, so one instance serves concurrent
// requests without coordination.
type Service struct {
	resolver Resolver
	executor Executor
	recorder Recorder
}

// NewService builds a Service. recorder may be nil to disable archiving.
func NewService(resolver Resolver, executor Executor, recorder Recorder) *Service {
	return &Service{
		resolver: resolver,
		executor: executor,
		recorder: recorder,
	}
}

// SearchNatural resolves free text into filters and runs the search. The
// caller's page number overrides whatever the resolver produced. Resolved
// filters that fail validation are replaced by the defaults so a
// natural-language request always results in some search.
func (s *Service) SearchNatural(ctx context.Context, text string, page int) (*Result, error) {
	f := s.resolver.Resolve(ctx, text)
	if page > 0 {
		f.Page = page
	}
	f.Normalize()
	if err := f.Validate(); err != nil {
		log.Printf("⚠️ Resolved filters invalid (%v), falling back to defaults", err)
		f = filter.Default()
		if page > 0 {
			f.Page = page
		}
	}
	return s.run(ctx, f)
}

// SearchManual validates a caller-supplied filter set and runs the search.
func (s *Service) SearchManual(ctx context.Context, f filter.Filters) (*Result, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, f)
}

func (s *Service) run(ctx context.Context, f filter.Filters) (*Result, error) {
	q := query.Compile(f)
	log.Printf("🔍 GitHub query: %s", q)

	env, err := s.executor.Search(ctx, q, f)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil && len(env.Items) > 0 {
		if err := s.recorder.Record(ctx, env.Items); err != nil {
			log.Printf("⚠️ Failed to record results: %v", err)
		}
	}

	return &Result{Filters: f, Results: *env}, nil
}
