package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-repo-search/internal/filter"
	"github-repo-search/internal/search"
)

type stubResolver struct {
	f filter.Filters
}

func (s stubResolver) Resolve(ctx context.Context, text string) filter.Filters {
	return s.f
}

type stubExecutor struct {
	gotQuery string
	env      *search.Envelope
	err      error
}

func (s *stubExecutor) Search(ctx context.Context, query string, f filter.Filters) (*search.Envelope, error) {
	s.gotQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.env, nil
}

func sampleEnvelope() *search.Envelope {
	return &search.Envelope{
		TotalCount: 42,
		Items: []search.RepoSummary{
			{FullName: "golang/go", Stars: 120000, URL: "https://github.com/golang/go"},
		},
	}
}

func newService(resolved filter.Filters, exec *stubExecutor) *search.Service {
	return search.NewService(stubResolver{f: resolved}, exec, nil)
}

func TestNLPSearchHandler(t *testing.T) {
	resolved := filter.Default()
	resolved.Language = "python"
	exec := &stubExecutor{env: sampleEnvelope()}
	handler := NLPSearchHandler(newService(resolved, exec))

	body := strings.NewReader(`{"query": "python repos", "page": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/search/nlp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result search.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "python", result.Filters.Language)
	assert.Equal(t, 2, result.Filters.Page)
	assert.Equal(t, 42, result.Results.TotalCount)
	assert.Equal(t, "language:python fork:false archived:false", exec.gotQuery)
}

func TestNLPSearchHandlerRejectsEmptyQuery(t *testing.T) {
	handler := NLPSearchHandler(newService(filter.Default(), &stubExecutor{env: sampleEnvelope()}))

	req := httptest.NewRequest(http.MethodPost, "/api/search/nlp", strings.NewReader(`{"query": "  "}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNLPSearchHandlerMethodNotAllowed(t *testing.T) {
	handler := NLPSearchHandler(newService(filter.Default(), &stubExecutor{env: sampleEnvelope()}))

	req := httptest.NewRequest(http.MethodGet, "/api/search/nlp", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestManualSearchHandler(t *testing.T) {
	exec := &stubExecutor{env: sampleEnvelope()}
	handler := ManualSearchHandler(newService(filter.Default(), exec))

	body := strings.NewReader(`{
		"language": "go",
		"stars_min": 100,
		"topics": ["cli"],
		"good_first_issue": true,
		"limit": 25,
		"page": 3
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/search/manual", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result search.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "go", result.Filters.Language)
	require.NotNil(t, result.Filters.Stars)
	require.NotNil(t, result.Filters.Stars.Min)
	assert.Equal(t, 100, *result.Filters.Stars.Min)
	assert.Equal(t, 25, result.Filters.Limit)
	assert.Equal(t, "language:go stars:100..500000 topic:cli good-first-issues:>0 fork:false archived:false", exec.gotQuery)
}

func TestManualSearchHandlerValidationError(t *testing.T) {
	handler := ManualSearchHandler(newService(filter.Default(), &stubExecutor{env: sampleEnvelope()}))

	body := strings.NewReader(`{"stars_min": 500, "stars_max": 100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/search/manual", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid stars")
}

func TestManualSearchHandlerProviderRejected(t *testing.T) {
	exec := &stubExecutor{err: &search.ProviderRejectedError{StatusCode: 403, Message: "API rate limit exceeded"}}
	handler := ManualSearchHandler(newService(filter.Default(), exec))

	req := httptest.NewRequest(http.MethodPost, "/api/search/manual", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "403")
	assert.Contains(t, rec.Body.String(), "API rate limit exceeded")
}

func TestManualSearchHandlerProviderUnavailable(t *testing.T) {
	exec := &stubExecutor{err: &search.ProviderUnavailableError{Err: context.DeadlineExceeded}}
	handler := ManualSearchHandler(newService(filter.Default(), exec))

	req := httptest.NewRequest(http.MethodPost, "/api/search/manual", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHistorySearchHandlerNotConfigured(t *testing.T) {
	handler := HistorySearchHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/search/history", strings.NewReader(`{"query": "go"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestWrapAddsRequestIDAndCORS(t *testing.T) {
	handler := Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/search/nlp", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestWrapHandlesPreflight(t *testing.T) {
	called := false
	handler := Wrap(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/search/nlp", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
}
