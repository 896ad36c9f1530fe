package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github-repo-search/internal/filter"
	"github-repo-search/internal/search"
)

type NLPRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
}

// ManualRequest is the flat filter shape of the manual search endpoint.
type ManualRequest struct {
	Language       string   `json:"language"`
	StarsMin       *int     `json:"stars_min"`
	StarsMax       *int     `json:"stars_max"`
	Topics         []string `json:"topics"`
	License        string   `json:"license"`
	GoodFirstIssue bool     `json:"good_first_issue"`
	HelpWanted     bool     `json:"help_wanted"`
	UpdatedAfter   string   `json:"updated_after"`
	CreatedAfter   string   `json:"created_after"`
	IncludeForks   bool     `json:"include_forks"`
	Archived       bool     `json:"archived"`
	Sort           string   `json:"sort"`
	Order          string   `json:"order"`
	Limit          int      `json:"limit"`
	Page           int      `json:"page"`
}

func (m ManualRequest) filters() filter.Filters {
	f := filter.Filters{
		Language:        m.Language,
		Topics:          m.Topics,
		License:         m.License,
		GoodFirstIssue:  m.GoodFirstIssue,
		HelpWanted:      m.HelpWanted,
		UpdatedAfter:    m.UpdatedAfter,
		CreatedAfter:    m.CreatedAfter,
		IncludeForks:    m.IncludeForks,
		IncludeArchived: m.Archived,
		Sort:            m.Sort,
		Order:           m.Order,
		Limit:           m.Limit,
		Page:            m.Page,
	}
	if m.StarsMin != nil || m.StarsMax != nil {
		f.Stars = &filter.StarsRange{Min: m.StarsMin, Max: m.StarsMax}
	}
	return f
}

// NLPSearchHandler serves POST /api/search/nlp: free text in, search
// results out.
func NLPSearchHandler(svc *search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
			return
		}

		var req NLPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			http.Error(w, "query is required", http.StatusBadRequest)
			return
		}

		result, err := svc.SearchNatural(r.Context(), req.Query, req.Page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, result)
	}
}

// ManualSearchHandler serves POST /api/search/manual: explicit filters in,
// search results out.
func ManualSearchHandler(svc *search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ManualRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		result, err := svc.SearchManual(r.Context(), req.filters())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, result)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *filter.ValidationError
	if errors.As(err, &vErr) {
		http.Error(w, vErr.Error(), http.StatusBadRequest)
		return
	}

	var rejected *search.ProviderRejectedError
	if errors.As(err, &rejected) {
		http.Error(w, fmt.Sprintf("GitHub rejected the search (%d): %s", rejected.StatusCode, rejected.Message), http.StatusBadGateway)
		return
	}

	var unavailable *search.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		http.Error(w, "GitHub unreachable: "+unavailable.Error(), http.StatusServiceUnavailable)
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
