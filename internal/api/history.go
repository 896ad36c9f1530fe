package api

import (
	"encoding/json"
	"net/http"

	"github-repo-search/internal/elastic"
)

type HistoryRequest struct {
	Query string `json:"query"`
	Top   int    `json:"limit"`
}

// HistorySearchHandler serves POST /api/search/history: full-text lookup
// over repositories returned by earlier searches. Requires the Elasticsearch
// recorder to be configured.
func HistorySearchHandler(es *elastic.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
			return
		}
		if es == nil {
			http.Error(w, "history index not configured", http.StatusNotImplemented)
			return
		}

		var req HistoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Top <= 0 {
			req.Top = 10
		}

		results, err := es.SearchHistory(r.Context(), req.Query, req.Top)
		if err != nil {
			http.Error(w, "Search failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, map[string]interface{}{
			"result": results,
		})
	}
}
