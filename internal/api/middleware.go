package api

import (
	"log"
	"net/http"

	"github.com/google/uuid"
)

// withRequestID tags every request with a fresh ID, echoed in the
// X-Request-ID header and the access log.
func withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		log.Printf("➡️  %s %s [%s]", r.Method, r.URL.Path, id)
		next(w, r)
	}
}

// withCORS applies the allow-all policy the frontend expects.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// Wrap applies the standard middleware chain to a handler.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return withCORS(withRequestID(next))
}
