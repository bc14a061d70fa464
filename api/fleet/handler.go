// Package fleet exposes per-vehicle dispatch state over HTTP.
package fleet

import (
	"encoding/json"
	"net/http"

	"github.com/kilianp07/dispatchsim/core/fleetstatus"
)

// NewStatusHandler returns an HTTP handler exposing fleet status data via
// GET /api/fleet/status.
func NewStatusHandler(store fleetstatus.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f := fleetstatus.Filter{
			Location: r.URL.Query().Get("location"),
			CallType: r.URL.Query().Get("call_type"),
		}
		entries := store.List(f)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
