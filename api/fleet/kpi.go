package fleet

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kilianp07/dispatchsim/core/fleetstatus"
)

// NewKPIHandler exposes per-vehicle dispatch KPIs via GET /api/fleet/{id}/kpis.
func NewKPIHandler(store fleetstatus.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/api/fleet/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[1] != "kpis" {
			http.NotFound(w, r)
			return
		}
		id := parts[0]
		var st fleetstatus.Status
		found := false
		for _, entry := range store.List(fleetstatus.Filter{}) {
			if entry.VehicleID == id {
				st = entry
				found = true
				break
			}
		}
		if !found {
			http.NotFound(w, r)
			return
		}
		type out struct {
			VehicleID       string  `json:"vehicle_id"`
			Assignments     int     `json:"assignments"`
			TotalTravelTime float64 `json:"total_travel_time"`
			MeanTravelTime  float64 `json:"mean_travel_time"`
		}
		kpi := out{
			VehicleID:       st.VehicleID,
			Assignments:     st.Assignments,
			TotalTravelTime: st.TotalTravelTime,
		}
		if st.Assignments > 0 {
			kpi.MeanTravelTime = st.TotalTravelTime / float64(st.Assignments)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(kpi)
	})
}
