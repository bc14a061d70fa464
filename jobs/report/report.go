// Package report aggregates persisted dispatch records into per-vehicle and
// per-call-type performance figures.
package report

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
)

// VehicleKPI summarizes the served calls of one vehicle.
type VehicleKPI struct {
	VehicleID   string  `json:"vehicle_id"`
	Dispatched  int     `json:"dispatched"`
	TotalTravel float64 `json:"total_travel_time"`
	MeanTravel  float64 `json:"mean_travel_time"`
	P95Travel   float64 `json:"p95_travel_time"`
}

// TypeKPI summarizes the outcome per call type.
type TypeKPI struct {
	CallType   string  `json:"call_type"`
	Dispatched int     `json:"dispatched"`
	Unserved   int     `json:"unserved"`
	MeanTravel float64 `json:"mean_travel_time"`
}

// Summary is the aggregation of every record matched by the query.
type Summary struct {
	Calls      int          `json:"calls"`
	Dispatched int          `json:"dispatched"`
	Unserved   int          `json:"unserved"`
	Vehicles   []VehicleKPI `json:"vehicles"`
	Types      []TypeKPI    `json:"types"`
}

// Build reads records matching q from the store and rolls them up. Vehicles
// and types are sorted by identifier so output is stable.
func Build(ctx context.Context, store logging.RecordStore, q logging.LogQuery) (Summary, error) {
	recs, err := store.Query(ctx, q)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	byVehicle := make(map[string][]float64)
	type typeAgg struct {
		travels  []float64
		unserved int
	}
	byType := make(map[string]*typeAgg)

	for _, rec := range recs {
		sum.Calls++
		agg := byType[rec.Record.CallType]
		if agg == nil {
			agg = &typeAgg{}
			byType[rec.Record.CallType] = agg
		}
		if rec.Unserved {
			sum.Unserved++
			agg.unserved++
			continue
		}
		sum.Dispatched++
		byVehicle[rec.Record.VehicleID] = append(byVehicle[rec.Record.VehicleID], rec.Record.TravelTime)
		agg.travels = append(agg.travels, rec.Record.TravelTime)
	}

	for id, travels := range byVehicle {
		sort.Float64s(travels)
		kpi := VehicleKPI{
			VehicleID:  id,
			Dispatched: len(travels),
			MeanTravel: stat.Mean(travels, nil),
			P95Travel:  stat.Quantile(0.95, stat.Empirical, travels, nil),
		}
		for _, tt := range travels {
			kpi.TotalTravel += tt
		}
		sum.Vehicles = append(sum.Vehicles, kpi)
	}
	sort.Slice(sum.Vehicles, func(i, j int) bool { return sum.Vehicles[i].VehicleID < sum.Vehicles[j].VehicleID })

	for ct, agg := range byType {
		kpi := TypeKPI{CallType: ct, Dispatched: len(agg.travels), Unserved: agg.unserved}
		if len(agg.travels) > 0 {
			kpi.MeanTravel = stat.Mean(agg.travels, nil)
		}
		sum.Types = append(sum.Types, kpi)
	}
	sort.Slice(sum.Types, func(i, j int) bool { return sum.Types[i].CallType < sum.Types[j].CallType })

	return sum, nil
}
