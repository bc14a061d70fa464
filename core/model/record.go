package model

import "math"

// DispatchRecord is the decision binding one call to the selected vehicle.
// TravelTime carries the display precision of two decimal places; comparisons
// during selection happen on the unrounded values.
type DispatchRecord struct {
	CallID     int     `json:"call_id"`
	CallType   string  `json:"call_type"`
	Location   string  `json:"call_location"`
	VehicleID  string  `json:"selected_vehicle"`
	TravelTime float64 `json:"travel_time"`
}

// RoundTravelTime rounds v to two decimal places for display.
func RoundTravelTime(v float64) float64 {
	return math.Round(v*100) / 100
}
