package config

import "fmt"

// InputsConfig points at the four CSV files a run consumes.
type InputsConfig struct {
	// Network is the road segment file (Start, End, Travel Time, Traffic Delay).
	Network string `json:"network"`
	// Priorities maps call types to priorities (Call Type, Priority).
	Priorities string `json:"priorities"`
	// Fleet lists staged ambulances (Ambulance Number, Staging Location).
	Fleet string `json:"fleet"`
	// Calls is the incident list (Call ID, Location, Call Type).
	Calls string `json:"calls"`
}

// Validate checks that every input file is configured.
func (c InputsConfig) Validate() error {
	if c.Network == "" {
		return fmt.Errorf("inputs.network is required")
	}
	if c.Priorities == "" {
		return fmt.Errorf("inputs.priorities is required")
	}
	if c.Fleet == "" {
		return fmt.Errorf("inputs.fleet is required")
	}
	if c.Calls == "" {
		return fmt.Errorf("inputs.calls is required")
	}
	return nil
}
