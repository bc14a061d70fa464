package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/dispatchsim/core/model"
)

type EdgeDef struct {
	Start        string  `yaml:"start"`
	End          string  `yaml:"end"`
	TravelTime   float64 `yaml:"travel_time"`
	TrafficDelay float64 `yaml:"traffic_delay"`
}

type VehicleDef struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"`
}

func (v VehicleDef) ToModel() model.Vehicle {
	return model.Vehicle{ID: v.ID, Location: v.Location}
}

type CallDef struct {
	ID       int    `yaml:"id"`
	Location string `yaml:"location"`
	CallType string `yaml:"call_type"`
}

type AssignmentDef struct {
	CallID     int     `yaml:"call_id"`
	VehicleID  string  `yaml:"vehicle_id"`
	TravelTime float64 `yaml:"travel_time,omitempty"`
}

type Expected struct {
	// Assignments pin the winning vehicle, and optionally the rounded
	// travel time, per call.
	Assignments []AssignmentDef `yaml:"assignments"`
	Unserved    int             `yaml:"unserved"`
	// Order lists call IDs in expected service order when it matters.
	Order []int `yaml:"order,omitempty"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Edges       []EdgeDef      `yaml:"edges"`
	Priorities  map[string]int `yaml:"priorities,omitempty"`
	Fleet       []VehicleDef   `yaml:"fleet"`
	Calls       []CallDef      `yaml:"calls"`
	Expected    Expected       `yaml:"expected"`
}

// BuildCalls resolves the scenario's call list against its priority table.
func (s *Scenario) BuildCalls() []model.Call {
	table := model.PriorityTable(s.Priorities)
	calls := make([]model.Call, len(s.Calls))
	for i, c := range s.Calls {
		calls[i] = model.Call{
			ID:       c.ID,
			Location: c.Location,
			Type:     c.CallType,
			Priority: table.PriorityFor(c.CallType),
		}
	}
	return calls
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
