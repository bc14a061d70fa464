package config

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/infra/auth"
	trafficfactory "github.com/kilianp07/dispatchsim/infra/traffic/factory"
)

// TrafficConfig gates live traffic delay retrieval. When enabled, fetched
// delays replace the Traffic Delay column of the network file per segment.
type TrafficConfig struct {
	Enabled  bool      `json:"enabled"`
	Provider string    `json:"provider"`
	Auth     auth.Conf `json:"auth"`
	// WindowHours bounds the observation window ending now.
	WindowHours int `json:"window_hours"`
}

// SetDefaults applies sane defaults.
func (c *TrafficConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = trafficfactory.IDCityFeed
	}
}

// Window returns the observation window in hours.
func (c TrafficConfig) Window() int {
	if c.WindowHours <= 0 {
		return 24
	}
	return c.WindowHours
}

// Validate checks mandatory fields when the feed is enabled.
func (c TrafficConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("traffic.auth: %w", err)
	}
	return nil
}
