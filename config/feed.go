package config

import "github.com/kilianp07/dispatchsim/infra/feed"

// FeedConfig gates the live MQTT feed of dispatch decisions.
type FeedConfig struct {
	Enabled bool        `json:"enabled"`
	MQTT    feed.Config `json:"mqtt"`
}
