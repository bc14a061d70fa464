package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/routing"
)

type Config struct {
	Inputs  InputsConfig         `json:"inputs"`
	Routing factory.ModuleConfig `json:"routing"`
	Output  OutputConfig         `json:"output"`
	Metrics metrics.Config       `json:"metrics"`
	Logging LoggingConfig        `json:"logging"`
	Feed    FeedConfig           `json:"feed"`
	Traffic TrafficConfig        `json:"traffic"`
	API     APIConfig            `json:"api"`
	Sentry  SentryConfig         `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if cfg.Routing.Type == "" {
		cfg.Routing.Type = routing.StrategyDijkstra
	}
	cfg.Logging.SetDefaults()
	cfg.API.SetDefaults()
	cfg.Traffic.SetDefaults()
	if err := cfg.Inputs.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Traffic.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
