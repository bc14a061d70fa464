package logging

import "github.com/kilianp07/dispatchsim/core/factory"

var storeRegistry = factory.NewRegistry[RecordStore]()

// RegisterStore adds a record store factory identified by name.
func RegisterStore(name string, f factory.Factory[RecordStore]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates a RecordStore from the provided configuration. An empty
// type disables persistence.
func NewStore(cfg factory.ModuleConfig) (RecordStore, error) {
	if cfg.Type == "" || cfg.Type == "none" {
		return NopStore{}, nil
	}
	return storeRegistry.Create(cfg)
}

type fileConf struct {
	Path string `json:"path"`
}

type rotatingConf struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// init registers the built-in store backends.
func init() {
	_ = RegisterStore("jsonl", func(conf map[string]any) (RecordStore, error) {
		var c fileConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewJSONLStore(c.Path)
	})
	_ = RegisterStore("jsonl_rotating", func(conf map[string]any) (RecordStore, error) {
		c := rotatingConf{MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 7}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
	_ = RegisterStore("sqlite", func(conf map[string]any) (RecordStore, error) {
		var c fileConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}
