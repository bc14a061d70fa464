package metrics

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/core/factory"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/infra/logger"
)

type influxConf struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

func init() {
	must(coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	}))
	must(coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSink()
	}))
	must(coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c influxConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, fmt.Errorf("decode influx conf: %w", err)
		}
		if c.URL == "" {
			return nil, fmt.Errorf("influx conf: url is required")
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket, logger.New("influx-sink")), nil
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
