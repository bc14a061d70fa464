package metrics

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/dispatchsim/core/logger"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
)

// InfluxSink pushes dispatch activity to an InfluxDB bucket. Writes are
// blocking with a short timeout so a slow backend cannot stall a run for
// long.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink builds a sink for the given server. url may be a bare host or
// a full write endpoint; the write path suffix is stripped either way.
func NewInfluxSink(url, token, org, bucket string, log logger.Logger) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	opts := influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second})
	client := influxdb2.NewClientWithOptions(base, token, opts)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      log,
	}
}

// NewInfluxSinkWithFallback checks the server health before committing to
// InfluxDB. When the server is unreachable or unhealthy it returns a
// NopSink so a run never fails because the metrics backend is down.
func NewInfluxSinkWithFallback(url, token, org, bucket string, log logger.Logger) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket, log)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health == nil || health.Status != "pass" {
		log.Warnf("influx unavailable at %s, metrics disabled: %v", url, err)
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordDispatch implements coremetrics.MetricsSink.
func (s *InfluxSink) RecordDispatch(results []coremetrics.DispatchResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(results))
	for _, r := range results {
		ts := r.Time
		if ts.IsZero() {
			ts = time.Now()
		}
		p := write.NewPointWithMeasurement("dispatch_record").
			AddTag("vehicle_id", r.Record.VehicleID).
			AddTag("call_type", r.Record.CallType).
			AddField("call_id", r.Record.CallID).
			AddField("travel_time", r.Record.TravelTime).
			AddField("priority", r.Priority).
			AddField("queries", r.Queries).
			AddField("selection_ms", round3(float64(r.Selection)/float64(time.Millisecond))).
			SetTime(ts)
		points = append(points, p)
	}
	if err := s.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("write dispatch points: %w", err)
	}
	return nil
}

// RecordUnserved implements coremetrics.UnservedRecorder.
func (s *InfluxSink) RecordUnserved(ev coremetrics.UnservedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("unserved_call").
		AddTag("call_type", ev.Call.Type).
		AddField("call_id", ev.Call.ID).
		AddField("reason", ev.Reason).
		SetTime(ts)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("write unserved point: %w", err)
	}
	return nil
}

// RecordRun implements coremetrics.RunRecorder.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("dispatch_run").
		AddTag("strategy", ev.Strategy).
		AddField("calls", ev.Calls).
		AddField("dispatched", ev.Dispatched).
		AddField("unserved", ev.Unserved).
		AddField("queries", ev.Queries).
		AddField("table_build_ms", round3(float64(ev.TableBuild)/float64(time.Millisecond))).
		AddField("elapsed_ms", round3(float64(ev.Elapsed)/float64(time.Millisecond))).
		SetTime(ts)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("write run point: %w", err)
	}
	return nil
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
