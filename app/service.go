package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kilianp07/dispatchsim/api"
	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	corefeed "github.com/kilianp07/dispatchsim/core/feed"
	"github.com/kilianp07/dispatchsim/core/fleetstatus"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/model"
	coremon "github.com/kilianp07/dispatchsim/core/monitoring"
	"github.com/kilianp07/dispatchsim/core/routing"
	"github.com/kilianp07/dispatchsim/infra/auth"
	"github.com/kilianp07/dispatchsim/infra/feed"
	"github.com/kilianp07/dispatchsim/infra/ingest"
	"github.com/kilianp07/dispatchsim/infra/logger"
	// Registers the built-in metrics sinks.
	_ "github.com/kilianp07/dispatchsim/infra/metrics"
	"github.com/kilianp07/dispatchsim/infra/monitoring"
	"github.com/kilianp07/dispatchsim/infra/traffic/clients/cityfeed"
	trafficfactory "github.com/kilianp07/dispatchsim/infra/traffic/factory"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
	"github.com/kilianp07/dispatchsim/pkg/export"
)

// Service orchestrates one dispatch run from configuration: ingestion,
// routing, scheduling, persistence and the optional feed and API surfaces.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	bus    eventbus.EventBus
	sched  *dispatch.Scheduler
	sink   coremetrics.MetricsSink
	store  logging.RecordStore
	status fleetstatus.Store
	pub    corefeed.Publisher
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}
	store, err := logging.NewStore(cfg.Logging.ModuleConfig())
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}

	bus := eventbus.New()
	sched, err := dispatch.NewScheduler(cfg.Routing.Type, logger.New("scheduler"), sink, bus)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	sched.SetRecordStore(store)
	status := fleetstatus.NewMemoryStore()
	sched.SetStatusStore(status)

	svc := &Service{cfg: cfg, log: logg, bus: bus, sched: sched, sink: sink, store: store, status: status}
	if cfg.Feed.Enabled {
		pub, err := feed.NewPahoPublisher(cfg.Feed.MQTT)
		if err != nil {
			return nil, fmt.Errorf("feed publisher: %w", err)
		}
		svc.pub = pub
	}
	return svc, nil
}

// Run executes the dispatch pipeline and blocks until it completes or the
// context is cancelled. The API server, when enabled, keeps serving until
// cancellation.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.API.Enabled {
		go func() {
			if err := api.StartServer(ctx, s.cfg.API.Addr, s.store, s.status, s.cfg.API.Token, logger.New("api")); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	if s.pub != nil {
		feed.StartBridge(ctx, s.bus, s.pub, logger.New("feed"))
	}

	var delays map[ingest.Segment]float64
	if s.cfg.Traffic.Enabled {
		var err error
		delays, err = s.fetchDelays()
		if err != nil {
			// A stale Traffic Delay column beats an aborted run.
			s.log.Warnf("live traffic unavailable, using file delays: %v", err)
			coremon.CaptureException(err, map[string]string{"component": "traffic"})
		}
	}

	ingLog := logger.New("ingest")
	g, err := ingest.LoadNetworkWithDelays(s.cfg.Inputs.Network, delays, ingLog)
	if err != nil {
		return fmt.Errorf("load network: %w", err)
	}
	priorities, err := ingest.LoadPriorities(s.cfg.Inputs.Priorities, ingLog)
	if err != nil {
		return fmt.Errorf("load priorities: %w", err)
	}
	fleet, err := ingest.LoadFleet(s.cfg.Inputs.Fleet, ingLog)
	if err != nil {
		return fmt.Errorf("load fleet: %w", err)
	}
	calls, err := ingest.LoadCalls(s.cfg.Inputs.Calls, priorities, ingLog)
	if err != nil {
		return fmt.Errorf("load calls: %w", err)
	}
	s.log.Infof("loaded %d vertices, %d vehicles, %d calls", g.Order(), fleet.Len(), len(calls))

	buildStart := time.Now()
	est, err := routing.NewEstimator(g, s.cfg.Routing)
	if err != nil {
		return fmt.Errorf("routing estimator: %w", err)
	}
	build := time.Since(buildStart)
	s.sched.SetTableBuild(build)
	if s.cfg.Routing.Type == routing.StrategyFloydWarshall {
		s.log.Infof("travel time table built in %s", build)
	}

	startProgress(ctx, s.bus, len(calls), logger.New("progress"))

	queue := dispatch.NewCallQueue(calls...)
	res, err := s.sched.Run(ctx, queue, fleet, est)
	if err != nil {
		return fmt.Errorf("dispatch run: %w", err)
	}

	if err := s.writeOutputs(res); err != nil {
		return err
	}
	return nil
}

// fetchDelays pulls live traffic delays for the configured window and keys
// them by road segment.
func (s *Service) fetchDelays() (map[ingest.Segment]float64, error) {
	client, err := trafficfactory.NewTrafficClient(s.cfg.Traffic.Provider)
	if err != nil {
		return nil, err
	}
	authClient := auth.NewClientCred(s.cfg.Traffic.Auth)
	end := time.Now()
	start := end.Add(-time.Duration(s.cfg.Traffic.Window()) * time.Hour)
	resp, err := client.Fetch(authClient, cityfeed.WithStartDate(start), cityfeed.WithEndDate(end))
	if err != nil {
		return nil, err
	}
	delays := make(map[ingest.Segment]float64)
	for _, d := range resp.Delays() {
		delays[ingest.Segment{Start: d.Start, End: d.End}] = d.Value
	}
	s.log.Infof("applied live delays for %d segments", len(delays))
	return delays, nil
}

// writeOutputs persists the run result to the configured files.
func (s *Service) writeOutputs(res dispatch.Result) error {
	out := s.cfg.Output
	if out.CSVPath != "" {
		if err := writeFile(out.CSVPath, func(f *os.File) error {
			return export.WriteCSV(f, res.Records)
		}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		s.log.Infof("wrote %d records to %s", len(res.Records), out.CSVPath)
	}
	if out.JSONPath != "" {
		if err := writeFile(out.JSONPath, func(f *os.File) error {
			return export.WriteJSON(f, res.Records)
		}); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		s.log.Infof("wrote %d records to %s", len(res.Records), out.JSONPath)
	}
	if out.UnservedPath != "" && len(res.Unserved) > 0 {
		calls := make([]model.Call, len(res.Unserved))
		for i, u := range res.Unserved {
			calls[i] = u.Call
		}
		if err := writeFile(out.UnservedPath, func(f *os.File) error {
			return export.WriteUnservedCSV(f, calls)
		}); err != nil {
			return fmt.Errorf("write unserved: %w", err)
		}
		s.log.Infof("wrote %d unserved calls to %s", len(calls), out.UnservedPath)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Stores exposes the record and status stores to observers started outside
// the service, such as tests.
func (s *Service) Stores() (logging.RecordStore, fleetstatus.Store) { return s.store, s.status }

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return s.sched.Close()
}
