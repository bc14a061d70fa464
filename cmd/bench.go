package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/gen"
	"github.com/kilianp07/dispatchsim/core/graph"
	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/model"
	"github.com/kilianp07/dispatchsim/core/routing"
	"github.com/kilianp07/dispatchsim/infra/ingest"
	"github.com/kilianp07/dispatchsim/infra/logger"
)

var (
	benchSynthetic bool
	benchVertices  int
	benchVehicles  int
	benchCalls     int
	benchSeed      int64
	benchHTML      string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare routing strategies on the same scenario",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().BoolVar(&benchSynthetic, "synthetic", false, "generate the scenario instead of reading configured inputs")
	benchCmd.Flags().IntVar(&benchVertices, "vertices", 200, "synthetic location count")
	benchCmd.Flags().IntVar(&benchVehicles, "vehicles", 20, "synthetic fleet size")
	benchCmd.Flags().IntVar(&benchCalls, "calls", 1000, "synthetic call count")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "synthetic scenario seed")
	benchCmd.Flags().StringVar(&benchHTML, "html", "", "write a latency comparison chart to this file")
	rootCmd.AddCommand(benchCmd)
}

// benchSink collects per-query latencies and the run summary for one
// strategy.
type benchSink struct {
	mu      sync.Mutex
	queryUS []float64
	run     coremetrics.RunEvent
}

func (b *benchSink) RecordDispatch([]coremetrics.DispatchResult) error { return nil }

func (b *benchSink) RecordQueryLatency(lats []coremetrics.QueryLatency) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range lats {
		b.queryUS = append(b.queryUS, float64(l.Latency.Nanoseconds())/1e3)
	}
	return nil
}

func (b *benchSink) RecordRun(ev coremetrics.RunEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.run = ev
	return nil
}

type benchReport struct {
	strategy string
	build    time.Duration
	sink     *benchSink
}

func runBench(cmd *cobra.Command, args []string) error {
	g, fleet, calls, err := benchScenario()
	if err != nil {
		return err
	}

	reports := make([]benchReport, 0, 2)
	for _, strategy := range []string{routing.StrategyDijkstra, routing.StrategyFloydWarshall} {
		rep, err := benchStrategy(cmd.Context(), strategy, g, fleet, calls)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	for _, rep := range reports {
		// Sort a copy: the chart below wants the chronological order.
		lats := append([]float64(nil), rep.sink.queryUS...)
		sort.Float64s(lats)
		mean, p99 := 0.0, 0.0
		if len(lats) > 0 {
			mean = stat.Mean(lats, nil)
			p99 = stat.Quantile(0.99, stat.Empirical, lats, nil)
		}
		run := rep.sink.run
		fmt.Fprintf(cmd.OutOrStdout(),
			"%-14s build=%-12s run=%-12s queries=%-7d mean=%.2fµs p99=%.2fµs dispatched=%d unserved=%d\n",
			rep.strategy, rep.build, run.Elapsed, run.Queries, mean, p99, run.Dispatched, run.Unserved)
	}

	if benchHTML != "" {
		html, err := latencyChartHTML(reports)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		if err := os.WriteFile(benchHTML, []byte(html), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote latency chart to %s\n", benchHTML)
	}
	return nil
}

// benchScenario loads the configured inputs or generates a synthetic set.
func benchScenario() (*graph.Graph, *model.Fleet, []model.Call, error) {
	if benchSynthetic {
		sc, err := gen.Generate(gen.Config{
			Vertices:  benchVertices,
			OutDegree: 3,
			Vehicles:  benchVehicles,
			Calls:     benchCalls,
			Seed:      benchSeed,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		g, err := sc.Graph()
		if err != nil {
			return nil, nil, nil, err
		}
		fleet := model.NewFleet()
		for _, v := range sc.Fleet {
			if err := fleet.Add(v); err != nil {
				return nil, nil, nil, err
			}
		}
		return g, fleet, sc.Calls, nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New("ingest")
	g, err := ingest.LoadNetwork(cfg.Inputs.Network, log)
	if err != nil {
		return nil, nil, nil, err
	}
	priorities, err := ingest.LoadPriorities(cfg.Inputs.Priorities, log)
	if err != nil {
		return nil, nil, nil, err
	}
	fleet, err := ingest.LoadFleet(cfg.Inputs.Fleet, log)
	if err != nil {
		return nil, nil, nil, err
	}
	calls, err := ingest.LoadCalls(cfg.Inputs.Calls, priorities, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, fleet, calls, nil
}

func benchStrategy(ctx context.Context, strategy string, g *graph.Graph, fleet *model.Fleet, calls []model.Call) (benchReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sink := &benchSink{}
	sched, err := dispatch.NewScheduler(strategy, logger.New("bench"), sink, nil)
	if err != nil {
		return benchReport{}, err
	}

	buildStart := time.Now()
	est, err := routing.NewEstimator(g, factory.ModuleConfig{Type: strategy})
	if err != nil {
		return benchReport{}, err
	}
	build := time.Since(buildStart)
	sched.SetTableBuild(build)

	queue := dispatch.NewCallQueue(calls...)
	if _, err := sched.Run(ctx, queue, fleet, est); err != nil {
		return benchReport{}, err
	}
	return benchReport{strategy: strategy, build: build, sink: sink}, nil
}

// chartMaxPoints caps the series length so the HTML stays readable.
const chartMaxPoints = 1000

func latencyChartHTML(reports []benchReport) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Travel Time Query Latency"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Query"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latency (µs)"}),
	)

	var xAxis []string
	for _, rep := range reports {
		lats := rep.sink.queryUS
		step := 1
		if len(lats) > chartMaxPoints {
			step = len(lats) / chartMaxPoints
		}
		var yAxis []opts.LineData
		for i := 0; i < len(lats); i += step {
			yAxis = append(yAxis, opts.LineData{Value: lats[i]})
		}
		for len(xAxis) < len(yAxis) {
			xAxis = append(xAxis, fmt.Sprintf("%d", len(xAxis)*step))
		}
		line.AddSeries(rep.strategy, yAxis)
	}
	line.SetXAxis(xAxis)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
