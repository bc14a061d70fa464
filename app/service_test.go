package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/fleetstatus"
	"github.com/kilianp07/dispatchsim/core/routing"
)

func writeInput(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testConfig(t *testing.T, strategy string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	network := writeInput(t, dir, "location_network.csv",
		"Start,End,Travel Time,Traffic Delay\nA,B,4,1\nB,A,4,1\nB,C,3,0\nC,B,3,0\n")
	priorities := writeInput(t, dir, "call_priority.csv",
		"Call Type,Priority\nCardiac Arrest,1\nFall,3\n")
	fleet := writeInput(t, dir, "ambulance.csv",
		"Ambulance Number,Staging Location\nV1,A\nV2,C\n")
	calls := writeInput(t, dir, "calls.csv",
		"Call ID,Location,Call Type\n1,B,Fall\n2,C,Cardiac Arrest\n3,Z,Fall\n")

	cfg := &config.Config{}
	cfg.Inputs = config.InputsConfig{Network: network, Priorities: priorities, Fleet: fleet, Calls: calls}
	cfg.Routing = factory.ModuleConfig{Type: strategy}
	cfg.Logging = config.LoggingConfig{Backend: "none"}
	cfg.Output.CSVPath = filepath.Join(dir, "dispatch.csv")
	cfg.Output.JSONPath = filepath.Join(dir, "dispatch.json")
	cfg.Output.UnservedPath = filepath.Join(dir, "unserved.csv")
	return cfg
}

func TestServiceRun(t *testing.T) {
	for _, strategy := range []string{routing.StrategyDijkstra, routing.StrategyFloydWarshall} {
		t.Run(strategy, func(t *testing.T) {
			cfg := testConfig(t, strategy)
			svc, err := New(cfg)
			if err != nil {
				t.Fatalf("new service: %v", err)
			}
			defer func() {
				if err := svc.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()
			if err := svc.Run(context.Background()); err != nil {
				t.Fatalf("run: %v", err)
			}

			data, err := os.ReadFile(cfg.Output.CSVPath)
			if err != nil {
				t.Fatalf("read csv: %v", err)
			}
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if len(lines) != 3 {
				t.Fatalf("expected header plus 2 records, got %d lines:\n%s", len(lines), data)
			}
			// Priority order: call 2 (Cardiac Arrest) before call 1 (Fall).
			if !strings.HasPrefix(lines[1], "2,Cardiac Arrest,C,V2,0.00") {
				t.Fatalf("unexpected first record %q", lines[1])
			}
			if !strings.HasPrefix(lines[2], "1,Fall,B,V2,3.00") {
				t.Fatalf("unexpected second record %q", lines[2])
			}

			unserved, err := os.ReadFile(cfg.Output.UnservedPath)
			if err != nil {
				t.Fatalf("read unserved: %v", err)
			}
			if !strings.Contains(string(unserved), "3,Fall,Z,3") {
				t.Fatalf("expected call 3 unserved, got:\n%s", unserved)
			}

			_, status := svc.Stores()
			statuses := status.List(fleetstatus.Filter{})
			if len(statuses) != 2 {
				t.Fatalf("expected 2 vehicles in status store, got %d", len(statuses))
			}
		})
	}
}

func TestServiceRunMissingInput(t *testing.T) {
	cfg := testConfig(t, routing.StrategyDijkstra)
	cfg.Inputs.Calls = filepath.Join(t.TempDir(), "missing.csv")
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer svc.Close()
	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing calls file")
	}
}
