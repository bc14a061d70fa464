// Package api assembles the read-only HTTP surface: dispatch records, fleet
// status and Prometheus metrics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/dispatchsim/api/fleet"
	"github.com/kilianp07/dispatchsim/api/records"
	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	"github.com/kilianp07/dispatchsim/core/fleetstatus"
	"github.com/kilianp07/dispatchsim/core/logger"
)

// NewMux mounts the API handlers on a dedicated ServeMux.
func NewMux(recordStore logging.RecordStore, statusStore fleetstatus.Store, token string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/records", records.NewLogHandler(recordStore, token))
	mux.Handle("/api/fleet/status", fleet.NewStatusHandler(statusStore))
	mux.Handle("/api/fleet/", fleet.NewKPIHandler(statusStore))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartServer serves the API on addr until the context is canceled.
func StartServer(ctx context.Context, addr string, recordStore logging.RecordStore, statusStore fleetstatus.Store, token string, log logger.Logger) error {
	srv := &http.Server{Addr: addr, Handler: NewMux(recordStore, statusStore, token)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("api server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
