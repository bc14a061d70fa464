package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/jobs/report"
)

var (
	reportVehicle  string
	reportCallType string
	reportSince    time.Duration
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate persisted dispatch records into KPIs",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportVehicle, "vehicle", "", "only this vehicle")
	reportCmd.Flags().StringVar(&reportCallType, "call-type", "", "only this call type")
	reportCmd.Flags().DurationVar(&reportSince, "since", 0, "only records newer than this, e.g. 24h")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := logging.NewStore(cfg.Logging.ModuleConfig())
	if err != nil {
		return fmt.Errorf("record store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.New("report").Errorf("store close: %v", err)
		}
	}()

	q := logging.LogQuery{VehicleID: reportVehicle, CallType: reportCallType}
	if reportSince > 0 {
		q.Start = time.Now().Add(-reportSince)
	}
	sum, err := report.Build(cmd.Context(), store, q)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}
