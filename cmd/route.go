package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/routing"
	"github.com/kilianp07/dispatchsim/infra/ingest"
	"github.com/kilianp07/dispatchsim/infra/logger"
)

var (
	routeFrom     string
	routeTo       string
	routeStrategy string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Estimate travel time between two locations",
	RunE:  runRoute,
}

func init() {
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "source location")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "destination location")
	routeCmd.Flags().StringVar(&routeStrategy, "strategy", routing.StrategyDijkstra, "routing strategy")
	if err := routeCmd.MarkFlagRequired("from"); err != nil {
		panic(err)
	}
	if err := routeCmd.MarkFlagRequired("to"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	g, err := ingest.LoadNetwork(cfg.Inputs.Network, logger.New("ingest"))
	if err != nil {
		return fmt.Errorf("load network: %w", err)
	}
	est, err := routing.NewEstimator(g, factory.ModuleConfig{Type: routeStrategy})
	if err != nil {
		return err
	}
	d, err := est.TravelTime(routeFrom, routeTo)
	if err != nil {
		return err
	}
	if routing.Unreachable(d) {
		return fmt.Errorf("no route from %s to %s", routeFrom, routeTo)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %.2f\n", routeFrom, routeTo, d)
	return nil
}
