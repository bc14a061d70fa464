package cmd

import "github.com/spf13/cobra"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Dispatch the configured call list",
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)
}
