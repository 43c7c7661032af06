package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Sprint analytics from your ticket data",
	Long:  "pulse — analytics over agile ticket exports.\nVelocity, completion, cycle time, bug quality, workload balance, and sprint health.",
}

// Flags shared by every data-reading command.
var (
	flagConfig string
	flagData   string
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default pulse.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "ticket data file (csv or sqlite), overrides config")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sprintsCmd)
	rootCmd.AddCommand(metricCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(bugsCmd)
	rootCmd.AddCommand(reportCmd)
}
