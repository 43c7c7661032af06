package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
	"github.com/imkarma/pulse/internal/metrics"
)

var (
	metricSprint   string
	metricCapacity float64
)

var metricCmd = &cobra.Command{
	Use:   "metric <name>",
	Short: "Compute a single metric",
	Long: "Compute a named metric. Available metrics:\n  " +
		strings.Join(metrics.Names(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runMetric,
}

func init() {
	metricCmd.Flags().StringVar(&metricSprint, "sprint", "", "sprint id (required for per-sprint metrics)")
	metricCmd.Flags().Float64Var(&metricCapacity, "capacity", 0, "declared team capacity in hours (capacity_utilization)")
}

func runMetric(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	name := args[0]
	capacity := metricCapacity
	if capacity == 0 && metricSprint != "" {
		// Fall back to the capacity declared in config for this sprint.
		capacity = cfg.Capacities[metricSprint]
	}

	resp, err := eng.Do(engine.Request{
		Kind:   engine.KindMetric,
		Metric: name,
		Sprint: metricSprint,
		Params: metrics.Params{Sprint: metricSprint, Capacity: capacity},
	})
	if err != nil {
		return err
	}

	if resp.Metric.Undefined {
		fmt.Printf("%s: %sN/A%s %s(no data to define it; value 0 by policy)%s\n",
			name, colorYellow, colorReset, colorDim, colorReset)
		return nil
	}
	fmt.Printf("%s: %s%.4g%s\n", name, colorBold, resp.Metric.Value, colorReset)
	return nil
}
