package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
)

var trendSprints string

var trendCmd = &cobra.Command{
	Use:   "trend <metric>",
	Short: "Fit a linear trend of a metric across sprints",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendSprints, "sprints", "", "comma-separated sprint ids (default: all, in data order)")
}

func runTrend(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	resp, err := eng.Do(engine.Request{
		Kind:    engine.KindTrend,
		Metric:  args[0],
		Sprints: splitSprints(trendSprints, eng),
	})
	if err != nil {
		return err
	}

	for _, sv := range resp.Comparison {
		fmt.Printf("%-14s %10.2f\n", truncate(sv.SprintID, 14), sv.Value)
	}

	fit := resp.Trend
	direction := "flat"
	switch {
	case fit.Slope > 0:
		direction = colorGreen + "rising" + colorReset
	case fit.Slope < 0:
		direction = colorRed + "falling" + colorReset
	}
	fmt.Printf("\ntrend: %s  %sslope %.3f per sprint, correlation %.3f%s\n",
		direction, colorDim, fit.Slope, fit.Correlation, colorReset)
	return nil
}
