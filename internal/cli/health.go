package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
)

var healthCmd = &cobra.Command{
	Use:   "health <sprint>",
	Short: "Composite 0-100 health score for a sprint",
	Args:  cobra.ExactArgs(1),
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	resp, err := eng.Do(engine.Request{Kind: engine.KindHealth, Sprint: args[0]})
	if err != nil {
		return err
	}

	b := resp.Health
	w := cfg.Health.Weights
	fmt.Printf("%s%s — health %.1f / 100%s %s\n\n",
		colorBold, b.SprintID, b.Score, colorReset, indicator(b.Score >= 70))
	fmt.Printf("  completion      %6.1f  %s(weight %.2f)%s\n", b.Completion, colorDim, w.Completion, colorReset)
	fmt.Printf("  bug quality     %6.1f  %s(weight %.2f)%s\n", b.BugRatio, colorDim, w.BugRatio, colorReset)
	fmt.Printf("  spillover       %6.1f  %s(weight %.2f)%s\n", b.Spillover, colorDim, w.Spillover, colorReset)
	fmt.Printf("  cycle time      %6.1f  %s(weight %.2f, target %.1f days)%s\n",
		b.CycleTime, colorDim, w.CycleTime, cfg.Health.CycleTimeTargetDays, colorReset)
	return nil
}
