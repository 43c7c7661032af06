package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/metrics"
	"github.com/imkarma/pulse/internal/query"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dataset overview with per-sprint totals",
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	stats := eng.Stats()
	fmt.Printf("%s%d tickets%s across %s%d sprints%s\n\n",
		colorBold, stats.TicketsLoaded, colorReset,
		colorBold, stats.SprintsKnown, colorReset)

	byType, err := query.GroupBy(eng.Store().All(), []string{"type"})
	if err != nil {
		return err
	}
	fmt.Printf("%sBy type:%s ", colorDim, colorReset)
	for i, g := range byType.Groups {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%s %d", g.Label(), len(g.View))
	}
	fmt.Println()

	byStatus, err := query.GroupBy(eng.Store().All(), []string{"status"})
	if err != nil {
		return err
	}
	fmt.Printf("%sBy status:%s ", colorDim, colorReset)
	for i, g := range byStatus.Groups {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%s %d", g.Label(), len(g.View))
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("%s%-12s %6s %8s %10s %11s %6s %10s%s\n",
		colorBold, "SPRINT", "ITEMS", "PLANNED", "COMPLETED", "COMPLETION", "BUGS", "SPILLOVER", colorReset)
	for _, id := range eng.Store().Sprints() {
		s, err := metrics.SummarizeSprint(eng.Store(), id)
		if err != nil {
			return err
		}
		completion := "N/A"
		if s.PlannedPoints > 0 {
			completion = fmt.Sprintf("%.1f%%", 100*s.CompletedPoints/s.PlannedPoints)
		}
		fmt.Printf("%-12s %6d %8.1f %10.1f %11s %6d %10d\n",
			truncate(id, 12), s.TotalItems, s.PlannedPoints, s.CompletedPoints,
			completion, s.ByType["Bug"], s.Spillovers)
	}
	return nil
}
