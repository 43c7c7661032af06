package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
)

var workloadSprint string

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Per-assignee workload and balance score",
	RunE:  runWorkload,
}

func init() {
	workloadCmd.Flags().StringVar(&workloadSprint, "sprint", "", "restrict to one sprint")
}

func runWorkload(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	resp, err := eng.Do(engine.Request{Kind: engine.KindDistribution, Sprint: workloadSprint})
	if err != nil {
		return err
	}

	d := resp.Distribution
	fmt.Printf("%s%-20s %8s %8s %6s%s\n", colorBold, "ASSIGNEE", "POINTS", "HOURS", "ITEMS", colorReset)
	for _, a := range d.Assignees {
		fmt.Printf("%-20s %8.1f %8.1f %6d\n", truncate(a.Assignee, 20), a.Points, a.Hours, a.Items)
	}
	fmt.Printf("\nbalance score: %s%.1f / 100%s %s\n",
		colorBold, d.Balance, colorReset, indicator(d.Balance >= 60))
	return nil
}
