package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
	"github.com/imkarma/pulse/internal/query"
)

var (
	groupSprint string
	groupColumn string
	groupAgg    string
	groupFilter string
)

var groupCmd = &cobra.Command{
	Use:   "group <dimension[,dimension...]>",
	Short: "Group tickets and aggregate a numeric column",
	Long: `Group tickets by one or more dimensions and reduce a numeric
column per group:

  pulse group assignee --column story_points --agg sum
  pulse group sprint_id,type --agg count
  pulse group area --column dev_hours --agg mean --filter "type = Bug"`,
	Args: cobra.ExactArgs(1),
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().StringVar(&groupSprint, "sprint", "", "restrict to one sprint")
	groupCmd.Flags().StringVar(&groupColumn, "column", "story_points", "numeric column to aggregate")
	groupCmd.Flags().StringVar(&groupAgg, "agg", "sum", "aggregator: sum, mean, median, count, std, min, max")
	groupCmd.Flags().StringVar(&groupFilter, "filter", "", "filter expression applied before grouping")
}

func runGroup(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	pred, err := query.ParsePredicate(groupFilter)
	if err != nil {
		return err
	}

	dims := strings.Split(args[0], ",")
	for i := range dims {
		dims[i] = strings.TrimSpace(dims[i])
	}

	resp, err := eng.Do(engine.Request{
		Kind:       engine.KindAggregate,
		Sprint:     groupSprint,
		Predicate:  pred,
		Dimensions: dims,
	})
	if err != nil {
		return err
	}

	agg := query.Agg(groupAgg)
	fmt.Printf("%s%-28s %12s%s\n", colorBold, strings.Join(dims, " / "),
		fmt.Sprintf("%s(%s)", groupAgg, groupColumn), colorReset)
	for _, g := range resp.Grouped.Groups {
		val, err := query.Reduce(g.View, groupColumn, agg)
		if err != nil {
			return err
		}
		fmt.Printf("%-28s %12.2f\n", truncate(g.Label(), 28), val)
	}
	return nil
}
