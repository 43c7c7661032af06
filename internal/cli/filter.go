package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
	"github.com/imkarma/pulse/internal/query"
)

var filterSprint string

var filterCmd = &cobra.Command{
	Use:   "filter <expression>",
	Short: "List tickets matching a filter expression",
	Long: `List tickets matching a filter expression. Clauses join with "and";
the in operator separates values with "|":

  pulse filter "status = Done and story_points >= 5"
  pulse filter "type in Bug|Story and priority != Low"
  pulse filter "comments contains blocked"`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterSprint, "sprint", "", "restrict to one sprint")
}

func runFilter(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	pred, err := query.ParsePredicate(args[0])
	if err != nil {
		return err
	}

	resp, err := eng.Do(engine.Request{
		Kind:      engine.KindFilter,
		Sprint:    filterSprint,
		Predicate: pred,
	})
	if err != nil {
		return err
	}

	if len(resp.Tickets) == 0 {
		fmt.Printf("%sNo tickets match.%s\n", colorDim, colorReset)
		return nil
	}
	fmt.Printf("%s%-10s %-10s %-6s %-12s %-8s %6s  %s%s\n",
		colorBold, "TICKET", "SPRINT", "TYPE", "STATUS", "PRIORITY", "POINTS", "ASSIGNEE", colorReset)
	for _, t := range resp.Tickets {
		fmt.Printf("%-10s %-10s %-6s %-12s %-8s %6.1f  %s\n",
			truncate(t.ID, 10), truncate(t.SprintID, 10), t.Type, t.Status,
			t.Priority, t.StoryPoints, t.Assignee)
	}
	fmt.Printf("%s%d tickets%s\n", colorDim, len(resp.Tickets), colorReset)
	return nil
}
