package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/metrics"
	"github.com/imkarma/pulse/internal/ticket"
)

var bugsSprint string

var bugsCmd = &cobra.Command{
	Use:   "bugs",
	Short: "Bug quality breakdown",
	RunE:  runBugs,
}

func init() {
	bugsCmd.Flags().StringVar(&bugsSprint, "sprint", "", "restrict to one sprint")
}

func runBugs(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	view := eng.Store().All()
	if bugsSprint != "" {
		view, err = eng.Store().BySprint(bugsSprint)
		if err != nil {
			return err
		}
	}

	b := metrics.AnalyzeBugs(view)
	if b.Total == 0 {
		fmt.Printf("%sNo bugs.%s\n", colorGreen, colorReset)
		return nil
	}

	fmt.Printf("%s%d bugs%s — %d open, %d closed", colorBold, b.Total, colorReset, b.Open, b.Closed)
	if b.Critical > 0 {
		fmt.Printf(", %s%d critical%s", colorRed, b.Critical, colorReset)
	}
	fmt.Println()
	fmt.Printf("resolution rate: %s\n", pct(100*b.Resolution.Value, b.Resolution.Undefined))
	if b.AvgFixDays > 0 {
		fmt.Printf("avg fix time: %.1f days\n", b.AvgFixDays)
	}

	if len(b.BySeverity) > 0 {
		fmt.Printf("\n%sSeverity:%s ", colorDim, colorReset)
		first := true
		for _, sev := range []ticket.Severity{
			ticket.SeverityCritical, ticket.SeverityHigh,
			ticket.SeverityMedium, ticket.SeverityLow,
		} {
			if n := b.BySeverity[sev]; n > 0 {
				if !first {
					fmt.Print(", ")
				}
				fmt.Printf("%s %d", sev, n)
				first = false
			}
		}
		fmt.Println()
	}

	if len(b.ByArea) > 0 {
		areas := make([]string, 0, len(b.ByArea))
		for area := range b.ByArea {
			areas = append(areas, area)
		}
		sort.Slice(areas, func(i, j int) bool {
			if b.ByArea[areas[i]] != b.ByArea[areas[j]] {
				return b.ByArea[areas[i]] > b.ByArea[areas[j]]
			}
			return areas[i] < areas[j]
		})
		fmt.Printf("%sBy area:%s ", colorDim, colorReset)
		for i, area := range areas {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s %d", area, b.ByArea[area])
		}
		fmt.Println()
	}
	return nil
}
