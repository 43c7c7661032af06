package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/engine"
)

var compareSprints string

var compareCmd = &cobra.Command{
	Use:   "compare <metric>",
	Short: "Compare a metric across sprints, with ranking",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareSprints, "sprints", "", "comma-separated sprint ids (default: all, in data order)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	sprints := splitSprints(compareSprints, eng)

	resp, err := eng.Do(engine.Request{
		Kind:    engine.KindCompare,
		Metric:  args[0],
		Sprints: sprints,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s%-14s %12s%s\n", colorBold, "SPRINT", strings.ToUpper(args[0]), colorReset)
	for _, sv := range resp.Comparison {
		fmt.Printf("%-14s %12.2f\n", truncate(sv.SprintID, 14), sv.Value)
	}

	fmt.Printf("\n%sRanking:%s ", colorDim, colorReset)
	names := make([]string, len(resp.Ranking))
	for i, sv := range resp.Ranking {
		names[i] = sv.SprintID
	}
	fmt.Println(strings.Join(names, " > "))
	return nil
}

// splitSprints parses the --sprints flag, falling back to every sprint
// in data order.
func splitSprints(flag string, eng *engine.Engine) []string {
	if flag == "" {
		return eng.Store().Sprints()
	}
	parts := strings.Split(flag, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
