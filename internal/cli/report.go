package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/report"
)

var (
	reportAll     bool
	reportOut     string
	reportWorkers int
)

var reportCmd = &cobra.Command{
	Use:   "report [sprint]",
	Short: "Write a markdown report for a sprint (or all sprints)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "report every sprint")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output directory (default from config)")
	reportCmd.Flags().IntVar(&reportWorkers, "workers", 4, "parallel renders with --all")
}

func runReport(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	dir := reportOut
	if dir == "" {
		dir = cfg.ReportDir()
	}

	if reportAll {
		failed := 0
		for _, o := range report.WriteAll(eng.Store(), dir, cfg.Health, reportWorkers) {
			if o.Err != nil {
				failed++
				fmt.Printf("%s%s: %v%s\n", colorRed, o.SprintID, o.Err, colorReset)
				continue
			}
			fmt.Printf("%s%s%s %s\n", colorGreen, o.SprintID, colorReset, o.Path)
		}
		if failed > 0 {
			return fmt.Errorf("%d reports failed", failed)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("pass a sprint id or --all")
	}
	path, err := report.Write(eng.Store(), args[0], dir, cfg.Health)
	if err != nil {
		return err
	}
	fmt.Printf("%sWrote%s %s\n", colorGreen, colorReset, path)
	return nil
}
