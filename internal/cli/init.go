package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imkarma/pulse/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [data-file]",
	Short: "Create a pulse.yaml config in the current directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultFile)
	}

	cfg := config.DefaultConfig()
	if len(args) == 1 {
		cfg.Data.Path = args[0]
	}
	if err := config.Save(config.DefaultFile, cfg); err != nil {
		return err
	}

	fmt.Printf("%sCreated %s.%s", colorGreen, config.DefaultFile, colorReset)
	if cfg.Data.Path == "" {
		fmt.Printf(" Set %sdata.path%s to your ticket export.", colorCyan, colorReset)
	}
	fmt.Println()
	return nil
}
