package cli

import (
	"fmt"
	"os"

	"github.com/imkarma/pulse/internal/config"
	"github.com/imkarma/pulse/internal/engine"
	"github.com/imkarma/pulse/internal/loader"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// loadConfig resolves the effective configuration: the --config flag,
// then pulse.yaml in the working directory, then defaults. The --data
// flag overrides the configured data source.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultFile
	}

	var cfg *config.Config
	if _, err := os.Stat(path); err == nil {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else if flagConfig != "" {
		return nil, fmt.Errorf("config file %s not found", flagConfig)
	} else {
		cfg = config.DefaultConfig()
	}

	if flagData != "" {
		cfg.Data.Path = flagData
		cfg.Data.Format = ""
	}
	if cfg.Data.Path == "" {
		return nil, fmt.Errorf("no data source configured. Run: pulse init, or pass --data")
	}
	return cfg, nil
}

// loadEngine reads the configured data source into a fresh snapshot.
// Each CLI invocation works against exactly one snapshot.
func loadEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	records, err := loader.Read(cfg.Data.Path, cfg.DataFormat())
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.New(records, cfg.Health)
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}

// pct formats a 0-100 value, or "N/A" when the metric was undefined.
func pct(value float64, undefined bool) string {
	if undefined {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", value)
}

// indicator colors a value green or red against a threshold.
func indicator(good bool) string {
	if good {
		return colorGreen + "●" + colorReset
	}
	return colorRed + "●" + colorReset
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 1 || len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}
