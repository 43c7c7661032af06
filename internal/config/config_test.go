package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pulse.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `version: 1
data:
  path: data/tickets.csv
health:
  weights:
    completion: 0.5
    bug_ratio: 0.2
    spillover: 0.2
    cycle_time: 0.1
  cycle_time_target_days: 4
capacities:
  SPR-001: 120
report:
  dir: out
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Path != "data/tickets.csv" {
		t.Errorf("unexpected data path: %q", cfg.Data.Path)
	}
	if cfg.Health.Weights.Completion != 0.5 || cfg.Health.CycleTimeTargetDays != 4 {
		t.Errorf("unexpected health config: %+v", cfg.Health)
	}
	if cfg.Capacities["SPR-001"] != 120 {
		t.Errorf("unexpected capacities: %v", cfg.Capacities)
	}
	if cfg.ReportDir() != "out" {
		t.Errorf("unexpected report dir: %q", cfg.ReportDir())
	}
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `version: 1
data:
  path: data/tickets.csv
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Health.Weights.Completion != 0.4 {
		t.Errorf("expected default weights, got %+v", cfg.Health.Weights)
	}
	if cfg.Health.CycleTimeTargetDays != 3 {
		t.Errorf("expected default cycle-time target, got %v", cfg.Health.CycleTimeTargetDays)
	}
	if cfg.ReportDir() != "reports" {
		t.Errorf("expected default report dir, got %q", cfg.ReportDir())
	}
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `version: 1
health:
  weights:
    completion: 0.9
    bug_ratio: 0.9
    spillover: 0
    cycle_time: 0
  cycle_time_target_days: 3
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for weights not summing to 1")
	}
}

func TestLoad_RejectsBadCapacity(t *testing.T) {
	path := writeConfig(t, `version: 1
capacities:
  SPR-001: -5
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	path := writeConfig(t, `version: 1
data:
  path: data/tickets.xlsx
  format: xlsx
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoad_EnvOverridesDataPath(t *testing.T) {
	path := writeConfig(t, `version: 1
data:
  path: data/tickets.csv
`)
	t.Setenv("PULSE_DATA", "/tmp/other.db")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Path != "/tmp/other.db" {
		t.Errorf("expected env override, got %q", cfg.Data.Path)
	}
	if cfg.DataFormat() != "sqlite" {
		t.Errorf("expected sqlite inferred from .db, got %q", cfg.DataFormat())
	}
}

func TestDataFormat_Inference(t *testing.T) {
	cases := []struct {
		path, format, want string
	}{
		{"tickets.csv", "", "csv"},
		{"tickets.db", "", "sqlite"},
		{"tickets.sqlite3", "", "sqlite"},
		{"tickets.db", "csv", "csv"}, // explicit format wins
		{"noext", "", "csv"},
	}
	for _, tc := range cases {
		cfg := Config{Data: Data{Path: tc.path, Format: tc.format}}
		if got := cfg.DataFormat(); got != tc.want {
			t.Errorf("DataFormat(%q, %q): expected %q, got %q", tc.path, tc.format, tc.want, got)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	cfg := DefaultConfig()
	cfg.Data.Path = "data/tickets.csv"
	cfg.Capacities = map[string]float64{"SPR-001": 100}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Data.Path != cfg.Data.Path || loaded.Capacities["SPR-001"] != 100 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
