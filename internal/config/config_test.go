package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.NS != 200 || cfg.Grid.NT != 100 {
		t.Errorf("default grid = %d/%d, want 200/100", cfg.Grid.NS, cfg.Grid.NT)
	}
	if cfg.Pricing.Scheme != "crank-nicolson" {
		t.Errorf("default scheme = %q", cfg.Pricing.Scheme)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data:
  symbol: AAPL
  csv_dir: testdata
grid:
  ns: 300
pricing:
  scheme: backward-euler
  strike: 150
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", cfg.Data.Symbol)
	}
	if cfg.Grid.NS != 300 {
		t.Errorf("ns = %d, want 300", cfg.Grid.NS)
	}
	if cfg.Grid.NT != 100 {
		t.Errorf("nt should fall back to default 100, got %d", cfg.Grid.NT)
	}
	if cfg.Pricing.Scheme != "backward-euler" {
		t.Errorf("scheme = %q", cfg.Pricing.Scheme)
	}
	if cfg.Pricing.Strike != 150 {
		t.Errorf("strike = %v, want 150", cfg.Pricing.Strike)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPTION_PDE_SYMBOL", "MSFT")
	t.Setenv("POLYGON_API_KEY", "test-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Symbol != "MSFT" {
		t.Errorf("symbol = %q, want MSFT", cfg.Data.Symbol)
	}
	if cfg.Data.PolygonKey != "test-key" {
		t.Errorf("polygon key = %q", cfg.Data.PolygonKey)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("grid: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should error")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.NS = 1
	if err := cfg.Validate(); err == nil {
		t.Error("ns=1 should fail validation")
	}
	cfg.Grid.NS = 200
	cfg.Pricing.Strike = -5
	if err := cfg.Validate(); err == nil {
		t.Error("negative strike should fail validation")
	}
}
