package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		CSVDir     string `yaml:"csv_dir"`
		PolygonKey string `yaml:"polygon_key"`
		Symbol     string `yaml:"symbol"`
	} `yaml:"data"`
	Grid struct {
		NS int `yaml:"ns"`
		NT int `yaml:"nt"`
	} `yaml:"grid"`
	Pricing struct {
		Scheme       string  `yaml:"scheme"`
		DaysToExpiry int     `yaml:"days_to_expiry"`
		Strike       float64 `yaml:"strike"`
	} `yaml:"pricing"`
	Watch struct {
		PriceFile string `yaml:"price_file"`
		Cron      string `yaml:"cron"`
	} `yaml:"watch"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; overrides and defaults still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OPTION_PDE_CSV_DIR"); v != "" {
		cfg.Data.CSVDir = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Data.PolygonKey = v
	}
	if v := os.Getenv("OPTION_PDE_SYMBOL"); v != "" {
		cfg.Data.Symbol = v
	}
	if v := os.Getenv("OPTION_PDE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Data.Symbol == "" {
		cfg.Data.Symbol = "SPY"
	}
	if cfg.Grid.NS == 0 {
		cfg.Grid.NS = 200
	}
	if cfg.Grid.NT == 0 {
		cfg.Grid.NT = 100
	}
	if cfg.Pricing.Scheme == "" {
		cfg.Pricing.Scheme = "crank-nicolson"
	}
	if cfg.Pricing.DaysToExpiry == 0 {
		cfg.Pricing.DaysToExpiry = 30
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "*/5 * * * * *"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/option_pde.db"
	}

	return cfg, nil
}

// Validate checks field ranges that Load cannot default away.
func (c *Config) Validate() error {
	if c.Grid.NS < 2 {
		return fmt.Errorf("grid.ns must be at least 2")
	}
	if c.Grid.NT < 1 {
		return fmt.Errorf("grid.nt must be at least 1")
	}
	if c.Pricing.DaysToExpiry <= 0 {
		return fmt.Errorf("pricing.days_to_expiry must be positive")
	}
	if c.Pricing.Strike < 0 {
		return fmt.Errorf("pricing.strike must not be negative")
	}
	return nil
}
