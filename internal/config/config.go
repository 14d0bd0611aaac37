package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the run configuration loaded from YAML.
type Config struct {
	Tickers        []string `yaml:"tickers"`
	Start          string   `yaml:"start"`
	End            string   `yaml:"end"`
	Split          string   `yaml:"split"`
	InitialCapital float64  `yaml:"initial_capital"`
	Model          struct {
		Name       string `yaml:"name"`
		Estimators int    `yaml:"estimators"`
		Seed       int64  `yaml:"seed"`
		DumpPath   string `yaml:"dump_path"`
	} `yaml:"model"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	OutputDir string `yaml:"output_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: defaults apply.
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
	if v := os.Getenv("BFOREST_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("BFOREST_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	// Defaults
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"2888.HK", "0005.HK"}
	}
	if cfg.Start == "" {
		cfg.Start = "2011-01-01"
	}
	if cfg.End == "" {
		cfg.End = "2021-12-31"
	}
	if cfg.Split == "" {
		cfg.Split = "2019-01-01"
	}
	if cfg.InitialCapital == 0 {
		cfg.InitialCapital = 100000
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = "forest"
	}
	if cfg.Model.Estimators == 0 {
		cfg.Model.Estimators = 100
	}
	if cfg.Model.Seed == 0 {
		cfg.Model.Seed = 42
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/candles.db"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "evaluation"
	}

	return cfg, nil
}

// Validate checks field consistency and date ordering.
func (c *Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	start, end, split, err := c.Dates()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("start %s must be before end %s", c.Start, c.End)
	}
	if split.Before(start) || split.After(end) {
		return fmt.Errorf("split %s must be within [%s, %s]", c.Split, c.Start, c.End)
	}
	if c.Model.Name == "xgboost" && c.Model.DumpPath == "" {
		return fmt.Errorf("model.dump_path is required for the xgboost model")
	}
	return nil
}

// Dates parses the three run dates.
func (c *Config) Dates() (start, end, split time.Time, err error) {
	if start, err = parseDate(c.Start); err != nil {
		return
	}
	if end, err = parseDate(c.End); err != nil {
		return
	}
	split, err = parseDate(c.Split)
	return
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t.UTC(), nil
}
