// Package config loads and validates the bot configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tradebot/market"
)

// Config is the complete bot configuration.
type Config struct {
	Feed    FeedConfig            `json:"feed" yaml:"feed"`
	Risk    RiskConfig            `json:"risk" yaml:"risk"`
	Symbols map[string]SymbolSpec `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Journal JournalConfig         `json:"journal" yaml:"journal"`
	API     APIConfig             `json:"api" yaml:"api"`
	Log     LogConfig             `json:"log" yaml:"log"`
}

// FeedConfig drives the rate cache and its refresher.
type FeedConfig struct {
	Symbols     []string `json:"symbols" yaml:"symbols"`
	Interval    string   `json:"interval" yaml:"interval"`
	Retention   int      `json:"retention" yaml:"retention"`
	Backoff     string   `json:"backoff" yaml:"backoff"`
	StopTimeout string   `json:"stop_timeout" yaml:"stop_timeout"`
}

// ParseInterval converts the sweep interval to a duration.
func (f FeedConfig) ParseInterval() (time.Duration, error) {
	return parseDuration(f.Interval)
}

// ParseBackoff converts the error backoff to a duration.
func (f FeedConfig) ParseBackoff() (time.Duration, error) {
	return parseDuration(f.Backoff)
}

// ParseStopTimeout converts the shutdown join bound to a duration.
func (f FeedConfig) ParseStopTimeout() (time.Duration, error) {
	return parseDuration(f.StopTimeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// RiskConfig bounds position sizing.
type RiskConfig struct {
	DefaultRiskPercent float64 `json:"default_risk_percent" yaml:"default_risk_percent"`
	MinLot             float64 `json:"min_lot" yaml:"min_lot"`
	MaxLot             float64 `json:"max_lot" yaml:"max_lot"`
}

// SymbolSpec overrides or extends the built-in per-symbol table.
type SymbolSpec struct {
	PipSize      float64 `json:"pip_size" yaml:"pip_size"`
	PipValue     float64 `json:"pip_value" yaml:"pip_value"`
	ContractSize float64 `json:"contract_size" yaml:"contract_size"`
}

// JournalConfig selects where derived history is stored.
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	ConditionsFile string `json:"conditions_file,omitempty" yaml:"conditions_file,omitempty"`
	SizingsFile    string `json:"sizings_file,omitempty" yaml:"sizings_file,omitempty"`
}

// APIConfig configures the read-only HTTP surface.
type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // console or json
}

// SpecTable merges the built-in symbol specs with any configured overrides.
func (c *Config) SpecTable() market.SpecTable {
	table := market.DefaultSpecs()
	for symbol, spec := range c.Symbols {
		table[symbol] = market.SymbolSpec{
			PipSize:      spec.PipSize,
			PipValue:     spec.PipValue,
			ContractSize: spec.ContractSize,
		}
	}
	return table
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file, picking the format from the
// extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Feed.Symbols) == 0 {
		return fmt.Errorf("feed.symbols is required")
	}
	if d, err := c.Feed.ParseInterval(); err != nil || d < 0 {
		return fmt.Errorf("feed.interval is not a valid duration: %q", c.Feed.Interval)
	}
	if _, err := c.Feed.ParseBackoff(); err != nil {
		return fmt.Errorf("feed.backoff is not a valid duration: %q", c.Feed.Backoff)
	}
	if _, err := c.Feed.ParseStopTimeout(); err != nil {
		return fmt.Errorf("feed.stop_timeout is not a valid duration: %q", c.Feed.StopTimeout)
	}
	if c.Feed.Retention < 0 {
		return fmt.Errorf("feed.retention must not be negative")
	}
	if c.Risk.DefaultRiskPercent <= 0 || c.Risk.DefaultRiskPercent > 100 {
		return fmt.Errorf("risk.default_risk_percent must be in (0, 100]")
	}
	if c.Risk.MinLot <= 0 || c.Risk.MaxLot < c.Risk.MinLot {
		return fmt.Errorf("risk lot bounds must satisfy 0 < min_lot <= max_lot")
	}
	for symbol, spec := range c.Symbols {
		if spec.PipSize <= 0 || spec.PipValue <= 0 || spec.ContractSize <= 0 {
			return fmt.Errorf("symbols.%s: pip_size, pip_value and contract_size must be positive", symbol)
		}
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.ConditionsFile == "" || c.Journal.SizingsFile == "" {
			return fmt.Errorf("journal conditions_file and sizings_file required for csv journal")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	if c.API.Enabled && c.API.Addr == "" {
		return fmt.Errorf("api.addr required when api is enabled")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			Symbols:     []string{"EURUSD", "GBPUSD", "USDJPY", "XAUUSD"},
			Interval:    "1s",
			Retention:   1000,
			Backoff:     "5s",
			StopTimeout: "5s",
		},
		Risk: RiskConfig{
			DefaultRiskPercent: 1.0,
			MinLot:             0.01,
			MaxLot:             10.0,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./history.db",
		},
		API: APIConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8701",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
