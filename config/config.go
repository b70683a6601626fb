// Package config loads and validates the paperhand configuration.
// Files may be YAML or JSON; YAML is tried first.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Trading TradingConfig `json:"trading" yaml:"trading"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}

// AccountConfig seeds the ledger.
type AccountConfig struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
	Currency       string  `json:"currency" yaml:"currency"`
}

// TradingConfig holds execution defaults.
type TradingConfig struct {
	// DefaultSlippagePct is applied when an order does not specify
	// slippage explicitly.
	DefaultSlippagePct float64 `json:"default_slippage_pct" yaml:"default_slippage_pct"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Type string `json:"type" yaml:"type"` // "json" or "sqlite"
	Path string `json:"path" yaml:"path"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration, choosing YAML or JSON by file
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

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Trading.DefaultSlippagePct < 0 || c.Trading.DefaultSlippagePct >= 100 {
		return fmt.Errorf("trading.default_slippage_pct must be in [0, 100)")
	}
	if c.Store.Type != "json" && c.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be 'json' or 'sqlite'")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialBalance: 10000,
			Currency:       "USD",
		},
		Trading: TradingConfig{
			DefaultSlippagePct: 0.5,
		},
		Store: StoreConfig{
			Type: "json",
			Path: "./paperhand.json",
		},
	}
}
