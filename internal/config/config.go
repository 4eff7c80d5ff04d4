// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Token names one tradeable asset and its display scaling.
type Token struct {
	Symbol   string `yaml:"symbol"`
	Mint     string `yaml:"mint"`
	Decimals int    `yaml:"decimals"`
}

// Panel holds the trading panel's default geometry.
type Panel struct {
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Visible bool `yaml:"visible"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App     App     `yaml:"app"`
	Chain   Chain   `yaml:"chain"`
	Builder Builder `yaml:"builder"`
	Tokens  []Token `yaml:"tokens"`
	Panel   Panel   `yaml:"panel"`
}

// NativeDecimals is the lamports-per-SOL scaling, fixed by the chain.
const NativeDecimals = 9

// Load reads a YAML file from disk and hydrates a Config struct, then lets
// the environment override the chain endpoint (RPC URLs carry API keys and
// do not belong in files).
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	_ = godotenv.Load() // best-effort
	if v := os.Getenv("TERMINAL_RPC_URL"); v != "" {
		config.Chain.RpcURL = v
	}
	if v := os.Getenv("TERMINAL_COMMITMENT"); v != "" {
		config.Chain.Commitment = v
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
