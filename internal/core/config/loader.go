package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Default resource prices in sun per unit, as charged by mainnet.
const (
	DefaultEnergyPriceSun    = 420
	DefaultBandwidthPriceSun = 1000
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if len(cfg.Chain.Providers) == 0 {
		return nil, fmt.Errorf("config: at least one chain provider is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Chain.Name == "" {
		cfg.Chain.Name = "tron"
	}
	if cfg.Chain.NativeDecimals == 0 {
		cfg.Chain.NativeDecimals = 6
	}
	if cfg.Chain.EnergyPriceSun == 0 {
		cfg.Chain.EnergyPriceSun = DefaultEnergyPriceSun
	}
	if cfg.Chain.BandwidthPriceSun == 0 {
		cfg.Chain.BandwidthPriceSun = DefaultBandwidthPriceSun
	}
	if cfg.Chain.FeeLimitSun == 0 {
		cfg.Chain.FeeLimitSun = 100_000_000 // 100 TRX
	}
	if cfg.Chain.RequestTimeout == 0 {
		cfg.Chain.RequestTimeout = 30 * time.Second
	}
	if cfg.Signer.Timeout == 0 {
		cfg.Signer.Timeout = 10 * time.Second
	}
}
