package config

import (
	"time"

	redisclient "github.com/vietddude/payout/internal/infra/redis"
	"github.com/vietddude/payout/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Chain    ChainConfig        `yaml:"chain"`
	Signer   SignerConfig       `yaml:"signer"`
	Redis    redisclient.Config `yaml:"redis"`
	Logging  LoggingConfig      `yaml:"logging"`
	Database postgres.Config    `yaml:"database"`
}

// ServerConfig holds the metrics/health HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ChainConfig holds settings for the chain being paid out on.
type ChainConfig struct {
	Name              string           `yaml:"name"`
	NativeDecimals    int              `yaml:"native_decimals"`
	EnergyPriceSun    int64            `yaml:"energy_price_sun"`
	BandwidthPriceSun int64            `yaml:"bandwidth_price_sun"`
	FeeLimitSun       int64            `yaml:"fee_limit_sun"`
	RequestTimeout    time.Duration    `yaml:"request_timeout"`
	Token             TokenConfig      `yaml:"token"`
	Providers         []ProviderConfig `yaml:"providers"`
}

// TokenConfig identifies the fungible token handled by the token service.
type TokenConfig struct {
	Contract string `yaml:"contract"`
	Decimals int    `yaml:"decimals"`
	Symbol   string `yaml:"symbol"`
}

// ProviderConfig holds settings for one node API provider.
type ProviderConfig struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// SignerConfig points at the external signing service.
type SignerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}
