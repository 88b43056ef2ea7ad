package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
chain:
  name: tron
  native_decimals: 6
  token:
    contract: TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t
    decimals: 6
    symbol: USDT
  providers:
    - name: trongrid
      url: https://api.trongrid.io
signer:
  url: http://localhost:9090/sign
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Chain.Token.Symbol != "USDT" {
		t.Errorf("symbol = %s", cfg.Chain.Token.Symbol)
	}
	if len(cfg.Chain.Providers) != 1 || cfg.Chain.Providers[0].Name != "trongrid" {
		t.Errorf("providers = %+v", cfg.Chain.Providers)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
chain:
  providers:
    - name: n
      url: http://localhost:8090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Chain.EnergyPriceSun != DefaultEnergyPriceSun {
		t.Errorf("energy price = %d, want %d", cfg.Chain.EnergyPriceSun, DefaultEnergyPriceSun)
	}
	if cfg.Chain.BandwidthPriceSun != DefaultBandwidthPriceSun {
		t.Errorf("bandwidth price = %d, want %d", cfg.Chain.BandwidthPriceSun, DefaultBandwidthPriceSun)
	}
	if cfg.Chain.NativeDecimals != 6 {
		t.Errorf("native decimals = %d, want 6", cfg.Chain.NativeDecimals)
	}
	if cfg.Chain.RequestTimeout != 30*time.Second {
		t.Errorf("request timeout = %s", cfg.Chain.RequestTimeout)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_PAYOUT_URL", "https://node.example.com")

	path := writeConfig(t, `
chain:
  providers:
    - name: n
      url: ${TEST_PAYOUT_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chain.Providers[0].URL != "https://node.example.com" {
		t.Errorf("url = %s", cfg.Chain.Providers[0].URL)
	}
}

func TestLoad_NoProviders(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error when no providers configured")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
