package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings for the order book demo: which symbol to run
// the book under, how to log, and whether to emit telemetry.
type Config struct {
	Symbol           string `mapstructure:"symbol"`
	LogLevel         string `mapstructure:"log_level"`
	LogPretty        bool   `mapstructure:"log_pretty"`
	TelemetryEnabled bool   `mapstructure:"telemetry_enabled"`
}

// Load builds a Config from defaults, overridable by OBOOK_-prefixed
// environment variables (e.g. OBOOK_SYMBOL, OBOOK_LOG_LEVEL).
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("symbol", "BTC-USD")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", true)
	v.SetDefault("telemetry_enabled", true)

	v.SetEnvPrefix("OBOOK")
	v.AutomaticEnv()

	cfg := &Config{
		Symbol:           v.GetString("symbol"),
		LogLevel:         v.GetString("log_level"),
		LogPretty:        v.GetBool("log_pretty"),
		TelemetryEnabled: v.GetBool("telemetry_enabled"),
	}

	if cfg.Symbol == "" {
		return nil, fmt.Errorf("config: symbol must not be empty")
	}
	return cfg, nil
}
