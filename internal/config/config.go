package config

import (
	"time"

	"github.com/hance08/atm/internal/constants"
)

type Config struct {
	Backend    BackendConfig `mapstructure:"backend"`
	Display    DisplayConfig `mapstructure:"display"`
	Log        LogConfig     `mapstructure:"log"`
	ConfigPath string        `mapstructure:"-"`
}

type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DisplayConfig struct {
	CurrencySymbol string        `mapstructure:"currency_symbol"`
	StatusTTL      time.Duration `mapstructure:"status_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func NewDefault() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: constants.DefaultBaseURL,
			Timeout: constants.DefaultTimeout,
		},
		Display: DisplayConfig{
			CurrencySymbol: constants.DefaultCurrencySymbol,
			StatusTTL:      constants.DefaultStatusTTL,
		},
		Log: LogConfig{Level: constants.DefaultLogLevel, File: ""},
	}
}
