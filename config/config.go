package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"seriesaligner/internal/series"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `mapstructure:"env"` // "dev" or "prod"
	Batch    BatchConfig    `mapstructure:"batch"`
	Provider ProviderConfig `mapstructure:"provider"`
	Log      LogConfig      `mapstructure:"log"`
}

// BatchConfig selects what to download.
type BatchConfig struct {
	Symbols   []string `mapstructure:"symbols"`
	StartDate string   `mapstructure:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string   `mapstructure:"end_date"`   // YYYY-MM-DD, inclusive
	HeadRows  int      `mapstructure:"head_rows"`  // rows shown in the summary
}

// ProviderConfig selects and configures the market-data source.
type ProviderConfig struct {
	Name            string        `mapstructure:"name"` // "yahoo" or "vstrader"
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	APIKeyParameter string        `mapstructure:"api_key_parameter"` // SSM parameter name used in prod
	Timeout         time.Duration `mapstructure:"timeout"`
	Proxy           string        `mapstructure:"proxy"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

const (
	ProviderYahoo    = "yahoo"
	ProviderVsTrader = "vstrader"
)

var (
	DefaultSymbols   = []string{"TSLA", "BND", "SPY"}
	DefaultStartDate = "2015-07-01"
	DefaultEndDate   = "2025-07-31"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("batch.symbols", DefaultSymbols)
	v.SetDefault("batch.start_date", DefaultStartDate)
	v.SetDefault("batch.end_date", DefaultEndDate)
	v.SetDefault("batch.head_rows", 5)

	v.SetDefault("provider.name", ProviderYahoo)
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.api_key_parameter", "")
	v.SetDefault("provider.timeout", 30*time.Second)
	v.SetDefault("provider.proxy", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")
}

// Load loads application configuration using Viper.
// It reads the YAML file at path (or config.yaml from ./ and ./config when path is
// empty), falls back to built-in defaults and overrides with environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Support environment variables with dot notation (e.g., PROVIDER_NAME)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	if len(c.Batch.Symbols) == 0 {
		return errors.New("batch.symbols is required")
	}
	for i, s := range c.Batch.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("batch.symbols[%d] is empty", i)
		}
	}
	if _, err := c.Batch.Start(); err != nil {
		return fmt.Errorf("batch.start_date: %w", err)
	}
	if _, err := c.Batch.End(); err != nil {
		return fmt.Errorf("batch.end_date: %w", err)
	}
	if c.Batch.HeadRows < 0 {
		return errors.New("batch.head_rows must be >= 0")
	}

	switch c.Provider.Name {
	case ProviderYahoo:
	case ProviderVsTrader:
		if c.Provider.BaseURL == "" {
			return errors.New("provider.base_url is required for vstrader")
		}
	default:
		return fmt.Errorf("provider.name %q is not supported", c.Provider.Name)
	}
	if c.Provider.Timeout <= 0 {
		return errors.New("provider.timeout must be positive")
	}
	return nil
}

func (b BatchConfig) Start() (time.Time, error) {
	return series.ParseDay(b.StartDate)
}

func (b BatchConfig) End() (time.Time, error) {
	return series.ParseDay(b.EndDate)
}
