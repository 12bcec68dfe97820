// Package config: Viper-based hierarchical configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
		Encoding   string `mapstructure:"encoding" yaml:"encoding"`
		SkipRows   int    `mapstructure:"skiprows" yaml:"skiprows"`
	} `mapstructure:"csv" yaml:"csv"`

	OFX struct {
		Currency    string `mapstructure:"currency" yaml:"currency"`
		BankID      string `mapstructure:"bank_id" yaml:"bank_id"`
		AccountID   string `mapstructure:"account_id" yaml:"account_id"`
		AccountType string `mapstructure:"account_type" yaml:"account_type"`
		Org         string `mapstructure:"org" yaml:"org"`
		FID         string `mapstructure:"fid" yaml:"fid"`
		Output      string `mapstructure:"output" yaml:"output"`
	} `mapstructure:"ofx" yaml:"ofx"`

	Profiles struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"profiles" yaml:"profiles"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then CSVOFX_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.csv-ofx")
	v.AddConfigPath(".csv-ofx")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CSVOFX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken file should not
			// hide the rest of the configuration.
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "")
	v.SetDefault("csv.encoding", "")
	v.SetDefault("csv.skiprows", 1)

	v.SetDefault("ofx.currency", "EUR")
	v.SetDefault("ofx.bank_id", "")
	v.SetDefault("ofx.account_id", "")
	v.SetDefault("ofx.account_type", "CHECKING")
	v.SetDefault("ofx.org", "")
	v.SetDefault("ofx.fid", "")
	v.SetDefault("ofx.output", "output.ofx")

	v.SetDefault("profiles.path", "")
}

// validateConfig checks values that would otherwise only fail mid-run.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level '%s'", config.Log.Level)
	}
	switch strings.ToLower(config.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format '%s', must be 'text' or 'json'", config.Log.Format)
	}
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got '%s'", config.CSV.Delimiter)
	}
	if config.CSV.SkipRows < 0 {
		return fmt.Errorf("csv skiprows must not be negative, got %d", config.CSV.SkipRows)
	}
	if config.OFX.Output == "" {
		return fmt.Errorf("ofx output path must not be empty")
	}
	return nil
}
