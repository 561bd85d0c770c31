// Package config loads mwlkeys settings from the environment and an optional
// configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	mwlerrors "github.com/caio-sobreiro/mwlmerge/errors"
	"github.com/caio-sobreiro/mwlmerge/mwl"
)

// Config holds the worklist query settings and logging options. Enumerated
// values are kept as text and checked by Validate.
type Config struct {
	MWLSCP         string   `mapstructure:"MWL_SCP"`
	MatchingKey    string   `mapstructure:"MWL_MATCHING_KEY"`
	WorklistLabels []string `mapstructure:"MWL_WORKLIST_LABELS"`
	SPSStatus      []string `mapstructure:"MWL_SPS_STATUS"`
	TemplateURI    string   `mapstructure:"MWL_TEMPLATE_URI"`
	LogLevel       string   `mapstructure:"MWL_LOG_LEVEL"`
	LogFormat      string   `mapstructure:"MWL_LOG_FORMAT"`
}

var keys = []string{
	"MWL_SCP",
	"MWL_MATCHING_KEY",
	"MWL_WORKLIST_LABELS",
	"MWL_SPS_STATUS",
	"MWL_TEMPLATE_URI",
	"MWL_LOG_LEVEL",
	"MWL_LOG_FORMAT",
}

// Load reads the configuration from the environment and, when path is not
// empty, from that file (YAML, JSON, TOML or .env). Environment variables
// take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("MWL_MATCHING_KEY", mwl.PatientID.String())
	v.SetDefault("MWL_SPS_STATUS", mwl.Scheduled.String())
	v.SetDefault("MWL_LOG_LEVEL", "info")
	v.SetDefault("MWL_LOG_FORMAT", "json")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.WorklistLabels = splitList(cfg.WorklistLabels)
	cfg.SPSStatus = splitList(cfg.SPSStatus)

	return cfg, nil
}

// splitList accepts both list values and comma separated strings
func splitList(values []string) []string {
	var result []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}

// Key returns the configured matching key
func (c *Config) Key() (mwl.MatchingKey, error) {
	key, err := mwl.ParseMatchingKey(c.MatchingKey)
	if err != nil {
		return 0, mwlerrors.NewConfigError("MWL_MATCHING_KEY", err)
	}
	return key, nil
}

// Statuses returns the configured SPS statuses of worklist entries that may
// be merged
func (c *Config) Statuses() (mwl.StatusSet, error) {
	set, err := mwl.ParseStatusSet(c.SPSStatus)
	if err != nil {
		return 0, mwlerrors.NewConfigError("MWL_SPS_STATUS", err)
	}
	return set, nil
}

// Level returns the configured log level
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, mwlerrors.NewConfigError("MWL_LOG_LEVEL", err)
	}
	return level, nil
}

// Validate checks that every enumerated setting holds a known value
func (c *Config) Validate() error {
	if _, err := c.Key(); err != nil {
		return err
	}
	if _, err := c.Statuses(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return mwlerrors.NewConfigError("MWL_LOG_FORMAT",
			fmt.Errorf("must be \"json\" or \"console\", got %q", c.LogFormat))
	}
	return nil
}
