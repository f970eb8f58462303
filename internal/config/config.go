// Package config loads the report settings from defaults, an optional config
// file, the environment and command line overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ranked-report/internal/riot"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrReadConfig    = errors.New("failed to read config file")
	ErrDecodeConfig  = errors.New("failed to decode config")
)

// EnvPaths are the candidate .env locations, first match wins
var EnvPaths = []string{".env", "../.env", "../../.env"}

type Config struct {
	Riot    RiotConfig    `mapstructure:"riot"`
	Player  PlayerConfig  `mapstructure:"player"`
	Match   MatchConfig   `mapstructure:"match"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Output  OutputConfig  `mapstructure:"output"`
	Discord DiscordConfig `mapstructure:"discord"`
	Log     LogConfig     `mapstructure:"log"`
}

type RiotConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	BaseURL string        `mapstructure:"base_url"`
}

type PlayerConfig struct {
	Region string `mapstructure:"region"`
}

type MatchConfig struct {
	Offset    int    `mapstructure:"offset"`
	Count     int    `mapstructure:"count"`
	QueueType string `mapstructure:"queue_type"`
}

type FetchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type OutputConfig struct {
	Format    string `mapstructure:"format"`
	ExportDir string `mapstructure:"export_dir"`
	Compress  bool   `mapstructure:"compress"`
}

type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

func defaults() map[string]any {
	return map[string]any{
		"riot.api_key":        "",
		"riot.timeout":        "30s",
		"riot.base_url":       "",
		"player.region":       "europe",
		"match.offset":        0,
		"match.count":         20,
		"match.queue_type":    "ranked",
		"fetch.concurrency":   10,
		"output.format":       "table",
		"output.export_dir":   "",
		"output.compress":     false,
		"discord.webhook_url": "",
		"log.level":           "info",
		"log.file":            "",
		"log.sentry_dsn":      "",
	}
}

// LoadEnv loads the first .env file found in EnvPaths. A missing file is not
// an error, the process environment is used as is.
func LoadEnv() string {
	for _, path := range EnvPaths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}

	return ""
}

// Load reads the configuration. cfgFile may be empty in which case report.yml
// is searched in the working directory and $HOME. Values in overrides take
// precedence over every other source.
func Load(cfgFile string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("report")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("riot.api_key", "REPORT_RIOT_API_KEY", "RIOT_API_KEY", "RIOT-DEV-KEY"); err != nil {
		return nil, errors.Join(err, ErrReadConfig)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName("report")
		v.SetConfigType("yml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Join(err, ErrReadConfig)
		}
	} else {
		slog.Debug("Using config file", slog.String("path", v.ConfigFileUsed()))
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(err, ErrDecodeConfig)
	}

	cfg.Riot.APIKey = strings.Trim(strings.TrimSpace(cfg.Riot.APIKey), "\"")

	return &cfg, nil
}

// Validate checks the values the report command depends on.
func (c *Config) Validate() error {
	var errs []error

	if c.Riot.APIKey == "" {
		errs = append(errs, fmt.Errorf("%w: riot.api_key is required (set RIOT_API_KEY)", ErrInvalidConfig))
	}
	if c.Riot.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: riot.timeout must be positive", ErrInvalidConfig))
	}
	if c.Match.Offset < 0 {
		errs = append(errs, fmt.Errorf("%w: match.offset must be >= 0", ErrInvalidConfig))
	}
	if c.Match.Count < 1 || c.Match.Count > riot.MaxMatchCount {
		errs = append(errs, fmt.Errorf("%w: match.count must be within [1, %d]", ErrInvalidConfig, riot.MaxMatchCount))
	}
	if c.Fetch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: fetch.concurrency must be >= 1", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
