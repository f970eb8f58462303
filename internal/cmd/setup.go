package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"ranked-report/internal/config"
	"ranked-report/internal/log"
	"ranked-report/internal/riot"
)

// loadConfig reads .env, the config file and the environment, with
// overrides applied last.
func loadConfig(opts *rootOptions, overrides map[string]any) (*config.Config, error) {
	envPath := config.LoadEnv()

	conf, errConfig := config.Load(opts.cfgFile, overrides)
	if errConfig != nil {
		return nil, errConfig
	}

	if envPath != "" {
		slog.Debug("Loaded .env", slog.String("path", envPath))
	}

	return conf, nil
}

// setupLogger installs the default logger for the command and returns its closer.
func setupLogger(ctx context.Context, conf *config.Config) (func(), error) {
	level, errLevel := log.ParseLevel(conf.Log.Level)
	if errLevel != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, errLevel)
	}

	return log.MustCreateLogger(ctx, conf.Log.File, level, conf.Log.SentryDSN, BuildVersion), nil
}

func newRiotClient(conf *config.Config) (*riot.Client, error) {
	opts := []riot.ClientOption{
		riot.WithTimeout(conf.Riot.Timeout),
		riot.WithUserAgent("ranked-report/" + BuildVersion),
	}

	if conf.Riot.BaseURL != "" {
		opts = append(opts, riot.WithBaseURL(conf.Riot.BaseURL))
	}

	return riot.NewClient(conf.Riot.APIKey, opts...)
}

// explain adds a hint to errors caused by a rejected API key.
func explain(err error) error {
	if riot.IsAPIKeyError(err) {
		return fmt.Errorf("%w\nhint: the Riot API key was rejected, development keys expire every 24 hours (run check-key)", err)
	}

	return err
}
