package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ranked-report/internal/collector"
	"ranked-report/internal/config"
	"ranked-report/internal/discord"
	"ranked-report/internal/export"
	"ranked-report/internal/log"
	"ranked-report/internal/render"
	"ranked-report/internal/riot"

	"github.com/spf13/cobra"
)

var errMissingRiotID = errors.New("a Riot ID is required, e.g. report 'Player#EUW'")

// reportFlags maps command line flags onto configuration keys
var reportFlags = []struct {
	flag string
	key  string
}{
	{"region", "player.region"},
	{"count", "match.count"},
	{"offset", "match.offset"},
	{"queue", "match.queue_type"},
	{"concurrency", "fetch.concurrency"},
	{"format", "output.format"},
	{"export-dir", "output.export_dir"},
	{"compress", "output.compress"},
	{"webhook", "discord.webhook_url"},
	{"log-level", "log.level"},
}

// flagOverrides collects the flags set on the command line as config overrides.
func flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()

	for _, mapping := range reportFlags {
		if !flags.Changed(mapping.flag) {
			continue
		}

		var (
			value any
			err   error
		)

		switch flags.Lookup(mapping.flag).Value.Type() {
		case "int":
			value, err = flags.GetInt(mapping.flag)
		case "bool":
			value, err = flags.GetBool(mapping.flag)
		default:
			value, err = flags.GetString(mapping.flag)
		}

		if err != nil {
			return nil, err
		}

		overrides[mapping.key] = value
	}

	return overrides, nil
}

func reportCmd(opts *rootOptions) *cobra.Command {
	var riotID string

	cmd := &cobra.Command{
		Use:   "report [Name#Tag]",
		Short: "Build the ranked match report of a player",
		Long: `Resolves the Riot ID to a PUUID, lists the most recent matches of the
configured queue, fetches them concurrently and prints one row per match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				riotID = args[0]
			}
			if riotID == "" {
				return errMissingRiotID
			}

			overrides, errFlags := flagOverrides(cmd)
			if errFlags != nil {
				return errFlags
			}

			conf, errConfig := loadConfig(opts, overrides)
			if errConfig != nil {
				return errConfig
			}

			if errValidate := conf.Validate(); errValidate != nil {
				return errValidate
			}

			logCloser, errLogger := setupLogger(cmd.Context(), conf)
			if errLogger != nil {
				return errLogger
			}
			defer logCloser()

			return runReport(cmd, conf, riotID)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&riotID, "riot-id", "", "Riot ID of the player (Name#Tag)")
	flags.StringP("region", "r", "europe", "routing region or platform id (americas, asia, europe, sea, euw1, na1, ...)")
	flags.IntP("count", "n", collector.DefaultMatchCount, "number of recent matches to report (1-100)")
	flags.Int("offset", 0, "number of most recent matches to skip")
	flags.StringP("queue", "q", riot.DefaultQueueType, "match type filter (ranked, normal, tourney, tutorial)")
	flags.IntP("concurrency", "c", collector.DefaultConcurrency, "maximum in-flight match requests")
	flags.StringP("format", "f", string(render.FormatTable), "output format (table, json, csv)")
	flags.String("export-dir", "", "write the rows as JSONL into this directory")
	flags.Bool("compress", false, "gzip the exported JSONL file")
	flags.String("webhook", "", "Discord webhook URL receiving the report summary")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

// interruptNotice reports how many match fetches are abandoned by a signal.
func interruptNotice(reporter *collector.Reporter) func(context.Context) {
	return func(_ context.Context) {
		slog.Warn("Report interrupted, abandoning in-flight fetches", slog.Int("in_flight", reporter.InFlight()))
	}
}

func runReport(cmd *cobra.Command, conf *config.Config, riotID string) error {
	region, errRegion := riot.ParseRegion(conf.Player.Region)
	if errRegion != nil {
		return errRegion
	}

	identity, errIdentity := collector.ParseRiotID(riotID, region)
	if errIdentity != nil {
		return errIdentity
	}

	format, errFormat := render.ParseFormat(conf.Output.Format)
	if errFormat != nil {
		return errFormat
	}

	client, errClient := newRiotClient(conf)
	if errClient != nil {
		return errClient
	}

	reporter := collector.NewReporter(client, collector.ReporterConfig{Concurrency: conf.Fetch.Concurrency})

	ctx, stop := collector.SetupSignalHandler(cmd.Context(), interruptNotice(reporter))
	defer stop()

	report, errRun := reporter.Run(ctx, collector.Request{
		Identity: identity,
		Window: collector.MatchWindow{
			Offset:    conf.Match.Offset,
			Count:     conf.Match.Count,
			QueueType: conf.Match.QueueType,
		},
	})
	if errRun != nil {
		return explain(errRun)
	}

	if errRender := render.Write(cmd.OutOrStdout(), format, report); errRender != nil {
		return fmt.Errorf("failed to render report: %w", errRender)
	}

	if conf.Output.ExportDir != "" {
		if _, errExport := export.WriteReport(conf.Output.ExportDir, report, conf.Output.Compress); errExport != nil {
			return fmt.Errorf("failed to export report: %w", errExport)
		}
	}

	if conf.Discord.WebhookURL != "" {
		if errSend := discord.NewWebhookClient(conf.Discord.WebhookURL).SendReport(ctx, report); errSend != nil {
			slog.Error("Failed to send report summary to discord", log.ErrAttr(errSend))
		}
	}

	return nil
}
