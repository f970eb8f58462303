package collector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ranked-report/internal/log"
	"ranked-report/internal/riot"

	"github.com/gofrs/uuid/v5"
)

// ReporterConfig holds configuration for the reporter
type ReporterConfig struct {
	Concurrency int
}

// Request describes one report run
type Request struct {
	Identity PlayerIdentity
	Window   MatchWindow
}

// Report is the outcome of one run. Records are in recency order.
type Report struct {
	RunID     uuid.UUID
	Player    PlayerID
	Window    MatchWindow
	MatchIDs  []string
	Records   []MatchStatsRecord
	Failures  []*FetchError
	Skipped   []string // fetched matches the player was not found in
	StartedAt time.Time
	Duration  time.Duration
}

// Reporter runs the resolve, list, fetch and project stages in sequence
type Reporter struct {
	api     MatchAPI
	fetcher *Fetcher
}

// NewReporter creates a reporter on top of api
func NewReporter(api MatchAPI, cfg ReporterConfig) *Reporter {
	return &Reporter{
		api:     api,
		fetcher: NewFetcher(api, FetcherConfig{Concurrency: cfg.Concurrency}),
	}
}

// Run produces a report for the request. Resolution and listing failures
// abort the run and are returned as *ResolutionError and *ListError. Failed
// match fetches and matches without the player only shrink the report.
func (r *Reporter) Run(ctx context.Context, req Request) (*Report, error) {
	runID, errID := uuid.NewV4()
	if errID != nil {
		return nil, errors.Join(errID, ErrRunID)
	}

	logger := slog.With(
		slog.String("run_id", runID.String()),
		slog.String("riot_id", req.Identity.String()),
		slog.String("region", req.Identity.Region.String()),
	)

	report := &Report{
		RunID:     runID,
		Window:    req.Window,
		StartedAt: time.Now(),
	}

	logger.Info("Fetching player")
	player, err := Resolve(ctx, r.api, req.Identity)
	if err != nil {
		return nil, err
	}
	report.Player = player
	logger.Debug("Resolved player", slog.String("puuid", shortID(player.PUUID)))

	logger.Info("Fetching match ids", slog.Int("offset", req.Window.Offset), slog.Int("count", req.Window.Count))
	matchIDs, err := ListMatches(ctx, r.api, player, req.Window)
	if err != nil {
		return nil, err
	}
	report.MatchIDs = matchIDs

	logger.Info("Analyzing matches", slog.Int("matches", len(matchIDs)), slog.Int("concurrency", r.fetcher.Concurrency()))
	results := r.fetcher.WithLogger(logger).FetchAll(ctx, player.Identity.Region, matchIDs)
	if err := ctx.Err(); err != nil {
		logger.Warn("Run cancelled while fetching matches", log.ErrAttr(err))
		return nil, err
	}
	report.Failures = Failures(results)
	for _, failure := range report.Failures {
		logger.Warn("Failed to fetch match", slog.String("match_id", failure.MatchID), log.ErrAttr(failure.Err))
	}

	records, skipped := Project(Succeeded(results), player.PUUID)
	for _, matchID := range skipped {
		logger.Warn("Player not found in match", slog.String("match_id", matchID))
	}
	report.Records = records
	report.Skipped = skipped
	report.Duration = time.Since(report.StartedAt)

	logger.Info("Report complete",
		slog.Int("records", len(records)),
		slog.Int("failed", len(report.Failures)),
		slog.Int("skipped", len(skipped)),
		slog.Duration("elapsed", report.Duration))

	return report, nil
}

// InFlight returns the number of match fetches currently running
func (r *Reporter) InFlight() int {
	return r.fetcher.InFlight()
}

// Region returns the routing region the report was built from
func (r *Report) Region() riot.Region {
	return r.Player.Identity.Region
}
