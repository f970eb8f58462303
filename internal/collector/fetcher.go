package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"ranked-report/internal/riot"

	"github.com/bits-and-blooms/bloom/v3"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency caps in-flight match fetches to stay under the
	// upstream rate limit
	DefaultConcurrency = 10

	// False positive rate of the duplicate match filter
	dedupFalsePositiveRate = 1e-6
)

// FetcherConfig holds configuration for the fetcher
type FetcherConfig struct {
	Concurrency int
}

// Fetcher retrieves match documents concurrently, isolating per-match failures
type Fetcher struct {
	api         MatchAPI
	concurrency int
	logger      *slog.Logger // nil logs to the default logger
	inFlight    *atomic.Int64
}

// FetchResult holds the outcome of fetching one match. Exactly one of Match
// and Err is set.
type FetchResult struct {
	Index   int // position of MatchID in the input list
	MatchID string
	Match   *riot.MatchResponse
	Err     error
}

// matchJob represents a match to be fetched
type matchJob struct {
	index   int
	matchID string
}

// NewFetcher creates a fetcher; a non-positive concurrency falls back to
// DefaultConcurrency
func NewFetcher(api MatchAPI, cfg FetcherConfig) *Fetcher {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return &Fetcher{
		api:         api,
		concurrency: cfg.Concurrency,
		inFlight:    &atomic.Int64{},
	}
}

// WithLogger returns a copy of the fetcher that logs to logger
func (f *Fetcher) WithLogger(logger *slog.Logger) *Fetcher {
	clone := *f
	clone.logger = logger

	return &clone
}

func (f *Fetcher) log() *slog.Logger {
	if f.logger == nil {
		return slog.Default()
	}

	return f.logger
}

// InFlight returns the number of match requests currently running. Copies
// made with WithLogger share the counter.
func (f *Fetcher) InFlight() int {
	return int(f.inFlight.Load())
}

// Concurrency returns the in-flight request ceiling
func (f *Fetcher) Concurrency() int {
	return f.concurrency
}

// FetchAll fetches every match in matchIDs with at most Concurrency requests
// in flight. It returns once every fetch has finished, successful or not;
// results are ordered by input position. Duplicate IDs are fetched once.
func (f *Fetcher) FetchAll(ctx context.Context, region riot.Region, matchIDs []string) []FetchResult {
	jobs := dedupe(f.log(), matchIDs)
	results := make([]FetchResult, len(jobs))

	var group errgroup.Group
	group.SetLimit(f.concurrency)

	for slot, job := range jobs {
		// Go blocks until one of the concurrency slots frees up
		group.Go(func() error {
			f.inFlight.Add(1)
			defer f.inFlight.Add(-1)

			results[slot] = f.fetchMatch(ctx, region, job)
			return nil
		})
	}

	// Workers never return errors; failures live in their result
	_ = group.Wait()

	return results
}

// fetchMatch fetches a single match, converting every failure into a *FetchError
func (f *Fetcher) fetchMatch(ctx context.Context, region riot.Region, job matchJob) FetchResult {
	result := FetchResult{Index: job.index, MatchID: job.matchID}

	if err := ctx.Err(); err != nil {
		result.Err = &FetchError{MatchID: job.matchID, Err: err}
		return result
	}

	match, err := f.api.GetMatch(ctx, region, job.matchID)
	if err != nil {
		result.Err = &FetchError{MatchID: job.matchID, Err: err}
		return result
	}

	if match == nil {
		result.Err = &FetchError{
			MatchID: job.matchID,
			Err:     fmt.Errorf("%w: empty match document", ErrMalformedResponse),
		}
		return result
	}

	if match.Metadata.MatchID == "" {
		match.Metadata.MatchID = job.matchID
	}

	result.Match = match
	return result
}

// dedupe drops repeated match IDs, keeping the first occurrence's position
func dedupe(logger *slog.Logger, matchIDs []string) []matchJob {
	jobs := make([]matchJob, 0, len(matchIDs))
	if len(matchIDs) == 0 {
		return jobs
	}

	seen := bloom.NewWithEstimates(uint(len(matchIDs)), dedupFalsePositiveRate)
	for i, matchID := range matchIDs {
		// a filter hit is confirmed against the kept jobs so a false
		// positive never drops a distinct match
		if seen.TestAndAddString(matchID) && containsJob(jobs, matchID) {
			logger.Debug("Skipping duplicate match id", slog.String("match_id", matchID), slog.Int("index", i))
			continue
		}
		jobs = append(jobs, matchJob{index: i, matchID: matchID})
	}

	return jobs
}

func containsJob(jobs []matchJob, matchID string) bool {
	for _, job := range jobs {
		if job.matchID == matchID {
			return true
		}
	}

	return false
}

// Succeeded returns the documents of successful fetches in result order
func Succeeded(results []FetchResult) []*riot.MatchResponse {
	matches := make([]*riot.MatchResponse, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		matches = append(matches, result.Match)
	}
	return matches
}

// Failures returns the fetch errors in result order
func Failures(results []FetchResult) []*FetchError {
	var failures []*FetchError
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		var fetchErr *FetchError
		if !errors.As(result.Err, &fetchErr) {
			fetchErr = &FetchError{MatchID: result.MatchID, Err: result.Err}
		}
		failures = append(failures, fetchErr)
	}
	return failures
}
