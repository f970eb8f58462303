package collector

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ranked-report/internal/riot"
)

// fakeAPI is an in-memory MatchAPI. Unset maps answer with 404s.
type fakeAPI struct {
	accounts     map[string]*riot.AccountResponse // keyed by "name#tag"
	accountErr   error
	matchIDs     []string
	matchIDsErr  error
	matches      map[string]*riot.MatchResponse
	matchErrs    map[string]error
	fetchLatency time.Duration

	mu          sync.Mutex
	lastQuery   riot.MatchIDsQuery
	fetched     []string
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func (f *fakeAPI) GetAccountByRiotID(_ context.Context, _ riot.Region, gameName, tagLine string) (*riot.AccountResponse, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	account, ok := f.accounts[gameName+"#"+tagLine]
	if !ok {
		return nil, &riot.APIError{StatusCode: 404, Message: "Data not found"}
	}
	return account, nil
}

func (f *fakeAPI) GetMatchIDs(_ context.Context, _ riot.Region, _ string, q riot.MatchIDsQuery) ([]string, error) {
	f.mu.Lock()
	f.lastQuery = q
	f.mu.Unlock()

	if f.matchIDsErr != nil {
		return nil, f.matchIDsErr
	}
	return f.matchIDs, nil
}

func (f *fakeAPI) GetMatch(ctx context.Context, _ riot.Region, matchID string) (*riot.MatchResponse, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxInFlight.Load()
		if current <= seen || f.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}

	f.mu.Lock()
	f.fetched = append(f.fetched, matchID)
	f.mu.Unlock()

	if f.fetchLatency > 0 {
		select {
		case <-time.After(f.fetchLatency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := f.matchErrs[matchID]; ok {
		return nil, err
	}
	match, ok := f.matches[matchID]
	if !ok {
		return nil, &riot.APIError{StatusCode: 404, Message: "Data not found"}
	}
	return match, nil
}

func (f *fakeAPI) fetchedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

type participantStats struct {
	kills, deaths, assists int
	champion               string
	win                    bool
	gold                   *float64
}

// newMatch builds a ten player match. The target puuid, when non-empty, is
// the third participant.
func newMatch(matchID, puuid string, stats participantStats) *riot.MatchResponse {
	match := &riot.MatchResponse{
		Metadata: riot.MatchMetadata{MatchID: matchID},
		Info:     riot.MatchInfo{QueueID: 420, GameDuration: 1800},
	}

	for i := 0; i < 10; i++ {
		p := riot.MatchParticipant{
			ParticipantID: i + 1,
			PUUID:         "other-" + string(rune('a'+i)),
			ChampionName:  "Garen",
			Lane:          "TOP",
			Kills:         1,
			Deaths:        1,
			Assists:       1,
			Challenges:    &riot.ParticipantChallenges{GoldPerMinute: 300},
		}
		if i == 2 && puuid != "" {
			p.PUUID = puuid
			p.ChampionName = stats.champion
			p.Lane = "MIDDLE"
			p.Win = stats.win
			p.Kills = stats.kills
			p.Deaths = stats.deaths
			p.Assists = stats.assists
			p.TotalDamageDealtToChampions = 20000
			p.Challenges = nil
			if stats.gold != nil {
				p.Challenges = &riot.ParticipantChallenges{GoldPerMinute: *stats.gold}
			}
		}
		match.Info.Participants = append(match.Info.Participants, p)
	}

	return match
}

func ptr[T any](v T) *T {
	return &v
}
