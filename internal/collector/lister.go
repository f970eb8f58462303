package collector

import (
	"context"
	"fmt"

	"ranked-report/internal/riot"
)

const DefaultMatchCount = 20

// MatchWindow selects one page of a player's match history
type MatchWindow struct {
	Offset    int
	Count     int
	QueueType string // empty lists every queue
}

// Validate checks the window against the upstream page limits
func (w MatchWindow) Validate() error {
	if w.Offset < 0 {
		return fmt.Errorf("%w: offset %d is negative", ErrInvalidWindow, w.Offset)
	}
	if w.Count < 1 || w.Count > riot.MaxMatchCount {
		return fmt.Errorf("%w: count %d outside 1..%d", ErrInvalidWindow, w.Count, riot.MaxMatchCount)
	}
	return nil
}

// ListMatches returns the player's match IDs for the window, most recent
// first, exactly as the upstream ordered them.
func ListMatches(ctx context.Context, api MatchAPI, player PlayerID, window MatchWindow) ([]string, error) {
	region := player.Identity.Region

	if err := window.Validate(); err != nil {
		return nil, &ListError{PUUID: player.PUUID, Region: region, Err: err}
	}

	matchIDs, err := api.GetMatchIDs(ctx, region, player.PUUID, riot.MatchIDsQuery{
		Type:  window.QueueType,
		Start: window.Offset,
		Count: window.Count,
	})
	if err != nil {
		return nil, &ListError{
			PUUID:  player.PUUID,
			Region: region,
			Status: riot.StatusCode(err),
			Err:    err,
		}
	}

	if len(matchIDs) > window.Count {
		matchIDs = matchIDs[:window.Count]
	}

	return matchIDs, nil
}
