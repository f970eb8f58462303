// Package collector turns a Riot ID into a per-match statistics report:
// resolve the player, list a page of ranked match IDs, fetch every match
// under a fixed concurrency cap and project the player's record out of
// each one.
package collector

import (
	"context"
	"fmt"
	"strings"

	"ranked-report/internal/riot"
)

// MatchAPI is the subset of the Riot API the pipeline consumes
type MatchAPI interface {
	GetAccountByRiotID(ctx context.Context, region riot.Region, gameName, tagLine string) (*riot.AccountResponse, error)
	GetMatchIDs(ctx context.Context, region riot.Region, puuid string, q riot.MatchIDsQuery) ([]string, error)
	GetMatch(ctx context.Context, region riot.Region, matchID string) (*riot.MatchResponse, error)
}

// PlayerIdentity is a user supplied Riot ID within a routing region
type PlayerIdentity struct {
	GameName string
	TagLine  string
	Region   riot.Region
}

// ParseRiotID splits "GameName#TagLine" into an identity
func ParseRiotID(riotID string, region riot.Region) (PlayerIdentity, error) {
	parts := strings.SplitN(riotID, "#", 2)
	if len(parts) != 2 {
		return PlayerIdentity{}, fmt.Errorf("%w: %q, expected 'GameName#TagLine'", ErrInvalidIdentity, riotID)
	}

	identity := PlayerIdentity{
		GameName: strings.TrimSpace(parts[0]),
		TagLine:  strings.TrimSpace(parts[1]),
		Region:   region,
	}

	return identity, identity.Validate()
}

// Validate checks the identity can be resolved
func (p PlayerIdentity) Validate() error {
	if p.GameName == "" || p.TagLine == "" {
		return fmt.Errorf("%w: game name and tag line are required", ErrInvalidIdentity)
	}
	if !p.Region.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidIdentity, riot.ErrUnknownRegion, p.Region)
	}
	return nil
}

func (p PlayerIdentity) String() string {
	return p.GameName + "#" + p.TagLine
}

// PlayerID is a resolved player. It is created once per run and only read
// afterwards.
type PlayerID struct {
	PUUID    string
	Identity PlayerIdentity
}

// shortID truncates opaque ids for log lines
func shortID(id string) string {
	return id[:min(16, len(id))]
}
