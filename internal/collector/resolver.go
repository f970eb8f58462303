package collector

import (
	"context"
	"fmt"

	"ranked-report/internal/riot"
)

// Resolve looks up the PUUID of a Riot ID. It makes exactly one request and
// never retries; every failure is a *ResolutionError.
func Resolve(ctx context.Context, api MatchAPI, identity PlayerIdentity) (PlayerID, error) {
	if err := identity.Validate(); err != nil {
		return PlayerID{}, &ResolutionError{Identity: identity, Err: err}
	}

	account, err := api.GetAccountByRiotID(ctx, identity.Region, identity.GameName, identity.TagLine)
	if err != nil {
		return PlayerID{}, &ResolutionError{
			Identity: identity,
			Status:   riot.StatusCode(err),
			Err:      err,
		}
	}

	if account == nil || account.PUUID == "" {
		return PlayerID{}, &ResolutionError{
			Identity: identity,
			Err:      fmt.Errorf("%w: account has no puuid", ErrMalformedResponse),
		}
	}

	return PlayerID{PUUID: account.PUUID, Identity: identity}, nil
}
