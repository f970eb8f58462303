package collector

import (
	"errors"
	"fmt"

	"ranked-report/internal/riot"
)

var (
	ErrInvalidIdentity   = errors.New("invalid player identity")
	ErrInvalidWindow     = errors.New("invalid match window")
	ErrMalformedResponse = errors.New("malformed response")
	ErrRunID             = errors.New("failed to generate run id")
)

// ResolutionError means the Riot ID could not be turned into a PUUID. It is
// fatal to the run.
type ResolutionError struct {
	Identity PlayerIdentity
	Status   int // upstream status, 0 when the request never got a response
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s (%s): %v", e.Identity, e.Identity.Region, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ListError means the match ID listing failed. It is fatal to the run.
type ListError struct {
	PUUID  string
	Region riot.Region
	Status int
	Err    error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("list matches for %s (%s): %v", shortID(e.PUUID), e.Region, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// FetchError records a single failed match fetch. It never aborts the run.
type FetchError struct {
	MatchID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch match %s: %v", e.MatchID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
