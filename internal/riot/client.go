package riot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-querystring/query"
)

const (
	// Regional API host, %s is the routing region
	regionalHostFormat = "https://%s.api.riotgames.com"

	defaultTimeout = 30 * time.Second

	// MaxMatchCount is the largest page the match-ids endpoint accepts
	MaxMatchCount = 100

	// DefaultQueueType restricts match listings to ranked games
	DefaultQueueType = "ranked"

	authHeader = "X-Riot-Token"
)

// Client is a Riot API client. It is safe for concurrent use; the
// underlying http.Client pools connections across all calls.
type Client struct {
	apiKey     string
	baseURL    string // overrides the regional host when set
	userAgent  string
	timeout    time.Duration // applied to a copy of httpClient when set
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL sends every request to url instead of the regional host
// (useful for testing)
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the default http.Client. The client is never
// modified; WithTimeout applies to a copy of it.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Riot API client authenticated with apiKey
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{apiKey: apiKey}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}

	return c, nil
}

func (c *Client) hostFor(region Region) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf(regionalHostFormat, region)
}

// doRequest performs an authenticated GET and decodes the JSON body into result
func (c *Client) doRequest(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}

// GetAccountByRiotID fetches account info by Riot ID (gameName#tagLine)
func (c *Client) GetAccountByRiotID(ctx context.Context, region Region, gameName, tagLine string) (*AccountResponse, error) {
	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.hostFor(region), url.PathEscape(gameName), url.PathEscape(tagLine))

	var account AccountResponse
	if err := c.doRequest(ctx, endpoint, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetMatchIDs fetches a page of match IDs for a player, most recent first
func (c *Client) GetMatchIDs(ctx context.Context, region Region, puuid string, q MatchIDsQuery) ([]string, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s",
		c.hostFor(region), url.PathEscape(puuid), values.Encode())

	var matchIDs []string
	if err := c.doRequest(ctx, endpoint, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}

// GetMatch fetches match details
func (c *Client) GetMatch(ctx context.Context, region Region, matchID string) (*MatchResponse, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.hostFor(region), url.PathEscape(matchID))

	var match MatchResponse
	if err := c.doRequest(ctx, endpoint, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
