package riot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// Platform host, %s is the platform id (na1, euw1, ...)
	platformHostFormat = "https://%s.api.riotgames.com"
	defaultPlatform    = "na1"

	// Default validation endpoint (LoL Status API - lightweight)
	defaultStatusEndpoint = "/lol/status/v4/platform-data"

	// Default timeout for validation requests
	defaultValidationTimeout = 10 * time.Second
)

// KeyValidator validates Riot API keys by making a test request
type KeyValidator struct {
	httpClient *http.Client
	baseURL    string
}

// KeyValidatorOption configures a KeyValidator
type KeyValidatorOption func(*KeyValidator)

// WithValidationURL sets a custom base URL (useful for testing)
func WithValidationURL(url string) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.baseURL = url
	}
}

// WithPlatform validates against the status endpoint of the given platform
func WithPlatform(platform string) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.baseURL = fmt.Sprintf(platformHostFormat, platform)
	}
}

// WithValidationTimeout sets a custom timeout for validation requests
func WithValidationTimeout(timeout time.Duration) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.httpClient.Timeout = timeout
	}
}

// NewKeyValidator creates a new KeyValidator with the given options
func NewKeyValidator(opts ...KeyValidatorOption) *KeyValidator {
	v := &KeyValidator{
		httpClient: &http.Client{
			Timeout: defaultValidationTimeout,
		},
		baseURL: fmt.Sprintf(platformHostFormat, defaultPlatform),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ValidateKey validates an API key by making a test request to the Riot API.
// Returns:
//   - (true, nil) if the key is valid
//   - (false, nil) if the key is invalid (401/403)
//   - (false, error) if there was a network/server error (key validity unknown)
func (v *KeyValidator) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	if apiKey == "" {
		return false, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+defaultStatusEndpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(authHeader, apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return true, nil
	}

	apiErr := newAPIError(resp)
	if apiErr.Unauthorized() {
		// Key is invalid or expired (401/403)
		return false, nil
	}

	// Server error or unexpected response - we can't determine if key is valid
	return false, errors.Join(ErrKeyUnverified, apiErr)
}
