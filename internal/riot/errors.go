package riot

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	ErrMissingAPIKey = errors.New("riot api key not set")
	ErrDecode        = errors.New("failed to decode response")
	ErrUnknownRegion = errors.New("unknown region")
	ErrKeyUnverified = errors.New("could not verify api key")
)

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 4 << 10

// APIError is returned for any non-200 response from the Riot API
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("riot api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("riot api returned status %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the key was rejected (401/403)
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// StatusCode extracts the upstream status code from err, or 0 when err is
// not (or does not wrap) an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsAPIKeyError reports whether err is an upstream rejection of the API key
func IsAPIKeyError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		apiErr.URL = resp.Request.URL.Path
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Status.Message != "" {
		apiErr.Message = envelope.Status.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
