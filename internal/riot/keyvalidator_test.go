package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestValidateKey_ValidKey tests that a valid API key passes validation
func TestValidateKey_ValidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "RGAPI-test-key" {
			t.Error("Expected X-Riot-Token header to be set")
		}
		if r.URL.Path != "/lol/status/v4/platform-data" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"EUW1","name":"EU West","locales":["en_GB"]}`))
	}))
	defer server.Close()

	validator := NewKeyValidator(WithValidationURL(server.URL))

	valid, err := validator.ValidateKey(context.Background(), "RGAPI-test-key")

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !valid {
		t.Error("Expected key to be valid")
	}
}

// TestValidateKey_Rejected tests that 401 and 403 mark the key invalid without an error
func TestValidateKey_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"status":{"message":"Forbidden","status_code":403}}`))
		}))

		validator := NewKeyValidator(WithValidationURL(server.URL))
		valid, err := validator.ValidateKey(context.Background(), "RGAPI-expired-key")
		server.Close()

		if err != nil {
			t.Errorf("status %d: expected no error for rejected key, got: %v", status, err)
		}
		if valid {
			t.Errorf("status %d: expected key to be invalid", status)
		}
	}
}

// TestValidateKey_NetworkError tests that network errors return an error (not invalid)
func TestValidateKey_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if ok {
			conn, _, _ := hj.Hijack()
			conn.Close()
		}
	}))
	defer server.Close()

	validator := NewKeyValidator(WithValidationURL(server.URL))

	valid, err := validator.ValidateKey(context.Background(), "RGAPI-test-key")

	if err == nil {
		t.Error("Expected network error to be returned")
	}
	if valid {
		t.Error("Expected key to not be valid on network error")
	}
}

// TestValidateKey_Timeout tests that timeouts return an error
func TestValidateKey_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	validator := NewKeyValidator(
		WithValidationURL(server.URL),
		WithValidationTimeout(100*time.Millisecond),
	)

	valid, err := validator.ValidateKey(context.Background(), "RGAPI-test-key")

	if err == nil {
		t.Error("Expected timeout error to be returned")
	}
	if valid {
		t.Error("Expected key to not be valid on timeout")
	}
}

// TestValidateKey_EmptyKey tests that empty key returns error
func TestValidateKey_EmptyKey(t *testing.T) {
	validator := NewKeyValidator()

	valid, err := validator.ValidateKey(context.Background(), "")

	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
	if valid {
		t.Error("Expected empty key to be invalid")
	}
}

// TestValidateKey_ServerError tests that 5xx errors return an error (not invalid)
func TestValidateKey_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":{"message":"Internal Server Error","status_code":500}}`))
	}))
	defer server.Close()

	validator := NewKeyValidator(WithValidationURL(server.URL))

	valid, err := validator.ValidateKey(context.Background(), "RGAPI-test-key")

	if !errors.Is(err, ErrKeyUnverified) {
		t.Errorf("Expected ErrKeyUnverified, got %v", err)
	}
	if StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("Expected status 500 in error, got %d", StatusCode(err))
	}
	if valid {
		t.Error("Expected key to not be valid on server error")
	}
}

// TestValidateKey_ContextCancelled tests that cancelled context is handled
func TestValidateKey_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	validator := NewKeyValidator(WithValidationURL(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	valid, err := validator.ValidateKey(ctx, "RGAPI-test-key")

	if err == nil {
		t.Error("Expected context cancelled error")
	}
	if valid {
		t.Error("Expected key to not be valid on cancelled context")
	}
}
