package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
	"github.com/rdv360/session-gateway/internal/infrastructure/storage"
)

func newTestClient(t *testing.T, h http.HandlerFunc, tokens ports.KeyValueStore, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{Name: "test", BaseURL: srv.URL + "/", Timeout: timeout}, tokens, zerolog.Nop())
}

func TestDo_SendsJSONAndBearer(t *testing.T) {
	tokens := storage.NewMemory()
	_ = tokens.Set(context.Background(), ports.KeyAccessToken, "T1")

	var got *http.Request
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}, tokens, 0)

	var out domain.MessageResponse
	if err := c.Do(context.Background(), http.MethodPost, "/auth/signin", map[string]string{"email": "a@b.c"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.URL.Path != "/auth/signin" {
		t.Fatalf("expected path /auth/signin, got %q", got.URL.Path)
	}
	if h := got.Header.Get("Authorization"); h != "Bearer T1" {
		t.Fatalf("expected bearer header, got %q", h)
	}
	if h := got.Header.Get("Content-Type"); h != "application/json" {
		t.Fatalf("expected json content type, got %q", h)
	}
	if got.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if gotBody["email"] != "a@b.c" {
		t.Fatalf("body not forwarded: %v", gotBody)
	}
	if out.Message != "ok" {
		t.Fatalf("expected decoded message, got %q", out.Message)
	}
}

func TestDo_NoTokenNoAuthorization(t *testing.T) {
	var header string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, storage.NewMemory(), 0)

	var out domain.MessageResponse
	if err := c.Do(context.Background(), http.MethodGet, "/rdv", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "" {
		t.Fatalf("expected no Authorization header, got %q", header)
	}
}

func TestDo_HTTPErrorUsesBodyMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}, nil, 0)

	err := c.Do(context.Background(), http.MethodPost, "/auth/signin", nil, nil)
	var he *domain.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %T %v", err, err)
	}
	if he.Status != http.StatusUnauthorized || he.Message != "Bad credentials" {
		t.Fatalf("unexpected error: %+v", he)
	}
}

func TestDo_HTTPErrorGenericMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html>nope</html>`))
	}, nil, 0)

	err := c.Do(context.Background(), http.MethodGet, "/missing", nil, nil)
	if err == nil || err.Error() != "HTTP 404: Not Found" {
		t.Fatalf("expected generic status message, got %v", err)
	}
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil, 20*time.Millisecond)
	defer close(release)

	err := c.Do(context.Background(), http.MethodGet, "/slow", nil, nil)
	var te *domain.TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected TimeoutError, got %T %v", err, err)
	}
	if err.Error() != "Request timeout" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{Name: "test", BaseURL: url}, nil, zerolog.Nop())
	err := c.Do(context.Background(), http.MethodGet, "/rdv", nil, nil)
	var ne *domain.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %T %v", err, err)
	}
	if ne.Method != http.MethodGet || ne.URL != url+"/rdv" {
		t.Fatalf("unexpected error fields: %+v", ne)
	}
}

func TestDo_InvalidJSONResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}, nil, 0)

	var out domain.MessageResponse
	if err := c.Do(context.Background(), http.MethodGet, "/rdv", nil, &out); err == nil {
		t.Fatalf("expected decode error")
	}
}
