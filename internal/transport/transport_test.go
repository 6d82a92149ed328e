package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeTokens struct {
	mu    sync.Mutex
	token string
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) set(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func TestAuthAttachSetsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-abc"}
	client := New(Config{BaseURL: srv.URL, Tokens: tokens})

	if err := client.DoJSON(context.Background(), http.MethodGet, "/movies/1", nil, nil, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestAuthAttachSkipsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Tokens: &fakeTokens{}})
	if err := client.DoJSON(context.Background(), http.MethodGet, "/movies/top", nil, nil, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedClearsSessionAndRewritesMessage(t *testing.T) {
	authHeaders := []string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "stale-token"}
	cleared := false
	client := New(Config{
		BaseURL: srv.URL,
		Tokens:  tokens,
		OnUnauthorized: func() {
			cleared = true
			tokens.set("")
		},
	})

	err := client.DoJSON(context.Background(), http.MethodGet, "/me/ratings", nil, nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Status)
	}
	if apiErr.Message != msgSessionExpired {
		t.Fatalf("401 message not rewritten: %q", apiErr.Message)
	}
	if !cleared {
		t.Fatalf("expected session clear callback")
	}

	// A later request in the same process must not carry the stale header.
	_ = client.DoJSON(context.Background(), http.MethodGet, "/me/ratings", nil, nil, nil)
	if len(authHeaders) != 2 {
		t.Fatalf("expected two requests, got %d", len(authHeaders))
	}
	if authHeaders[1] != "" {
		t.Fatalf("stale Authorization header leaked: %q", authHeaders[1])
	}
}

func TestStatusSpecificMessages(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusForbidden, msgForbidden},
		{http.StatusNotFound, msgNotFound},
		{http.StatusInternalServerError, msgServerError},
		{http.StatusServiceUnavailable, msgUnavailable},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		client := New(Config{BaseURL: srv.URL, Tokens: &fakeTokens{}})
		err := client.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		srv.Close()

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected APIError, got %v", tc.status, err)
		}
		if apiErr.Message != tc.want {
			t.Fatalf("status %d: got message %q, want %q", tc.status, apiErr.Message, tc.want)
		}
		if apiErr.Cause == nil {
			t.Fatalf("status %d: original cause must be preserved", tc.status)
		}
	}
}

func TestFallbackMessagePriority(t *testing.T) {
	// Server-provided message wins for statuses without a fixed string.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "rating already exists"})
	}))
	client := New(Config{BaseURL: srv.URL, Tokens: &fakeTokens{}})
	err := client.DoJSON(context.Background(), http.MethodPost, "/me/ratings", nil, map[string]int{"movieId": 1}, nil)
	srv.Close()

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "rating already exists" {
		t.Fatalf("server message should win, got %q", apiErr.Message)
	}

	// Without a body the transport-level description is used.
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	err = client2Do(t, srv2.URL)
	srv2.Close()
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message == "" || apiErr.Message == msgGeneric {
		t.Fatalf("transport message should win over generic, got %q", apiErr.Message)
	}
}

func client2Do(t *testing.T, base string) error {
	t.Helper()
	client := New(Config{BaseURL: base, Tokens: &fakeTokens{}})
	return client.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
}

func TestTransportFailureIsNormalized(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1", Tokens: &fakeTokens{}})
	err := client.DoJSON(context.Background(), http.MethodGet, "/movies/1", nil, nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("transport failures carry no HTTP status, got %d", apiErr.Status)
	}
	if apiErr.Cause == nil {
		t.Fatalf("cause must be preserved")
	}
}

func TestIsStatus(t *testing.T) {
	err := NewAPIError(http.StatusNotFound, "", nil)
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("IsStatus should match 404")
	}
	if IsStatus(err, http.StatusForbidden) {
		t.Fatalf("IsStatus must not match a different status")
	}
	if IsStatus(errors.New("plain"), http.StatusNotFound) {
		t.Fatalf("plain errors are not APIErrors")
	}
}
