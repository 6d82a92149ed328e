package ratings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviecat/internal/fixtures"
	"moviecat/internal/memdb"
	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

type fakeIdentity struct {
	user domain.User
	ok   bool
}

func (f fakeIdentity) Current() (domain.User, bool) { return f.user, f.ok }

func signedIn(id int) fakeIdentity {
	return fakeIdentity{user: domain.User{UserID: id, Role: domain.RoleUser}, ok: true}
}

func newMemory(identity Identity) *MemoryService {
	return NewMemoryService(memdb.New(fixtures.Movies(), fixtures.Ratings()), identity, 0)
}

func TestValidateScale(t *testing.T) {
	cases := []struct {
		value float64
		ok    bool
	}{
		{0.5, true},
		{3.5, true},
		{5.0, true},
		{0.3, false},
		{5.5, false},
		{0, false},
		{-1, false},
		{3.7, false},
	}
	for _, tc := range cases {
		err := Validate(tc.value)
		if tc.ok && err != nil {
			t.Errorf("Validate(%v) = %v, want nil", tc.value, err)
		}
		if !tc.ok && !transport.IsStatus(err, http.StatusBadRequest) {
			t.Errorf("Validate(%v) = %v, want 400-shaped error", tc.value, err)
		}
	}
}

func TestMemoryRateUpserts(t *testing.T) {
	svc := newMemory(signedIn(1))
	ctx := context.Background()

	before, err := svc.MyRatings(ctx)
	if err != nil {
		t.Fatalf("MyRatings: %v", err)
	}

	// User 1 already rated movie 1; re-rating replaces, never duplicates.
	rating, err := svc.Rate(ctx, 1, 2.5)
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rating.Rating != 2.5 {
		t.Fatalf("Rating = %v", rating.Rating)
	}

	after, err := svc.MyRatings(ctx)
	if err != nil {
		t.Fatalf("MyRatings: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("rating count changed %d -> %d on upsert", len(before), len(after))
	}
	for _, r := range after {
		if r.MovieID == 1 && r.Rating != 2.5 {
			t.Fatalf("movie 1 rating = %v, want 2.5", r.Rating)
		}
	}
}

func TestMemoryRateRejectsBeforeMutation(t *testing.T) {
	svc := newMemory(signedIn(1))

	if _, err := svc.Rate(context.Background(), 1, 5.5); !transport.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("err = %v, want 400", err)
	}
	mine, _ := svc.MyRatings(context.Background())
	for _, r := range mine {
		if r.MovieID == 1 && r.Rating == 5.5 {
			t.Fatal("invalid rating reached the dataset")
		}
	}
}

func TestMemoryRateUnknownMovie(t *testing.T) {
	svc := newMemory(signedIn(1))
	if _, err := svc.Rate(context.Background(), 999, 3.0); !transport.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestMemoryRequiresSession(t *testing.T) {
	svc := newMemory(fakeIdentity{})
	if _, err := svc.MyRatings(context.Background()); !transport.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	svc := newMemory(signedIn(1))
	ctx := context.Background()

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, 1); !transport.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("second delete err = %v, want 404", err)
	}
}

type noTokens struct{}

func (noTokens) Token() string { return "" }

func TestHTTPRatePayload(t *testing.T) {
	var got ratePayload
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/me/ratings" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(domain.Rating{UserID: 1, MovieID: got.MovieID, Rating: got.Rating})
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}))
	rating, err := svc.Rate(context.Background(), 7, 4.5)
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if got.MovieID != 7 || got.Rating != 4.5 {
		t.Fatalf("payload = %+v", got)
	}
	if rating.Rating != 4.5 {
		t.Fatalf("rating = %+v", rating)
	}
}

func TestHTTPRateValidatesLocally(t *testing.T) {
	called := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}))
	if _, err := svc.Rate(context.Background(), 1, 0.3); !transport.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("err = %v, want 400", err)
	}
	if called {
		t.Fatal("invalid rating was sent to the backend")
	}
}

func TestHTTPDeletePath(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/me/ratings/12" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}))
	if err := svc.Delete(context.Background(), 12); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestHTTPRateForUserPath(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/4/ratings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.Rating{UserID: 4, MovieID: 3, Rating: 4.0})
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}))
	rating, err := svc.RateForUser(context.Background(), 4, 3, 4.0)
	if err != nil {
		t.Fatalf("RateForUser: %v", err)
	}
	if rating.UserID != 4 {
		t.Fatalf("rating = %+v", rating)
	}
}
