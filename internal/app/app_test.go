package app

import (
	"context"
	"path/filepath"
	"testing"

	"moviecat/internal/config"
	"moviecat/pkg/authsvc"
	"moviecat/pkg/movies"
)

func mockConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		MockData:    true,
		JWTSecret:   "testsecret",
		SessionFile: filepath.Join(t.TempDir(), "session.json"),
		LogLevel:    "error",
	}
}

func TestMockCompositionEndToEnd(t *testing.T) {
	cfg := mockConfig(t)
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	// Admin-only navigation is denied until someone signs in.
	if res := a.Routes.Resolve(a.Sessions, "/admin/management"); res.Decision.Allowed {
		t.Fatal("admin route allowed while signed out")
	}

	if _, err := a.Auth.Login(ctx, authsvc.Credentials{Email: "admin@movies.com", Password: "admin123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !a.Sessions.IsAdmin() {
		t.Fatal("admin session not installed")
	}
	if res := a.Routes.Resolve(a.Sessions, "/admin/management"); !res.Decision.Allowed {
		t.Fatalf("admin route denied: %+v", res.Decision)
	}

	// The mock services share one dataset: a rating placed through the
	// rating service is visible to the admin listing.
	page, err := a.Movies.Search(ctx, movies.SearchParams{Query: "horizonte"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("Total = %d, want 1", page.Total)
	}
	movieID := page.Movies[0].MovieID

	if _, err := a.Ratings.Rate(ctx, movieID, 4.5); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	stats, err := a.Admin.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalRatings == 0 {
		t.Fatal("admin stats see no ratings")
	}
}

func TestSessionSurvivesRecomposition(t *testing.T) {
	cfg := mockConfig(t)

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := first.Auth.Login(context.Background(), authsvc.Credentials{Email: "user@movies.com", Password: "user123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	user, ok := second.Sessions.Current()
	if !ok || user.Email != "user@movies.com" {
		t.Fatalf("restored session = %+v, %v", user, ok)
	}

	if err := second.Auth.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	third, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if third.Sessions.IsAuthenticated() {
		t.Fatal("session survived logout")
	}
}
