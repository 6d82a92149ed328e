package requests

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

func asUser(id int) fakeIdentity {
	return fakeIdentity{user: domain.User{UserID: id, Role: domain.RoleUser}, ok: true}
}

func asAdmin(id int) fakeIdentity {
	return fakeIdentity{user: domain.User{UserID: id, Role: domain.RoleAdmin}, ok: true}
}

func TestMemoryLifecycle(t *testing.T) {
	db := memdb.New(fixtures.Movies(), fixtures.Ratings())
	ctx := context.Background()

	userSvc := NewMemoryService(db, asUser(2), 0)
	adminSvc := NewMemoryService(db, asAdmin(1), 0)

	created, err := userSvc.Create(ctx, Draft{
		Type:  domain.RequestAdd,
		Movie: domain.MoviePayload{Title: "Nueva Película", Year: 2025, Genres: []string{"Drama"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.RequestPending || created.UserID != 2 {
		t.Fatalf("created = %+v", created)
	}

	mine, err := userSvc.Mine(ctx)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].RequestID != created.RequestID {
		t.Fatalf("mine = %+v", mine)
	}

	before := db.MovieCount()
	approved, err := adminSvc.Approve(ctx, created.RequestID, "looks good")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.RequestApproved || approved.ReviewedBy != 1 || approved.ReviewNote != "looks good" {
		t.Fatalf("approved = %+v", approved)
	}
	if db.MovieCount() != before+1 {
		t.Fatal("approving an add request should insert the movie")
	}

	// Resolution is terminal.
	if _, err := adminSvc.Reject(ctx, created.RequestID, "changed my mind"); !transport.IsStatus(err, http.StatusConflict) {
		t.Fatalf("re-resolution err = %v, want 409", err)
	}
}

func TestMemoryApproveEditAppliesPayload(t *testing.T) {
	db := memdb.New(fixtures.Movies(), nil)
	ctx := context.Background()

	userSvc := NewMemoryService(db, asUser(3), 0)
	adminSvc := NewMemoryService(db, asAdmin(1), 0)

	created, err := userSvc.Create(ctx, Draft{
		Type:    domain.RequestEdit,
		MovieID: 3,
		Movie:   domain.MoviePayload{Year: 2024},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := adminSvc.Approve(ctx, created.RequestID, ""); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	movie, _ := db.Movie(3)
	if movie.Year != 2024 {
		t.Fatalf("Year = %d, want 2024", movie.Year)
	}
}

func TestMemoryApproveEditDeletedTargetStaysPending(t *testing.T) {
	db := memdb.New(fixtures.Movies(), nil)
	ctx := context.Background()

	userSvc := NewMemoryService(db, asUser(3), 0)
	adminSvc := NewMemoryService(db, asAdmin(1), 0)

	created, err := userSvc.Create(ctx, Draft{
		Type:    domain.RequestEdit,
		MovieID: 3,
		Movie:   domain.MoviePayload{Year: 2024},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.DeleteMovie(3); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}

	if _, err := adminSvc.Approve(ctx, created.RequestID, ""); !transport.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want 404", err)
	}

	// The failed approval must not consume the request.
	mine, err := userSvc.Mine(ctx)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != domain.RequestPending {
		t.Fatalf("mine = %+v, want still pending", mine)
	}
}

func TestMemoryCreateEditUnknownMovie(t *testing.T) {
	svc := NewMemoryService(memdb.New(fixtures.Movies(), nil), asUser(2), 0)
	_, err := svc.Create(context.Background(), Draft{Type: domain.RequestEdit, MovieID: 999})
	if !transport.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestMemoryMineIsScoped(t *testing.T) {
	db := memdb.New(fixtures.Movies(), nil)
	ctx := context.Background()

	a := NewMemoryService(db, asUser(2), 0)
	b := NewMemoryService(db, asUser(3), 0)

	if _, err := a.Create(ctx, Draft{Type: domain.RequestAdd, Movie: domain.MoviePayload{Title: "A"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := b.Create(ctx, Draft{Type: domain.RequestAdd, Movie: domain.MoviePayload{Title: "B"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := b.Mine(ctx)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Movie.Title != "B" {
		t.Fatalf("mine = %+v", mine)
	}

	all, err := b.All(ctx, "")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	pending, err := b.All(ctx, domain.RequestPending)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
}

type noTokens struct{}

func (noTokens) Token() string { return "" }

func TestHTTPCreateAndResolvePaths(t *testing.T) {
	var sawCreate, sawApprove bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/me/movie-requests":
			sawCreate = true
			var draft Draft
			json.NewDecoder(r.Body).Decode(&draft)
			json.NewEncoder(w).Encode(domain.MovieRequest{RequestID: 7, Type: draft.Type, Status: domain.RequestPending})
		case r.Method == http.MethodPost && r.URL.Path == "/admin/movie-requests/7/approve":
			sawApprove = true
			var review reviewPayload
			json.NewDecoder(r.Body).Decode(&review)
			if review.Note != "ok" {
				t.Errorf("note = %q", review.Note)
			}
			json.NewEncoder(w).Encode(domain.MovieRequest{RequestID: 7, Status: domain.RequestApproved})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}))
	ctx := context.Background()

	created, err := svc.Create(ctx, Draft{Type: domain.RequestAdd, Movie: domain.MoviePayload{Title: "X"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.RequestID != 7 {
		t.Fatalf("created = %+v", created)
	}

	approved, err := svc.Approve(ctx, 7, "ok")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.RequestApproved {
		t.Fatalf("approved = %+v", approved)
	}
	if !sawCreate || !sawApprove {
		t.Fatalf("backend saw create=%v approve=%v", sawCreate, sawApprove)
	}
}

func TestHTTPAllStatusFilter(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/movie-requests" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("status = %q", got)
		}
		json.NewEncoder(w).Encode([]domain.MovieRequest{{RequestID: 1, Status: domain.RequestPending}})
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}))
	list, err := svc.All(context.Background(), domain.RequestPending)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %+v", list)
	}
}
