package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"moviecat/pkg/domain"
)

func signToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testsecret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	storage, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("new file storage: %v", err)
	}
	return NewStore(storage), path
}

func TestPredicatesDeriveFromCell(t *testing.T) {
	store, _ := newFileStore(t)

	if store.IsAuthenticated() || store.IsAdmin() {
		t.Fatalf("empty store should be unauthenticated")
	}

	user := domain.User{UserID: 2, Email: "user@movies.com", Role: domain.RoleUser}
	if err := store.Set(user, signToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}
	if store.IsAdmin() {
		t.Fatalf("regular user must not be admin")
	}

	admin := domain.User{UserID: 1, Email: "admin@movies.com", Role: domain.RoleAdmin}
	if err := store.Set(admin, signToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	// IsAdmin implies IsAuthenticated.
	if !store.IsAdmin() || !store.IsAuthenticated() {
		t.Fatalf("admin session must satisfy both predicates")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatalf("cleared store should be unauthenticated")
	}
}

func TestRestoreSurvivesRestart(t *testing.T) {
	store, path := newFileStore(t)
	user := domain.User{UserID: 1, Email: "admin@movies.com", Role: domain.RoleAdmin}
	token := signToken(t, time.Now().Add(time.Hour))
	if err := store.Set(user, token); err != nil {
		t.Fatalf("set: %v", err)
	}

	storage, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("reopen storage: %v", err)
	}
	restarted := NewStore(storage)
	if err := restarted.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, ok := restarted.Current()
	if !ok || got.Email != "admin@movies.com" || got.Role != domain.RoleAdmin {
		t.Fatalf("restored session mismatch: %+v ok=%v", got, ok)
	}
	if restarted.Token() != token {
		t.Fatalf("restored token mismatch")
	}
}

func TestRestoreDropsExpiredToken(t *testing.T) {
	store, path := newFileStore(t)
	user := domain.User{UserID: 2, Email: "user@movies.com", Role: domain.RoleUser}
	if err := store.Set(user, signToken(t, time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("set: %v", err)
	}

	storage, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("reopen storage: %v", err)
	}
	restarted := NewStore(storage)
	if err := restarted.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restarted.IsAuthenticated() {
		t.Fatalf("expired session must not be restored")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expired session file should be wiped")
	}
}

func TestCorruptSessionFileIsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	storage, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	store := NewStore(storage)
	if err := store.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatalf("corrupt session must read as signed out")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	if TokenExpired(signToken(t, now.Add(time.Hour)), now) {
		t.Fatalf("future token should not be expired")
	}
	if !TokenExpired(signToken(t, now.Add(-time.Hour)), now) {
		t.Fatalf("past token should be expired")
	}
	// Opaque tokens are left for the backend to judge.
	if TokenExpired("not-a-jwt", now) {
		t.Fatalf("unparseable token should be kept")
	}
}
