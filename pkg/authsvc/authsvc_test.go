package authsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
	"moviecat/pkg/session"
)

type fakeSessions struct {
	user  domain.User
	token string
	set   bool
}

func (f *fakeSessions) Set(user domain.User, token string) error {
	f.user, f.token, f.set = user, token, true
	return nil
}

func (f *fakeSessions) Clear() error {
	f.user, f.token, f.set = domain.User{}, "", false
	return nil
}

func newMemory(t *testing.T, sessions Sessions) *MemoryService {
	t.Helper()
	svc, err := NewMemoryService(sessions, "testsecret", 0)
	if err != nil {
		t.Fatalf("NewMemoryService: %v", err)
	}
	return svc
}

func TestMemoryLoginInstallsSession(t *testing.T) {
	cell := &fakeSessions{}
	svc := newMemory(t, cell)

	result, err := svc.Login(context.Background(), Credentials{Email: "admin@movies.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", result.User.Role)
	}
	if !cell.set || cell.token != result.Token {
		t.Fatalf("session cell = %+v", cell)
	}
	// Minted tokens carry a future expiry.
	if session.TokenExpired(result.Token, time.Now()) {
		t.Fatal("fresh token reports expired")
	}
	if !session.TokenExpired(result.Token, time.Now().Add(25*time.Hour)) {
		t.Fatal("token should expire after its TTL")
	}
}

func TestMemoryLoginRejectsBadCredentials(t *testing.T) {
	cell := &fakeSessions{}
	svc := newMemory(t, cell)
	ctx := context.Background()

	if _, err := svc.Login(ctx, Credentials{Email: "admin@movies.com", Password: "wrong"}); !transport.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("wrong password err = %v, want 401", err)
	}
	if _, err := svc.Login(ctx, Credentials{Email: "nobody@movies.com", Password: "admin123"}); !transport.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("unknown email err = %v, want 401", err)
	}
	if cell.set {
		t.Fatal("failed login must not install a session")
	}
}

func TestMemoryRegisterThenLogin(t *testing.T) {
	cell := &fakeSessions{}
	svc := newMemory(t, cell)
	ctx := context.Background()

	user, err := svc.Register(ctx, Registration{Email: "New@Movies.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "new@movies.com" || user.Role != domain.RoleUser {
		t.Fatalf("user = %+v", user)
	}
	if user.UserID != 5 {
		t.Fatalf("UserID = %d, want 5", user.UserID)
	}
	if cell.set {
		t.Fatal("registering must not sign in")
	}

	if _, err := svc.Login(ctx, Credentials{Email: "new@movies.com", Password: "secret1"}); err != nil {
		t.Fatalf("Login after register: %v", err)
	}

	if _, err := svc.Register(ctx, Registration{Email: "new@movies.com", Password: "secret2"}); !transport.IsStatus(err, http.StatusConflict) {
		t.Fatalf("duplicate register err = %v, want 409", err)
	}
}

func TestMemoryRegisterValidation(t *testing.T) {
	svc := newMemory(t, &fakeSessions{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "not-an-email", Password: "secret1"}); !transport.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("bad email err = %v, want 400", err)
	}
	if _, err := svc.Register(ctx, Registration{Email: "ok@movies.com", Password: "short"}); !transport.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("short password err = %v, want 400", err)
	}
}

func TestMemoryUpdateUser(t *testing.T) {
	svc := newMemory(t, &fakeSessions{})
	ctx := context.Background()

	user, err := svc.UpdateUser(ctx, 2, UserUpdate{Role: domain.RoleAdmin, Password: "newpass1"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", user.Role)
	}

	// Old password no longer works, new one does.
	if _, err := svc.Login(ctx, Credentials{Email: "user@movies.com", Password: "user123"}); !transport.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("old password err = %v, want 401", err)
	}
	if _, err := svc.Login(ctx, Credentials{Email: "user@movies.com", Password: "newpass1"}); err != nil {
		t.Fatalf("new password login: %v", err)
	}

	if _, err := svc.UpdateUser(ctx, 99, UserUpdate{Role: domain.RoleUser}); !transport.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("unknown user err = %v, want 404", err)
	}
}

func TestMemoryLogoutClearsSession(t *testing.T) {
	cell := &fakeSessions{}
	svc := newMemory(t, cell)

	if _, err := svc.Login(context.Background(), Credentials{Email: "user@movies.com", Password: "user123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if cell.set {
		t.Fatal("session still present after logout")
	}
}

func TestHTTPLoginInstallsSession(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "admin@movies.com" {
			t.Errorf("email = %q", creds.Email)
		}
		json.NewEncoder(w).Encode(LoginResult{
			Token: "server-token",
			User:  domain.User{UserID: 1, Email: creds.Email, Role: domain.RoleAdmin},
		})
	}))
	defer backend.Close()

	cell := &fakeSessions{}
	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}), cell)

	result, err := svc.Login(context.Background(), Credentials{Email: "admin@movies.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "server-token" || cell.token != "server-token" {
		t.Fatalf("result = %+v, cell = %+v", result, cell)
	}
}

func TestHTTPLoginFailureLeavesSessionAlone(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer backend.Close()

	cell := &fakeSessions{}
	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}), cell)

	if _, err := svc.Login(context.Background(), Credentials{Email: "x@y.z", Password: "nope"}); !transport.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401", err)
	}
	if cell.set {
		t.Fatal("failed login must not install a session")
	}
}

func TestHTTPUpdateUserPath(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/4/update" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.User{UserID: 4, Email: "jane.smith@movies.com", Role: domain.RoleAdmin})
	}))
	defer backend.Close()

	svc := NewHTTPService(transport.New(transport.Config{BaseURL: backend.URL, Tokens: noTokens{}}), &fakeSessions{})
	user, err := svc.UpdateUser(context.Background(), 4, UserUpdate{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("user = %+v", user)
	}
}

type noTokens struct{}

func (noTokens) Token() string { return "" }
