package authsvc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"moviecat/internal/fixtures"
	"moviecat/internal/transport"
	"moviecat/internal/util"
	"moviecat/pkg/domain"
)

const tokenTTL = 24 * time.Hour

type account struct {
	user domain.User
	hash []byte
}

// MemoryService authenticates against the fixture accounts. Passwords are
// bcrypt-hashed at construction and tokens are real HS256 JWTs minted with
// the configured secret, so expiry handling behaves exactly as it does
// against the backend.
type MemoryService struct {
	sessions Sessions
	secret   []byte
	latency  time.Duration

	mu       sync.Mutex
	accounts map[string]*account
	nextID   int
}

func NewMemoryService(sessions Sessions, secret string, latency time.Duration) (*MemoryService, error) {
	svc := &MemoryService{
		sessions: sessions,
		secret:   []byte(secret),
		latency:  latency,
		accounts: make(map[string]*account),
		nextID:   1,
	}
	for _, cred := range fixtures.Users() {
		hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash fixture password: %w", err)
		}
		svc.accounts[cred.User.Email] = &account{user: cred.User, hash: hash}
		if cred.User.UserID >= svc.nextID {
			svc.nextID = cred.User.UserID + 1
		}
	}
	return svc, nil
}

func (s *MemoryService) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return LoginResult{}, err
	}

	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(creds.Email)]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)) != nil {
		return LoginResult{}, transport.NewAPIError(http.StatusUnauthorized, "", nil)
	}

	token, err := s.mint(acct.user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("mint token: %w", err)
	}
	if err := s.sessions.Set(acct.user, token); err != nil {
		return LoginResult{}, fmt.Errorf("save session: %w", err)
	}
	return LoginResult{Token: token, User: acct.user}, nil
}

func (s *MemoryService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.User{}, err
	}
	email := strings.ToLower(reg.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, transport.NewAPIError(http.StatusBadRequest, "A valid email is required.", nil)
	}
	if len(reg.Password) < 6 {
		return domain.User{}, transport.NewAPIError(http.StatusBadRequest, "Password must be at least 6 characters.", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		return domain.User{}, transport.NewAPIError(http.StatusConflict, "An account with this email already exists.", nil)
	}
	user := domain.User{UserID: s.nextID, Email: email, Role: domain.RoleUser, CreatedAt: time.Now()}
	s.nextID++
	s.accounts[email] = &account{user: user, hash: hash}
	return user, nil
}

func (s *MemoryService) UpdateUser(ctx context.Context, id int, update UserUpdate) (domain.User, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for email, acct := range s.accounts {
		if acct.user.UserID != id {
			continue
		}
		if update.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
			if err != nil {
				return domain.User{}, fmt.Errorf("hash password: %w", err)
			}
			acct.hash = hash
		}
		if update.Role != "" {
			acct.user.Role = update.Role
		}
		if update.Email != "" && strings.ToLower(update.Email) != email {
			newEmail := strings.ToLower(update.Email)
			if _, exists := s.accounts[newEmail]; exists {
				return domain.User{}, transport.NewAPIError(http.StatusConflict, "An account with this email already exists.", nil)
			}
			delete(s.accounts, email)
			acct.user.Email = newEmail
			s.accounts[newEmail] = acct
		}
		acct.user.UpdatedAt = time.Now()
		return acct.user, nil
	}
	return domain.User{}, transport.NewAPIError(http.StatusNotFound, "", nil)
}

func (s *MemoryService) Logout() error {
	return s.sessions.Clear()
}

func (s *MemoryService) mint(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(user.UserID),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
