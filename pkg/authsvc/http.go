package authsvc

import (
	"context"
	"fmt"
	"net/http"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

// HTTPService authenticates against the real backend.
type HTTPService struct {
	client   *transport.Client
	sessions Sessions
}

func NewHTTPService(client *transport.Client, sessions Sessions) *HTTPService {
	return &HTTPService{client: client, sessions: sessions}
}

func (s *HTTPService) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var result LoginResult
	if err := s.client.DoJSON(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return LoginResult{}, err
	}
	if err := s.sessions.Set(result.User, result.Token); err != nil {
		return LoginResult{}, fmt.Errorf("save session: %w", err)
	}
	return result, nil
}

func (s *HTTPService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	var user domain.User
	if err := s.client.DoJSON(ctx, http.MethodPost, "/auth/register", nil, reg, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *HTTPService) UpdateUser(ctx context.Context, id int, update UserUpdate) (domain.User, error) {
	var user domain.User
	if err := s.client.DoJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/update", id), nil, update, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *HTTPService) Logout() error {
	return s.sessions.Clear()
}
