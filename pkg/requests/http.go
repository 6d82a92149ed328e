package requests

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

// HTTPService talks to the real movie-request endpoints.
type HTTPService struct {
	client *transport.Client
}

func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

type reviewPayload struct {
	Note string `json:"note,omitempty"`
}

func (s *HTTPService) Create(ctx context.Context, draft Draft) (domain.MovieRequest, error) {
	var req domain.MovieRequest
	if err := s.client.DoJSON(ctx, http.MethodPost, "/me/movie-requests", nil, draft, &req); err != nil {
		return domain.MovieRequest{}, err
	}
	return req, nil
}

func (s *HTTPService) Mine(ctx context.Context) ([]domain.MovieRequest, error) {
	var list []domain.MovieRequest
	if err := s.client.DoJSON(ctx, http.MethodGet, "/me/movie-requests", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *HTTPService) All(ctx context.Context, status domain.RequestStatus) ([]domain.MovieRequest, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var list []domain.MovieRequest
	if err := s.client.DoJSON(ctx, http.MethodGet, "/admin/movie-requests", q, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *HTTPService) Approve(ctx context.Context, id int, note string) (domain.MovieRequest, error) {
	return s.resolve(ctx, id, "approve", note)
}

func (s *HTTPService) Reject(ctx context.Context, id int, note string) (domain.MovieRequest, error) {
	return s.resolve(ctx, id, "reject", note)
}

func (s *HTTPService) resolve(ctx context.Context, id int, action, note string) (domain.MovieRequest, error) {
	var req domain.MovieRequest
	path := fmt.Sprintf("/admin/movie-requests/%d/%s", id, action)
	if err := s.client.DoJSON(ctx, http.MethodPost, path, nil, reviewPayload{Note: note}, &req); err != nil {
		return domain.MovieRequest{}, err
	}
	return req, nil
}
