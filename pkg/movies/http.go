package movies

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

// HTTPService talks to the real catalog backend.
type HTTPService struct {
	client *transport.Client
}

func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

func (s *HTTPService) Get(ctx context.Context, id int) (domain.Movie, error) {
	var movie domain.Movie
	if err := s.client.DoJSON(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, nil, &movie); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func (s *HTTPService) Search(ctx context.Context, params SearchParams) (SearchPage, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if len(params.Genres) > 0 {
		q.Set("genres", strings.Join(params.Genres, ","))
	}
	if params.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(params.MinRating, 'f', -1, 64))
	}
	if params.YearFrom > 0 {
		q.Set("yearFrom", strconv.Itoa(params.YearFrom))
	}
	if params.YearTo > 0 {
		q.Set("yearTo", strconv.Itoa(params.YearTo))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var page SearchPage
	if err := s.client.DoJSON(ctx, http.MethodGet, "/movies/search", q, nil, &page); err != nil {
		return SearchPage{}, err
	}
	return page, nil
}

func (s *HTTPService) Top(ctx context.Context, params TopParams) ([]domain.Movie, error) {
	q := url.Values{}
	if params.Genre != "" {
		q.Set("genre", params.Genre)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var list []domain.Movie
	if err := s.client.DoJSON(ctx, http.MethodGet, "/movies/top", q, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
