package adminops

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
	"moviecat/pkg/ratings"
)

// HTTPService talks to the real administration endpoints.
type HTTPService struct {
	client *transport.Client
}

func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

func (s *HTTPService) Movies(ctx context.Context, params ManagementParams) (ManagementPage, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Genre != "" {
		q.Set("genre", params.Genre)
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		q.Set("sortOrder", params.SortOrder)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var page ManagementPage
	if err := s.client.DoJSON(ctx, http.MethodGet, "/admin/movies", q, nil, &page); err != nil {
		return ManagementPage{}, err
	}
	return page, nil
}

func (s *HTTPService) CreateMovie(ctx context.Context, payload domain.MoviePayload) (domain.Movie, error) {
	var movie domain.Movie
	if err := s.client.DoJSON(ctx, http.MethodPost, "/admin/movies", nil, payload, &movie); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func (s *HTTPService) UpdateMovie(ctx context.Context, id int, payload domain.MoviePayload) (domain.Movie, error) {
	var movie domain.Movie
	if err := s.client.DoJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/movies/%d", id), nil, payload, &movie); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func (s *HTTPService) DeleteMovie(ctx context.Context, id int) (DeleteResult, error) {
	var result DeleteResult
	if err := s.client.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/movies/%d", id), nil, nil, &result); err != nil {
		return DeleteResult{}, err
	}
	return result, nil
}

func (s *HTTPService) FetchFromURL(ctx context.Context, pageURL string) (domain.Movie, error) {
	payload := map[string]string{"url": pageURL}
	var movie domain.Movie
	if err := s.client.DoJSON(ctx, http.MethodPost, "/admin/movies/fetch-from-url", nil, payload, &movie); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func (s *HTTPService) Ratings(ctx context.Context, params RatingsParams) (RatingsPage, error) {
	q := url.Values{}
	if params.UserID > 0 {
		q.Set("userId", strconv.Itoa(params.UserID))
	}
	if params.MovieID > 0 {
		q.Set("movieId", strconv.Itoa(params.MovieID))
	}
	if params.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(params.MinRating, 'f', -1, 64))
	}
	if params.MaxRating > 0 {
		q.Set("maxRating", strconv.FormatFloat(params.MaxRating, 'f', -1, 64))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var page RatingsPage
	if err := s.client.DoJSON(ctx, http.MethodGet, "/admin/ratings", q, nil, &page); err != nil {
		return RatingsPage{}, err
	}
	return page, nil
}

func (s *HTTPService) CreateRating(ctx context.Context, entry RatingEntry) (domain.RatingWithDetails, error) {
	if err := ratings.Validate(entry.Rating); err != nil {
		return domain.RatingWithDetails{}, err
	}
	var out domain.RatingWithDetails
	if err := s.client.DoJSON(ctx, http.MethodPost, "/admin/ratings", nil, entry, &out); err != nil {
		return domain.RatingWithDetails{}, err
	}
	return out, nil
}

func (s *HTTPService) UpdateRating(ctx context.Context, entry RatingEntry) (domain.RatingWithDetails, error) {
	if err := ratings.Validate(entry.Rating); err != nil {
		return domain.RatingWithDetails{}, err
	}
	var out domain.RatingWithDetails
	if err := s.client.DoJSON(ctx, http.MethodPut, "/admin/ratings", nil, entry, &out); err != nil {
		return domain.RatingWithDetails{}, err
	}
	return out, nil
}

func (s *HTTPService) DeleteRating(ctx context.Context, userID, movieID int) error {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))
	q.Set("movieId", strconv.Itoa(movieID))
	return s.client.DoJSON(ctx, http.MethodDelete, "/admin/ratings", q, nil, nil)
}

func (s *HTTPService) Remap(ctx context.Context) (RemapResult, error) {
	var result RemapResult
	if err := s.client.DoJSON(ctx, http.MethodPost, "/admin/remap-database", nil, struct{}{}, &result); err != nil {
		return RemapResult{}, err
	}
	return result, nil
}

func (s *HTTPService) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.client.DoJSON(ctx, http.MethodGet, "/admin/stats", nil, nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
