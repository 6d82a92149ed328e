package ratings

import (
	"context"
	"fmt"
	"net/http"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

// HTTPService talks to the real rating endpoints. The backend resolves
// "me" from the bearer token the pipeline attaches.
type HTTPService struct {
	client *transport.Client
}

func NewHTTPService(client *transport.Client) *HTTPService {
	return &HTTPService{client: client}
}

type ratePayload struct {
	MovieID int     `json:"movieId"`
	Rating  float64 `json:"rating"`
}

func (s *HTTPService) MyRatings(ctx context.Context) ([]domain.Rating, error) {
	var list []domain.Rating
	if err := s.client.DoJSON(ctx, http.MethodGet, "/me/ratings", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *HTTPService) Rate(ctx context.Context, movieID int, value float64) (domain.Rating, error) {
	if err := Validate(value); err != nil {
		return domain.Rating{}, err
	}
	var rating domain.Rating
	err := s.client.DoJSON(ctx, http.MethodPost, "/me/ratings", nil, ratePayload{MovieID: movieID, Rating: value}, &rating)
	if err != nil {
		return domain.Rating{}, err
	}
	return rating, nil
}

func (s *HTTPService) Delete(ctx context.Context, movieID int) error {
	return s.client.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("/me/ratings/%d", movieID), nil, nil, nil)
}

func (s *HTTPService) UserRatings(ctx context.Context, userID int) ([]domain.Rating, error) {
	var list []domain.Rating
	if err := s.client.DoJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/ratings", userID), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *HTTPService) RateForUser(ctx context.Context, userID, movieID int, value float64) (domain.Rating, error) {
	if err := Validate(value); err != nil {
		return domain.Rating{}, err
	}
	var rating domain.Rating
	err := s.client.DoJSON(ctx, http.MethodPost, fmt.Sprintf("/users/%d/ratings", userID), nil, ratePayload{MovieID: movieID, Rating: value}, &rating)
	if err != nil {
		return domain.Rating{}, err
	}
	return rating, nil
}
