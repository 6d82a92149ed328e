// Package ratings covers the rating surface: the signed-in user's own
// ratings plus the per-user operations admins use.
package ratings

import (
	"context"
	"errors"
	"math"
	"net/http"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

// ErrInvalidRating marks a value outside the accepted scale.
var ErrInvalidRating = errors.New("invalid rating value")

// Service is the rating contract shared by both branches.
type Service interface {
	MyRatings(ctx context.Context) ([]domain.Rating, error)
	Rate(ctx context.Context, movieID int, value float64) (domain.Rating, error)
	Delete(ctx context.Context, movieID int) error
	UserRatings(ctx context.Context, userID int) ([]domain.Rating, error)
	RateForUser(ctx context.Context, userID, movieID int, value float64) (domain.Rating, error)
}

// Identity supplies the signed-in user for the "my" operations.
type Identity interface {
	Current() (domain.User, bool)
}

// Validate rejects values outside 0.5–5.0 or off the half-point scale,
// before any request or dataset mutation happens.
func Validate(value float64) error {
	if value < 0.5 || value > 5.0 || math.Mod(value*2, 1) != 0 {
		return transport.NewAPIError(http.StatusBadRequest,
			"Rating must be between 0.5 and 5.0 in steps of 0.5.", ErrInvalidRating)
	}
	return nil
}
