package ratings

import (
	"context"
	"net/http"
	"time"

	"moviecat/internal/memdb"
	"moviecat/internal/transport"
	"moviecat/internal/util"
	"moviecat/pkg/domain"
)

// MemoryService serves ratings from the in-process dataset, resolving the
// "my" operations against the current session.
type MemoryService struct {
	db       *memdb.DB
	identity Identity
	latency  time.Duration
}

func NewMemoryService(db *memdb.DB, identity Identity, latency time.Duration) *MemoryService {
	return &MemoryService{db: db, identity: identity, latency: latency}
}

func (s *MemoryService) currentUserID() (int, error) {
	user, ok := s.identity.Current()
	if !ok {
		return 0, transport.NewAPIError(http.StatusUnauthorized, "", nil)
	}
	return user.UserID, nil
}

func (s *MemoryService) MyRatings(ctx context.Context) ([]domain.Rating, error) {
	userID, err := s.currentUserID()
	if err != nil {
		return nil, err
	}
	return s.UserRatings(ctx, userID)
}

func (s *MemoryService) Rate(ctx context.Context, movieID int, value float64) (domain.Rating, error) {
	userID, err := s.currentUserID()
	if err != nil {
		return domain.Rating{}, err
	}
	return s.RateForUser(ctx, userID, movieID, value)
}

func (s *MemoryService) Delete(ctx context.Context, movieID int) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return err
	}
	if !s.db.DeleteRating(userID, movieID) {
		return transport.NewAPIError(http.StatusNotFound, "", memdb.ErrNotFound)
	}
	return nil
}

func (s *MemoryService) UserRatings(ctx context.Context, userID int) ([]domain.Rating, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.db.RatingsByUser(userID), nil
}

func (s *MemoryService) RateForUser(ctx context.Context, userID, movieID int, value float64) (domain.Rating, error) {
	if err := Validate(value); err != nil {
		return domain.Rating{}, err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.Rating{}, err
	}
	if _, ok := s.db.Movie(movieID); !ok {
		return domain.Rating{}, transport.NewAPIError(http.StatusNotFound, "", memdb.ErrNotFound)
	}
	return s.db.UpsertRating(userID, movieID, value, time.Now().Unix()), nil
}
