package requests

import (
	"context"
	"errors"
	"net/http"
	"time"

	"moviecat/internal/memdb"
	"moviecat/internal/transport"
	"moviecat/internal/util"
	"moviecat/pkg/domain"
)

// MemoryService runs the request workflow against the in-process dataset.
// Approving an add request inserts the proposed movie into the catalog;
// approving an edit applies the payload to the existing entry.
type MemoryService struct {
	db       *memdb.DB
	identity Identity
	latency  time.Duration
}

func NewMemoryService(db *memdb.DB, identity Identity, latency time.Duration) *MemoryService {
	return &MemoryService{db: db, identity: identity, latency: latency}
}

func (s *MemoryService) currentUser() (domain.User, error) {
	user, ok := s.identity.Current()
	if !ok {
		return domain.User{}, transport.NewAPIError(http.StatusUnauthorized, "", nil)
	}
	return user, nil
}

func (s *MemoryService) Create(ctx context.Context, draft Draft) (domain.MovieRequest, error) {
	user, err := s.currentUser()
	if err != nil {
		return domain.MovieRequest{}, err
	}
	if draft.Type != domain.RequestAdd && draft.Type != domain.RequestEdit {
		return domain.MovieRequest{}, transport.NewAPIError(http.StatusBadRequest, "Unknown request type.", nil)
	}
	if draft.Type == domain.RequestEdit {
		if _, ok := s.db.Movie(draft.MovieID); !ok {
			return domain.MovieRequest{}, transport.NewAPIError(http.StatusNotFound, "", memdb.ErrNotFound)
		}
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.MovieRequest{}, err
	}
	return s.db.InsertRequest(user.UserID, draft.Type, draft.MovieID, draft.Movie, time.Now()), nil
}

func (s *MemoryService) Mine(ctx context.Context) ([]domain.MovieRequest, error) {
	user, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.db.RequestsByUser(user.UserID), nil
}

func (s *MemoryService) All(ctx context.Context, status domain.RequestStatus) ([]domain.MovieRequest, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.db.Requests(status), nil
}

func (s *MemoryService) Approve(ctx context.Context, id int, note string) (domain.MovieRequest, error) {
	reviewer, err := s.currentUser()
	if err != nil {
		return domain.MovieRequest{}, err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.MovieRequest{}, err
	}
	// Approval and the catalog change commit together: an edit whose
	// target movie has been deleted fails and leaves the request pending.
	req, err := s.db.ApproveRequest(id, reviewer.UserID, note, time.Now())
	if err != nil {
		return domain.MovieRequest{}, resolveError(err)
	}
	return req, nil
}

func (s *MemoryService) Reject(ctx context.Context, id int, note string) (domain.MovieRequest, error) {
	reviewer, err := s.currentUser()
	if err != nil {
		return domain.MovieRequest{}, err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.MovieRequest{}, err
	}
	req, err := s.db.ResolveRequest(id, domain.RequestRejected, reviewer.UserID, note, time.Now())
	if err != nil {
		return domain.MovieRequest{}, resolveError(err)
	}
	return req, nil
}

func resolveError(err error) error {
	switch {
	case errors.Is(err, memdb.ErrAlreadyResolved):
		return transport.NewAPIError(http.StatusConflict, "Request has already been resolved.", err)
	case errors.Is(err, memdb.ErrNotFound):
		return transport.NewAPIError(http.StatusNotFound, "", err)
	}
	return err
}
