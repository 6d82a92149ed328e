// Package requests handles the movie-request workflow: users file add or
// edit proposals, admins resolve them. A request is resolved exactly once.
package requests

import (
	"context"

	"moviecat/pkg/domain"
)

// Draft is a new request as submitted by the user.
type Draft struct {
	Type    domain.RequestType  `json:"type"`
	MovieID int                 `json:"movieId,omitempty"` // edit requests only
	Movie   domain.MoviePayload `json:"movie"`
}

// Service is the movie-request contract shared by both branches.
type Service interface {
	Create(ctx context.Context, draft Draft) (domain.MovieRequest, error)
	Mine(ctx context.Context) ([]domain.MovieRequest, error)
	// All lists every request, optionally narrowed to one status. Admin only.
	All(ctx context.Context, status domain.RequestStatus) ([]domain.MovieRequest, error)
	Approve(ctx context.Context, id int, note string) (domain.MovieRequest, error)
	Reject(ctx context.Context, id int, note string) (domain.MovieRequest, error)
}

// Identity supplies the signed-in user: the submitter for Create/Mine, the
// reviewer for Approve/Reject.
type Identity interface {
	Current() (domain.User, bool)
}
