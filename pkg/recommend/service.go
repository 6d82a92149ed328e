// Package recommend fetches personalized recommendations, including the
// real-time websocket stream admins use to watch a computation fan out
// over the ML nodes.
package recommend

import (
	"context"

	"moviecat/pkg/domain"
)

// Params narrows a recommendation fetch.
type Params struct {
	K       int  // number of items, backend default when 0
	Refresh bool // bypass the server-side cache
}

// Service is the recommendation contract shared by both branches. The
// channel returned by Stream is closed after the terminal frame
// ("recommendations" or "error") or when ctx is cancelled; cancelling ctx
// is the teardown that releases the underlying connection.
type Service interface {
	ForMe(ctx context.Context, params Params) (domain.RecommendationResponse, error)
	ForUser(ctx context.Context, userID int, params Params) (domain.RecommendationResponse, error)
	Stream(ctx context.Context, userID, k int) (<-chan domain.StreamMessage, error)
}

// Identity supplies the signed-in user for ForMe.
type Identity interface {
	Current() (domain.User, bool)
}
