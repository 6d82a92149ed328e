// Package adminops is the administration surface: catalog management,
// rating management across all users, external metadata import, the
// database remap job, and the dashboard stats.
package adminops

import (
	"context"

	"moviecat/pkg/domain"
)

// ManagementParams narrows the catalog management listing.
type ManagementParams struct {
	Search    string
	Genre     string
	SortBy    string // title, year, rating, popularity
	SortOrder string // asc or desc
	Limit     int
	Offset    int
}

// ManagementPage is one page of the management listing.
type ManagementPage struct {
	Movies []domain.Movie `json:"movies"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// RatingsParams narrows the all-users rating listing.
type RatingsParams struct {
	UserID    int
	MovieID   int
	MinRating float64
	MaxRating float64
	Limit     int
	Offset    int
}

// RatingsPage is one page of the all-users rating listing.
type RatingsPage struct {
	Ratings []domain.RatingWithDetails `json:"ratings"`
	Total   int                        `json:"total"`
	Limit   int                        `json:"limit"`
	Offset  int                        `json:"offset"`
}

// RatingEntry identifies a rating an admin creates or updates on behalf of
// a user.
type RatingEntry struct {
	UserID  int     `json:"userId"`
	MovieID int     `json:"movieId"`
	Rating  float64 `json:"rating"`
}

// DeleteResult is the backend's acknowledgement of a movie deletion.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RemapResult reports the outcome of a database remap run.
type RemapResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	AffectedMovies  int    `json:"affectedMovies"`
	AffectedRatings int    `json:"affectedRatings"`
	Duration        int64  `json:"duration"` // milliseconds
}

// Stats feeds the admin dashboard.
type Stats struct {
	TotalMovies     int `json:"totalMovies"`
	TotalUsers      int `json:"totalUsers"`
	TotalRatings    int `json:"totalRatings"`
	PendingRequests int `json:"pendingRequests"`
}

// Service is the administration contract shared by both branches. Access
// control lives with the caller; the backend enforces it again on the real
// branch.
type Service interface {
	Movies(ctx context.Context, params ManagementParams) (ManagementPage, error)
	CreateMovie(ctx context.Context, payload domain.MoviePayload) (domain.Movie, error)
	UpdateMovie(ctx context.Context, id int, payload domain.MoviePayload) (domain.Movie, error)
	DeleteMovie(ctx context.Context, id int) (DeleteResult, error)
	// FetchFromURL asks the backend to prefill a movie payload from an
	// external metadata page (TMDB and friends).
	FetchFromURL(ctx context.Context, url string) (domain.Movie, error)

	Ratings(ctx context.Context, params RatingsParams) (RatingsPage, error)
	CreateRating(ctx context.Context, entry RatingEntry) (domain.RatingWithDetails, error)
	UpdateRating(ctx context.Context, entry RatingEntry) (domain.RatingWithDetails, error)
	DeleteRating(ctx context.Context, userID, movieID int) error

	Remap(ctx context.Context) (RemapResult, error)
	Stats(ctx context.Context) (Stats, error)
}
