// Package movies exposes the catalog read surface: fetch by id, filtered
// search, and the popularity top list. One implementation calls the
// backend, the other serves the in-process dataset; callers cannot tell
// them apart.
package movies

import (
	"context"

	"moviecat/pkg/domain"
)

// SearchParams mirrors the backend's /movies/search query surface.
type SearchParams struct {
	Query     string
	Genres    []string
	MinRating float64
	YearFrom  int
	YearTo    int
	Limit     int
	Offset    int
}

// SearchPage is the paginated search result.
type SearchPage struct {
	Movies []domain.Movie `json:"movies"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TopParams narrows the top list.
type TopParams struct {
	Genre  string
	Limit  int
	Offset int
}

// Service is the movie catalog contract shared by both branches.
type Service interface {
	Get(ctx context.Context, id int) (domain.Movie, error)
	Search(ctx context.Context, params SearchParams) (SearchPage, error)
	Top(ctx context.Context, params TopParams) ([]domain.Movie, error)
}
