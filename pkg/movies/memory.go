package movies

import (
	"context"
	"net/http"
	"time"

	"moviecat/internal/memdb"
	"moviecat/internal/transport"
	"moviecat/internal/util"
	"moviecat/pkg/domain"
)

// MemoryService serves the in-process dataset with artificial latency, so
// callers exercise the same asynchronous paths they would against the
// backend.
type MemoryService struct {
	db      *memdb.DB
	latency time.Duration
}

func NewMemoryService(db *memdb.DB, latency time.Duration) *MemoryService {
	return &MemoryService{db: db, latency: latency}
}

func (s *MemoryService) Get(ctx context.Context, id int) (domain.Movie, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.Movie{}, err
	}
	movie, ok := s.db.Movie(id)
	if !ok {
		return domain.Movie{}, transport.NewAPIError(http.StatusNotFound, "", memdb.ErrNotFound)
	}
	return movie, nil
}

func (s *MemoryService) Search(ctx context.Context, params SearchParams) (SearchPage, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return SearchPage{}, err
	}
	page, total := s.db.SearchMovies(memdb.MovieQuery{
		Query:     params.Query,
		Genres:    params.Genres,
		MinRating: params.MinRating,
		YearFrom:  params.YearFrom,
		YearTo:    params.YearTo,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	return SearchPage{Movies: page, Total: total, Limit: params.Limit, Offset: params.Offset}, nil
}

func (s *MemoryService) Top(ctx context.Context, params TopParams) ([]domain.Movie, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.db.TopMovies(params.Genre, params.Limit, params.Offset), nil
}
