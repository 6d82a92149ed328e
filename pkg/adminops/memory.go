package adminops

import (
	"context"
	"net/http"
	"time"

	"moviecat/internal/memdb"
	"moviecat/internal/transport"
	"moviecat/internal/util"
	"moviecat/pkg/domain"
	"moviecat/pkg/ratings"
)

// MemoryService administers the in-process dataset. It shares the DB with
// the other mock services, so a movie created here is immediately visible
// to catalog searches.
type MemoryService struct {
	db        *memdb.DB
	userCount int
	latency   time.Duration
}

func NewMemoryService(db *memdb.DB, userCount int, latency time.Duration) *MemoryService {
	return &MemoryService{db: db, userCount: userCount, latency: latency}
}

func (s *MemoryService) Movies(ctx context.Context, params ManagementParams) (ManagementPage, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return ManagementPage{}, err
	}
	q := memdb.MovieQuery{
		Query:    params.Search,
		SortBy:   params.SortBy,
		SortDesc: params.SortOrder == "desc",
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.Genre != "" {
		q.Genres = []string{params.Genre}
	}
	page, total := s.db.SearchMovies(q)
	return ManagementPage{Movies: page, Total: total, Limit: params.Limit, Offset: params.Offset}, nil
}

func (s *MemoryService) CreateMovie(ctx context.Context, payload domain.MoviePayload) (domain.Movie, error) {
	if payload.Title == "" {
		return domain.Movie{}, transport.NewAPIError(http.StatusBadRequest, "Title is required.", nil)
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.Movie{}, err
	}
	return s.db.InsertMovie(payload, time.Now()), nil
}

func (s *MemoryService) UpdateMovie(ctx context.Context, id int, payload domain.MoviePayload) (domain.Movie, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.Movie{}, err
	}
	movie, err := s.db.UpdateMovie(id, payload, time.Now())
	if err != nil {
		return domain.Movie{}, transport.NewAPIError(http.StatusNotFound, "", err)
	}
	return movie, nil
}

func (s *MemoryService) DeleteMovie(ctx context.Context, id int) (DeleteResult, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return DeleteResult{}, err
	}
	if err := s.db.DeleteMovie(id); err != nil {
		return DeleteResult{}, transport.NewAPIError(http.StatusNotFound, "", err)
	}
	return DeleteResult{Success: true, Message: "Movie deleted successfully"}, nil
}

func (s *MemoryService) FetchFromURL(ctx context.Context, pageURL string) (domain.Movie, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.Movie{}, err
	}
	// Canned import; the real branch scrapes the metadata page server-side.
	return domain.Movie{
		MovieID: s.db.MovieCount() + 1000,
		Title:   "Imported Movie",
		Year:    time.Now().Year(),
		Genres:  []string{"Drama", "Action"},
		Links:   &domain.Links{TMDB: pageURL},
		ExternalData: &domain.ExternalData{
			PosterURL: "https://via.placeholder.com/500x750",
			Overview:  "Movie imported from an external metadata page.",
			Director:  "Unknown",
			Runtime:   120,
		},
	}, nil
}

func (s *MemoryService) Ratings(ctx context.Context, params RatingsParams) (RatingsPage, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return RatingsPage{}, err
	}
	page, total := s.db.Ratings(memdb.RatingFilter{
		UserID:    params.UserID,
		MovieID:   params.MovieID,
		MinRating: params.MinRating,
		MaxRating: params.MaxRating,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	return RatingsPage{Ratings: page, Total: total, Limit: params.Limit, Offset: params.Offset}, nil
}

func (s *MemoryService) CreateRating(ctx context.Context, entry RatingEntry) (domain.RatingWithDetails, error) {
	if err := ratings.Validate(entry.Rating); err != nil {
		return domain.RatingWithDetails{}, err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.RatingWithDetails{}, err
	}
	if _, ok := s.db.Movie(entry.MovieID); !ok {
		return domain.RatingWithDetails{}, transport.NewAPIError(http.StatusNotFound, "", memdb.ErrNotFound)
	}
	s.db.UpsertRating(entry.UserID, entry.MovieID, entry.Rating, time.Now().Unix())
	return s.ratingDetails(entry.UserID, entry.MovieID)
}

func (s *MemoryService) UpdateRating(ctx context.Context, entry RatingEntry) (domain.RatingWithDetails, error) {
	if err := ratings.Validate(entry.Rating); err != nil {
		return domain.RatingWithDetails{}, err
	}
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.RatingWithDetails{}, err
	}
	if _, err := s.ratingDetails(entry.UserID, entry.MovieID); err != nil {
		return domain.RatingWithDetails{}, err
	}
	s.db.UpsertRating(entry.UserID, entry.MovieID, entry.Rating, time.Now().Unix())
	return s.ratingDetails(entry.UserID, entry.MovieID)
}

func (s *MemoryService) DeleteRating(ctx context.Context, userID, movieID int) error {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return err
	}
	// Deleting an absent rating is a no-op, matching the backend.
	s.db.DeleteRating(userID, movieID)
	return nil
}

func (s *MemoryService) Remap(ctx context.Context) (RemapResult, error) {
	started := time.Now()
	// The real remap is a long-running job; the mock stretches its delay so
	// progress handling stays exercised.
	if err := util.Sleep(ctx, 4*s.latency); err != nil {
		return RemapResult{}, err
	}
	return RemapResult{
		Success:         true,
		Message:         "Database remapped successfully",
		AffectedMovies:  s.db.MovieCount(),
		AffectedRatings: s.db.RatingCount(),
		Duration:        time.Since(started).Milliseconds(),
	}, nil
}

func (s *MemoryService) Stats(ctx context.Context) (Stats, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalMovies:     s.db.MovieCount(),
		TotalUsers:      s.userCount,
		TotalRatings:    s.db.RatingCount(),
		PendingRequests: len(s.db.Requests(domain.RequestPending)),
	}, nil
}

func (s *MemoryService) ratingDetails(userID, movieID int) (domain.RatingWithDetails, error) {
	page, _ := s.db.Ratings(memdb.RatingFilter{UserID: userID, MovieID: movieID, Limit: 1})
	if len(page) == 0 {
		return domain.RatingWithDetails{}, transport.NewAPIError(http.StatusNotFound, "", memdb.ErrNotFound)
	}
	return page[0], nil
}
