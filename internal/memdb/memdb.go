// Package memdb is the in-process dataset mock services operate on. It is a
// process-wide singleton in normal wiring; mutations live only as long as
// the process. All access is serialized through one mutex, so no two
// operations interleave mid-mutation.
package memdb

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"moviecat/pkg/domain"
)

var (
	// ErrNotFound mirrors the backend's 404 for unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyResolved rejects a second transition of a movie request.
	ErrAlreadyResolved = errors.New("request already resolved")
)

// DB holds movies, ratings, and movie requests behind one lock.
type DB struct {
	mu            sync.Mutex
	movies        []domain.Movie
	ratings       []domain.Rating
	requests      []domain.MovieRequest
	nextRequestID int
}

// New builds a DB over the given datasets. The slices are owned by the DB
// afterwards; callers pass fresh copies (fixtures accessors already do).
func New(movies []domain.Movie, ratings []domain.Rating) *DB {
	return &DB{
		movies:        movies,
		ratings:       ratings,
		nextRequestID: 1,
	}
}

// --- movies ---

// Movie returns a movie by id.
func (db *DB) Movie(id int) (domain.Movie, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, m := range db.movies {
		if m.MovieID == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}

// MovieQuery is the filter set shared by search and management listings.
type MovieQuery struct {
	Query     string
	Genres    []string
	MinRating float64
	YearFrom  int
	YearTo    int
	SortBy    string // title, year, rating, popularity; default popularity
	SortDesc  bool
	Limit     int
	Offset    int
}

// SearchMovies filters, sorts, and paginates. It returns the page and the
// total number of matches before pagination.
func (db *DB) SearchMovies(q MovieQuery) ([]domain.Movie, int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	matched := make([]domain.Movie, 0, len(db.movies))
	for _, m := range db.movies {
		if q.Query != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(q.Query)) {
			continue
		}
		if len(q.Genres) > 0 && !hasAnyGenre(m.Genres, q.Genres) {
			continue
		}
		if q.MinRating > 0 && m.AverageRating() < q.MinRating {
			continue
		}
		if q.YearFrom > 0 && (m.Year == 0 || m.Year < q.YearFrom) {
			continue
		}
		if q.YearTo > 0 && (m.Year == 0 || m.Year > q.YearTo) {
			continue
		}
		matched = append(matched, m)
	}

	sortMovies(matched, q.SortBy, q.SortDesc)

	total := len(matched)
	return paginate(matched, q.Offset, q.Limit), total
}

// TopMovies returns movies ordered by popularity, optionally constrained to
// one genre.
func (db *DB) TopMovies(genre string, limit, offset int) []domain.Movie {
	q := MovieQuery{SortBy: "popularity", SortDesc: true, Limit: limit, Offset: offset}
	if genre != "" {
		q.Genres = []string{genre}
	}
	page, _ := db.SearchMovies(q)
	return page
}

// InsertMovie adds a catalog entry from a payload, assigning the next id.
func (db *DB) InsertMovie(payload domain.MoviePayload, now time.Time) domain.Movie {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.insertMovieLocked(payload, now)
}

func (db *DB) insertMovieLocked(payload domain.MoviePayload, now time.Time) domain.Movie {
	next := 1
	for _, m := range db.movies {
		if m.MovieID >= next {
			next = m.MovieID + 1
		}
	}
	movie := movieFromPayload(next, payload, now)
	db.movies = append(db.movies, movie)
	return movie
}

// UpdateMovie applies the payload's non-zero fields to an existing entry.
func (db *DB) UpdateMovie(id int, payload domain.MoviePayload, now time.Time) (domain.Movie, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.updateMovieLocked(id, payload, now)
}

func (db *DB) updateMovieLocked(id int, payload domain.MoviePayload, now time.Time) (domain.Movie, error) {
	for i, m := range db.movies {
		if m.MovieID != id {
			continue
		}
		if payload.Title != "" {
			m.Title = payload.Title
		}
		if payload.Year != 0 {
			m.Year = payload.Year
		}
		if payload.Genres != nil {
			m.Genres = payload.Genres
		}
		if payload.Links != nil {
			m.Links = payload.Links
		}
		if payload.UserTags != nil {
			m.UserTags = payload.UserTags
		}
		if payload.GenomeTags != nil {
			m.GenomeTags = payload.GenomeTags
		}
		applyExternal(&m, payload)
		m.UpdatedAt = now
		db.movies[i] = m
		return m, nil
	}
	return domain.Movie{}, ErrNotFound
}

// DeleteMovie removes a movie and cascades its ratings.
func (db *DB) DeleteMovie(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i, m := range db.movies {
		if m.MovieID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	db.movies = append(db.movies[:idx], db.movies[idx+1:]...)

	kept := db.ratings[:0]
	for _, r := range db.ratings {
		if r.MovieID != id {
			kept = append(kept, r)
		}
	}
	db.ratings = kept
	return nil
}

// MovieCount reports the catalog size.
func (db *DB) MovieCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.movies)
}

// --- ratings ---

// RatingsByUser returns a user's ratings.
func (db *DB) RatingsByUser(userID int) []domain.Rating {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []domain.Rating{}
	for _, r := range db.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// UpsertRating creates or overwrites the rating for (userID, movieID),
// leaving exactly one record for the pair.
func (db *DB) UpsertRating(userID, movieID int, value float64, now int64) domain.Rating {
	db.mu.Lock()
	defer db.mu.Unlock()

	rating := domain.Rating{UserID: userID, MovieID: movieID, Rating: value, Timestamp: now}
	for i, r := range db.ratings {
		if r.UserID == userID && r.MovieID == movieID {
			db.ratings[i] = rating
			return rating
		}
	}
	db.ratings = append(db.ratings, rating)
	return rating
}

// DeleteRating removes the rating for (userID, movieID) when present.
func (db *DB) DeleteRating(userID, movieID int) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, r := range db.ratings {
		if r.UserID == userID && r.MovieID == movieID {
			db.ratings = append(db.ratings[:i], db.ratings[i+1:]...)
			return true
		}
	}
	return false
}

// RatingFilter narrows admin rating listings.
type RatingFilter struct {
	UserID    int
	MovieID   int
	MinRating float64
	MaxRating float64
	Limit     int
	Offset    int
}

// Ratings returns the filtered page plus the pre-pagination total, with
// movie titles joined in for display.
func (db *DB) Ratings(f RatingFilter) ([]domain.RatingWithDetails, int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	titles := make(map[int]string, len(db.movies))
	for _, m := range db.movies {
		titles[m.MovieID] = m.Title
	}

	matched := []domain.RatingWithDetails{}
	for _, r := range db.ratings {
		if f.UserID != 0 && r.UserID != f.UserID {
			continue
		}
		if f.MovieID != 0 && r.MovieID != f.MovieID {
			continue
		}
		if f.MinRating > 0 && r.Rating < f.MinRating {
			continue
		}
		if f.MaxRating > 0 && r.Rating > f.MaxRating {
			continue
		}
		matched = append(matched, domain.RatingWithDetails{Rating: r, MovieTitle: titles[r.MovieID]})
	}
	total := len(matched)
	return paginate(matched, f.Offset, f.Limit), total
}

// RatingCount reports the number of stored ratings.
func (db *DB) RatingCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.ratings)
}

// --- movie requests ---

// InsertRequest files a new pending request.
func (db *DB) InsertRequest(userID int, typ domain.RequestType, movieID int, payload domain.MoviePayload, now time.Time) domain.MovieRequest {
	db.mu.Lock()
	defer db.mu.Unlock()

	req := domain.MovieRequest{
		RequestID: db.nextRequestID,
		UserID:    userID,
		Type:      typ,
		Status:    domain.RequestPending,
		MovieID:   movieID,
		Movie:     payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.nextRequestID++
	db.requests = append(db.requests, req)
	return req
}

// RequestsByUser returns only the submitting user's requests.
func (db *DB) RequestsByUser(userID int) []domain.MovieRequest {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []domain.MovieRequest{}
	for _, r := range db.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Requests returns all requests, optionally narrowed to one status.
func (db *DB) Requests(status domain.RequestStatus) []domain.MovieRequest {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []domain.MovieRequest{}
	for _, r := range db.requests {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ResolveRequest transitions a pending request to approved or rejected.
// The transition happens exactly once; a second attempt fails with
// ErrAlreadyResolved.
// ApproveRequest marks a pending request approved and applies its proposed
// change to the catalog in the same critical section. An edit whose target
// movie no longer exists fails with ErrNotFound and leaves the request
// pending.
func (db *DB) ApproveRequest(id, reviewer int, note string, now time.Time) (domain.MovieRequest, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, r := range db.requests {
		if r.RequestID != id {
			continue
		}
		if r.Status != domain.RequestPending {
			return domain.MovieRequest{}, ErrAlreadyResolved
		}
		switch r.Type {
		case domain.RequestAdd:
			db.insertMovieLocked(r.Movie, now)
		case domain.RequestEdit:
			if _, err := db.updateMovieLocked(r.MovieID, r.Movie, now); err != nil {
				return domain.MovieRequest{}, err
			}
		}
		r.Status = domain.RequestApproved
		r.ReviewedBy = reviewer
		r.ReviewNote = note
		r.UpdatedAt = now
		db.requests[i] = r
		return r, nil
	}
	return domain.MovieRequest{}, ErrNotFound
}

func (db *DB) ResolveRequest(id int, status domain.RequestStatus, reviewer int, note string, now time.Time) (domain.MovieRequest, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, r := range db.requests {
		if r.RequestID != id {
			continue
		}
		if r.Status != domain.RequestPending {
			return domain.MovieRequest{}, ErrAlreadyResolved
		}
		r.Status = status
		r.ReviewedBy = reviewer
		r.ReviewNote = note
		r.UpdatedAt = now
		db.requests[i] = r
		return r, nil
	}
	return domain.MovieRequest{}, ErrNotFound
}

// --- helpers ---

func hasAnyGenre(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func sortMovies(movies []domain.Movie, by string, desc bool) {
	if by == "" {
		by = "popularity"
		desc = true
	}
	less := func(a, b domain.Movie) bool { return a.Popularity < b.Popularity }
	switch by {
	case "title":
		less = func(a, b domain.Movie) bool { return a.Title < b.Title }
	case "year":
		less = func(a, b domain.Movie) bool { return a.Year < b.Year }
	case "rating":
		less = func(a, b domain.Movie) bool { return a.AverageRating() < b.AverageRating() }
	}
	sort.SliceStable(movies, func(i, j int) bool {
		if desc {
			return less(movies[j], movies[i])
		}
		return less(movies[i], movies[j])
	})
}

func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func movieFromPayload(id int, p domain.MoviePayload, now time.Time) domain.Movie {
	return domain.Movie{
		MovieID:     id,
		Title:       p.Title,
		Year:        p.Year,
		Genres:      p.Genres,
		Links:       p.Links,
		GenomeTags:  p.GenomeTags,
		UserTags:    p.UserTags,
		RatingStats: &domain.RatingStats{},
		ExternalData: &domain.ExternalData{
			PosterURL: p.PosterURL,
			Overview:  p.Overview,
			Director:  p.Director,
			Runtime:   p.Runtime,
			Cast:      p.Cast,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func applyExternal(m *domain.Movie, p domain.MoviePayload) {
	if p.Overview == "" && p.Runtime == 0 && p.Director == "" && p.Cast == nil && p.PosterURL == "" {
		return
	}
	if m.ExternalData == nil {
		m.ExternalData = &domain.ExternalData{}
	}
	if p.Overview != "" {
		m.ExternalData.Overview = p.Overview
	}
	if p.Runtime != 0 {
		m.ExternalData.Runtime = p.Runtime
	}
	if p.Director != "" {
		m.ExternalData.Director = p.Director
	}
	if p.Cast != nil {
		m.ExternalData.Cast = p.Cast
	}
	if p.PosterURL != "" {
		m.ExternalData.PosterURL = p.PosterURL
	}
	m.ExternalData.TMDBFetched = false
}
