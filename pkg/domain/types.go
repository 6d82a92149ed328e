package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type RequestType string

const (
	RequestAdd  RequestType = "add"
	RequestEdit RequestType = "edit"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type User struct {
	UserID    int       `json:"userId"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Links holds identifiers into external movie catalogs.
type Links struct {
	MovieLens string `json:"movielens,omitempty"`
	IMDB      string `json:"imdb,omitempty"`
	TMDB      string `json:"tmdb,omitempty"`
}

type GenomeTag struct {
	Tag       string  `json:"tag"`
	Relevance float64 `json:"relevance"`
}

type CastMember struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// ExternalData carries fields fetched from TMDB rather than the core catalog.
type ExternalData struct {
	PosterURL   string       `json:"posterUrl,omitempty"`
	Overview    string       `json:"overview,omitempty"`
	Cast        []CastMember `json:"cast,omitempty"`
	Director    string       `json:"director,omitempty"`
	Runtime     int          `json:"runtime,omitempty"`
	Budget      int          `json:"budget,omitempty"`
	Revenue     int64        `json:"revenue,omitempty"`
	TMDBFetched bool         `json:"tmdbFetched"`
}

type RatingStats struct {
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
	LastRatedAt string  `json:"lastRatedAt,omitempty"`
}

// Movie is the canonical catalog entity. Descriptive fields live at the top
// level, everything fetched from third parties under ExternalData.
type Movie struct {
	MovieID      int           `json:"movieId"`
	Title        string        `json:"title"`
	Year         int           `json:"year,omitempty"`
	Genres       []string      `json:"genres"`
	Popularity   float64       `json:"popularity,omitempty"`
	Links        *Links        `json:"links,omitempty"`
	GenomeTags   []GenomeTag   `json:"genomeTags,omitempty"`
	UserTags     []string      `json:"userTags,omitempty"`
	RatingStats  *RatingStats  `json:"ratingStats,omitempty"`
	ExternalData *ExternalData `json:"externalData,omitempty"`
	CreatedAt    time.Time     `json:"createdAt,omitzero"`
	UpdatedAt    time.Time     `json:"updatedAt,omitzero"`
}

// AverageRating returns the aggregate average, zero when the movie has no
// ratings yet.
func (m Movie) AverageRating() float64 {
	if m.RatingStats == nil {
		return 0
	}
	return m.RatingStats.Average
}

// PosterURL returns the TMDB poster when fetched, empty otherwise.
func (m Movie) PosterURL() string {
	if m.ExternalData == nil {
		return ""
	}
	return m.ExternalData.PosterURL
}

// Rating is keyed by (UserID, MovieID); at most one per pair.
type Rating struct {
	UserID    int     `json:"userId"`
	MovieID   int     `json:"movieId"`
	Rating    float64 `json:"rating"`
	Timestamp int64   `json:"timestamp"`
}

// RatingWithDetails augments a rating with display fields for admin listings.
type RatingWithDetails struct {
	Rating
	MovieTitle string `json:"movieTitle,omitempty"`
	UserEmail  string `json:"userEmail,omitempty"`
}

// MoviePayload is the candidate movie data embedded in a request and the
// body of admin create/update calls.
type MoviePayload struct {
	Title      string       `json:"title"`
	Year       int          `json:"year,omitempty"`
	Genres     []string     `json:"genres,omitempty"`
	Overview   string       `json:"overview,omitempty"`
	Runtime    int          `json:"runtime,omitempty"`
	Director   string       `json:"director,omitempty"`
	Cast       []CastMember `json:"cast,omitempty"`
	PosterURL  string       `json:"posterUrl,omitempty"`
	Links      *Links       `json:"links,omitempty"`
	UserTags   []string     `json:"userTags,omitempty"`
	GenomeTags []GenomeTag  `json:"genomeTags,omitempty"`
}

// MovieRequest is a pending change proposal. Status moves from pending to
// approved or rejected exactly once and never reverts.
type MovieRequest struct {
	RequestID  int           `json:"requestId"`
	UserID     int           `json:"userId"`
	Type       RequestType   `json:"requestType"`
	Status     RequestStatus `json:"status"`
	MovieID    int           `json:"movieId,omitempty"`
	Movie      MoviePayload  `json:"movieData"`
	ReviewedBy int           `json:"reviewedBy,omitempty"`
	ReviewNote string        `json:"reviewNote,omitempty"`
	CreatedAt  time.Time     `json:"createdAt,omitzero"`
	UpdatedAt  time.Time     `json:"updatedAt,omitzero"`
}

// Recommendation is ephemeral, regenerated per request and never persisted
// client-side.
type Recommendation struct {
	MovieID     int      `json:"movieId"`
	Score       float64  `json:"score"`
	Title       string   `json:"title,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	VoteAverage float64  `json:"voteAverage,omitempty"`
}

type RecommendationResponse struct {
	UserID      int              `json:"userId"`
	Items       []Recommendation `json:"items"`
	GeneratedAt time.Time        `json:"generatedAt,omitzero"`
	FromCache   bool             `json:"fromCache"`
	Algorithm   string           `json:"algorithm,omitempty"`
}

// Stream message types emitted on the recommendation websocket.
const (
	StreamStart           = "start"
	StreamProgress        = "progress"
	StreamRecommendations = "recommendations"
	StreamError           = "error"
)

// StreamMessage is one frame of the real-time recommendation stream.
type StreamMessage struct {
	Type        string           `json:"type"`
	Msg         string           `json:"msg,omitempty"`
	Progress    int              `json:"progress,omitempty"`
	NodeID      string           `json:"nodeId,omitempty"`
	UserID      int              `json:"userId,omitempty"`
	Items       []Recommendation `json:"items,omitempty"`
	GeneratedAt time.Time        `json:"generatedAt,omitzero"`
	Error       string           `json:"error,omitempty"`
}
