package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"moviecat/internal/transport"
	"moviecat/internal/util"
	"moviecat/pkg/domain"
)

const mockAlgorithm = "item-based-collaborative-filtering"

var mockTitles = []string{
	"The Shawshank Redemption", "The Godfather", "The Dark Knight",
	"Pulp Fiction", "Forrest Gump", "Inception", "The Matrix",
	"Goodfellas", "The Silence of the Lambs", "Interstellar",
	"The Green Mile", "Parasite", "Gladiator", "The Prestige",
	"The Departed", "Whiplash", "The Lion King", "Back to the Future",
	"The Pianist", "Django Unchained", "WALL·E", "Avengers: Endgame",
	"Coco", "Spirited Away", "Joker", "The Intouchables",
}

var mockReasons = []string{
	"Based on movies you rated highly",
	"Similar to films you enjoyed",
	"Recommended for your taste profile",
	"Popular among users with similar preferences",
	"Matches your favorite genres",
	"Trending in your category",
}

var mockGenrePool = []string{"Action", "Drama", "Comedy", "Thriller", "Sci-Fi", "Romance"}

// MemoryService fabricates recommendations locally. Scores and ids are
// deterministic per user so repeated fetches agree.
type MemoryService struct {
	identity Identity
	latency  time.Duration
}

func NewMemoryService(identity Identity, latency time.Duration) *MemoryService {
	return &MemoryService{identity: identity, latency: latency}
}

func (s *MemoryService) ForMe(ctx context.Context, params Params) (domain.RecommendationResponse, error) {
	user, ok := s.identity.Current()
	if !ok {
		return domain.RecommendationResponse{}, transport.NewAPIError(http.StatusUnauthorized, "", nil)
	}
	// A forced refresh recomputes instead of hitting the cache, so it
	// takes noticeably longer.
	delay := s.latency
	if params.Refresh {
		delay *= 4
	}
	if err := util.Sleep(ctx, delay); err != nil {
		return domain.RecommendationResponse{}, err
	}
	return domain.RecommendationResponse{
		UserID:      user.UserID,
		Items:       generate(params.K, user.UserID),
		GeneratedAt: time.Now(),
		FromCache:   !params.Refresh,
		Algorithm:   mockAlgorithm,
	}, nil
}

func (s *MemoryService) ForUser(ctx context.Context, userID int, params Params) (domain.RecommendationResponse, error) {
	if err := util.Sleep(ctx, s.latency); err != nil {
		return domain.RecommendationResponse{}, err
	}
	return domain.RecommendationResponse{
		UserID:      userID,
		Items:       generate(params.K, userID),
		GeneratedAt: time.Now(),
		FromCache:   false,
		Algorithm:   mockAlgorithm,
	}, nil
}

// Stream emits the same frame sequence the backend's websocket produces:
// start, four node-progress frames, then the recommendation set.
func (s *MemoryService) Stream(ctx context.Context, userID, k int) (<-chan domain.StreamMessage, error) {
	frames := []domain.StreamMessage{
		{Type: domain.StreamStart, Msg: "WebSocket connection open, starting recommendation computation..."},
	}
	for node := 1; node <= 4; node++ {
		frames = append(frames, domain.StreamMessage{
			Type:     domain.StreamProgress,
			Msg:      fmt.Sprintf("Querying ML node %d/4 (shard %d)...", node, node),
			Progress: node * 25,
			NodeID:   fmt.Sprintf("%d", node),
		})
	}
	frames = append(frames, domain.StreamMessage{
		Type:        domain.StreamRecommendations,
		UserID:      userID,
		Items:       generate(k, userID),
		GeneratedAt: time.Now(),
	})

	out := make(chan domain.StreamMessage)
	go func() {
		defer close(out)
		for _, frame := range frames {
			if err := util.Sleep(ctx, s.latency); err != nil {
				return
			}
			select {
			case out <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func generate(k, userID int) []domain.Recommendation {
	if k <= 0 {
		k = 20
	}
	if k > len(mockTitles) {
		k = len(mockTitles)
	}
	rng := rand.New(rand.NewSource(int64(userID)))
	items := make([]domain.Recommendation, 0, k)
	for i := 0; i < k; i++ {
		movieID := userID*100 + i + 1
		score := 0.95 - float64(i)*0.03
		if score < 0.5 {
			score = 0.5
		}
		items = append(items, domain.Recommendation{
			MovieID:     movieID,
			Score:       score,
			Title:       mockTitles[i%len(mockTitles)],
			Reason:      mockReasons[i%len(mockReasons)],
			PosterURL:   fmt.Sprintf("https://image.tmdb.org/t/p/w500/mock-rec-%d.jpg", movieID),
			Genres:      pickGenres(rng),
			VoteAverage: 7.0 + rng.Float64()*2.5,
		})
	}
	return items
}

func pickGenres(rng *rand.Rand) []string {
	shuffled := append([]string(nil), mockGenrePool...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:2+rng.Intn(2)]
}
