// Package fixtures holds the datasets the mock services serve from. Every
// accessor returns fresh copies so one service instance's mutations never
// leak into another.
package fixtures

import (
	"time"

	"moviecat/pkg/domain"
)

var seededAt = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

var movieSeed = []domain.Movie{
	{
		MovieID: 1, Title: "Horizonte Oscuro", Year: 2024,
		Genres:     []string{"Acción", "Thriller", "Ciencia Ficción"},
		Popularity: 95.5,
		Links:      &domain.Links{TMDB: "12345", IMDB: "tt1234567", MovieLens: "1"},
		GenomeTags: []domain.GenomeTag{
			{Tag: "dystopian future", Relevance: 0.95},
			{Tag: "espionage", Relevance: 0.88},
		},
		UserTags:    []string{"must watch", "plot twist", "intense"},
		RatingStats: &domain.RatingStats{Average: 4.4, Count: 2543, LastRatedAt: "2024-11-28T10:30:00Z"},
		ExternalData: &domain.ExternalData{
			PosterURL: "https://images.example.com/posters/1.jpg",
			Overview:  "A retired agent is pulled back in when the conspiracy he buried resurfaces.",
			Cast: []domain.CastMember{
				{Name: "Marcus Chen"}, {Name: "Elena Rodriguez"}, {Name: "David Thompson"},
			},
			Director: "Christopher Morrison", Runtime: 142,
			Budget: 150000000, Revenue: 450000000, TMDBFetched: true,
		},
	},
	{
		MovieID: 2, Title: "Ecos del Pasado", Year: 2024,
		Genres:     []string{"Drama", "Romance", "Histórico"},
		Popularity: 88.3,
		Links:      &domain.Links{TMDB: "12346", IMDB: "tt1234568", MovieLens: "2"},
		GenomeTags: []domain.GenomeTag{
			{Tag: "period piece", Relevance: 0.92},
			{Tag: "love story", Relevance: 0.89},
		},
		UserTags:    []string{"emotional", "masterpiece"},
		RatingStats: &domain.RatingStats{Average: 4.6, Count: 3821, LastRatedAt: "2024-11-27T15:20:00Z"},
		ExternalData: &domain.ExternalData{
			PosterURL: "https://images.example.com/posters/2.jpg",
			Overview:  "Two strangers in postwar France find shelter in each other.",
			Cast: []domain.CastMember{
				{Name: "Isabella Laurent"}, {Name: "Pierre Beaumont"},
			},
			Director: "Amélie Rousseau", Runtime: 128,
			Budget: 45000000, Revenue: 125000000, TMDBFetched: true,
		},
	},
	{
		MovieID: 3, Title: "Risas sin Control", Year: 2024,
		Genres:      []string{"Comedia", "Aventura"},
		Popularity:  76.8,
		Links:       &domain.Links{TMDB: "12347", IMDB: "tt1234569", MovieLens: "3"},
		UserTags:    []string{"hilarious", "feel good"},
		RatingStats: &domain.RatingStats{Average: 4.0, Count: 1923},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/3.jpg",
			Overview:    "A road trip between two incompatible brothers goes spectacularly wrong.",
			Director:    "Tom Bradley",
			Runtime:     105,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 4, Title: "Dimensión Perdida", Year: 2024,
		Genres:     []string{"Ciencia Ficción", "Aventura"},
		Popularity: 82.1,
		Links:      &domain.Links{TMDB: "12348", IMDB: "tt1234570", MovieLens: "4"},
		GenomeTags: []domain.GenomeTag{
			{Tag: "parallel universe", Relevance: 0.93},
		},
		RatingStats: &domain.RatingStats{Average: 4.2, Count: 2156},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/4.jpg",
			Overview:    "A physics experiment strands a crew between worlds.",
			Director:    "Rachel Kim",
			Runtime:     134,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 5, Title: "Sombras de Medianoche", Year: 2024,
		Genres:      []string{"Terror", "Thriller"},
		Popularity:  91.2,
		Links:       &domain.Links{TMDB: "12349", IMDB: "tt1234571", MovieLens: "5"},
		RatingStats: &domain.RatingStats{Average: 4.3, Count: 2891},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/5.jpg",
			Overview:    "A night shift at an abandoned hospital turns into a fight to see dawn.",
			Director:    "Gabriel Torres",
			Runtime:     118,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 6, Title: "El Último Guardián", Year: 2024,
		Genres:      []string{"Fantasía", "Aventura", "Acción"},
		Popularity:  97.8,
		Links:       &domain.Links{TMDB: "12350", IMDB: "tt1234572", MovieLens: "6"},
		RatingStats: &domain.RatingStats{Average: 4.5, Count: 4123},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/6.jpg",
			Overview:    "The last keeper of an ancient order must train an unwilling heir.",
			Director:    "Sarah Blackwood",
			Runtime:     156,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 7, Title: "Código Rojo", Year: 2024,
		Genres:      []string{"Acción", "Crimen"},
		Popularity:  79.5,
		Links:       &domain.Links{TMDB: "12351", IMDB: "tt1234573", MovieLens: "7"},
		RatingStats: &domain.RatingStats{Average: 4.1, Count: 1876},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/7.jpg",
			Overview:    "An undercover detective's two lives finally collide.",
			Director:    "Miguel Santos",
			Runtime:     121,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 8, Title: "Primavera en París", Year: 2024,
		Genres:      []string{"Romance", "Comedia"},
		Popularity:  85.7,
		Links:       &domain.Links{TMDB: "12352", IMDB: "tt1234574", MovieLens: "8"},
		RatingStats: &domain.RatingStats{Average: 4.4, Count: 3245},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/8.jpg",
			Overview:    "A missed flight leaves two travelers sharing a week neither planned.",
			Director:    "Juliette Moreau",
			Runtime:     98,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 9, Title: "Profundidades Abisales", Year: 2024,
		Genres:      []string{"Terror", "Ciencia Ficción"},
		Popularity:  83.4,
		Links:       &domain.Links{TMDB: "12353", IMDB: "tt1234575", MovieLens: "9"},
		RatingStats: &domain.RatingStats{Average: 4.2, Count: 2367},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/9.jpg",
			Overview:    "A deep-sea research station stops answering. The relief crew finds out why.",
			Director:    "Erik Nielsen",
			Runtime:     127,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 10, Title: "Caminos Cruzados", Year: 2024,
		Genres:      []string{"Drama", "Independiente"},
		Popularity:  72.3,
		Links:       &domain.Links{TMDB: "12354", IMDB: "tt1234576", MovieLens: "10"},
		RatingStats: &domain.RatingStats{Average: 4.7, Count: 1567},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/10.jpg",
			Overview:    "Three lives intersect over one night at a roadside diner.",
			Director:    "Lena Okafor",
			Runtime:     109,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 11, Title: "Velocidad Máxima", Year: 2024,
		Genres:      []string{"Acción", "Deportes"},
		Popularity:  77.9,
		Links:       &domain.Links{TMDB: "12355", IMDB: "tt1234577", MovieLens: "11"},
		RatingStats: &domain.RatingStats{Average: 4.0, Count: 2134},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/11.jpg",
			Overview:    "A disgraced driver gets one last season to prove the crash wasn't his fault.",
			Director:    "Jack Reynolds",
			Runtime:     115,
			TMDBFetched: true,
		},
	},
	{
		MovieID: 12, Title: "La Casa del Lago", Year: 2024,
		Genres:      []string{"Misterio", "Thriller"},
		Popularity:  81.2,
		Links:       &domain.Links{TMDB: "12356", IMDB: "tt1234578", MovieLens: "12"},
		RatingStats: &domain.RatingStats{Average: 4.3, Count: 1998},
		ExternalData: &domain.ExternalData{
			PosterURL:   "https://images.example.com/posters/12.jpg",
			Overview:    "An inherited lake house comes with a locked room and a missing aunt.",
			Director:    "Nora Walsh",
			Runtime:     112,
			TMDBFetched: true,
		},
	},
}

// Movies returns a fresh copy of the seeded catalog.
func Movies() []domain.Movie {
	out := make([]domain.Movie, len(movieSeed))
	for i, m := range movieSeed {
		out[i] = cloneMovie(m)
		out[i].CreatedAt = seededAt
		out[i].UpdatedAt = seededAt
	}
	return out
}

func cloneMovie(m domain.Movie) domain.Movie {
	c := m
	c.Genres = append([]string(nil), m.Genres...)
	c.UserTags = append([]string(nil), m.UserTags...)
	c.GenomeTags = append([]domain.GenomeTag(nil), m.GenomeTags...)
	if m.Links != nil {
		links := *m.Links
		c.Links = &links
	}
	if m.RatingStats != nil {
		stats := *m.RatingStats
		c.RatingStats = &stats
	}
	if m.ExternalData != nil {
		ext := *m.ExternalData
		ext.Cast = append([]domain.CastMember(nil), m.ExternalData.Cast...)
		c.ExternalData = &ext
	}
	return c
}
