package fixtures

import "moviecat/pkg/domain"

var ratingSeed = []domain.Rating{
	{UserID: 1, MovieID: 1, Rating: 5.0, Timestamp: 1700474200},
	{UserID: 2, MovieID: 1, Rating: 4.0, Timestamp: 1700573700},
	{UserID: 3, MovieID: 1, Rating: 4.5, Timestamp: 1700643900},
	{UserID: 4, MovieID: 1, Rating: 4.0, Timestamp: 1700751600},
	{UserID: 5, MovieID: 1, Rating: 5.0, Timestamp: 1700820000},

	{UserID: 1, MovieID: 2, Rating: 5.0, Timestamp: 1700395200},
	{UserID: 2, MovieID: 2, Rating: 4.5, Timestamp: 1700493000},
	{UserID: 3, MovieID: 2, Rating: 5.0, Timestamp: 1700561700},
	{UserID: 6, MovieID: 2, Rating: 4.0, Timestamp: 1700664300},

	{UserID: 2, MovieID: 3, Rating: 4.0, Timestamp: 1700313600},
	{UserID: 4, MovieID: 3, Rating: 4.5, Timestamp: 1700413200},
	{UserID: 5, MovieID: 3, Rating: 3.5, Timestamp: 1700480400},

	{UserID: 1, MovieID: 4, Rating: 4.5, Timestamp: 1700209200},
	{UserID: 3, MovieID: 4, Rating: 4.0, Timestamp: 1700318400},
	{UserID: 5, MovieID: 4, Rating: 4.0, Timestamp: 1700394300},
	{UserID: 6, MovieID: 4, Rating: 4.5, Timestamp: 1700490600},

	{UserID: 2, MovieID: 5, Rating: 4.0, Timestamp: 1700137800},
	{UserID: 4, MovieID: 5, Rating: 4.5, Timestamp: 1700241600},
	{UserID: 6, MovieID: 5, Rating: 4.0, Timestamp: 1700303400},

	{UserID: 1, MovieID: 6, Rating: 4.0, Timestamp: 1700058900},
	{UserID: 3, MovieID: 6, Rating: 3.5, Timestamp: 1700129400},
	{UserID: 4, MovieID: 6, Rating: 4.5, Timestamp: 1700235900},

	{UserID: 1, MovieID: 7, Rating: 4.0, Timestamp: 1699977000},
	{UserID: 2, MovieID: 7, Rating: 4.5, Timestamp: 1700051200},
	{UserID: 5, MovieID: 7, Rating: 3.5, Timestamp: 1700150400},

	{UserID: 2, MovieID: 8, Rating: 5.0, Timestamp: 1699896000},
	{UserID: 3, MovieID: 8, Rating: 4.5, Timestamp: 1699982400},
	{UserID: 6, MovieID: 8, Rating: 4.0, Timestamp: 1700068800},

	{UserID: 1, MovieID: 9, Rating: 4.5, Timestamp: 1699809600},
	{UserID: 4, MovieID: 9, Rating: 4.0, Timestamp: 1699896000},
	{UserID: 5, MovieID: 9, Rating: 4.0, Timestamp: 1699982400},

	{UserID: 1, MovieID: 10, Rating: 5.0, Timestamp: 1699723200},
	{UserID: 2, MovieID: 10, Rating: 4.5, Timestamp: 1699809600},
	{UserID: 3, MovieID: 10, Rating: 5.0, Timestamp: 1699896000},
	{UserID: 6, MovieID: 10, Rating: 4.5, Timestamp: 1699982400},

	{UserID: 3, MovieID: 11, Rating: 4.0, Timestamp: 1699636800},
	{UserID: 4, MovieID: 11, Rating: 4.5, Timestamp: 1699723200},
	{UserID: 5, MovieID: 11, Rating: 3.5, Timestamp: 1699809600},

	{UserID: 2, MovieID: 12, Rating: 4.5, Timestamp: 1699550400},
	{UserID: 4, MovieID: 12, Rating: 4.0, Timestamp: 1699636800},
	{UserID: 6, MovieID: 12, Rating: 4.5, Timestamp: 1699723200},
}

// Ratings returns a fresh copy of the seeded rating set.
func Ratings() []domain.Rating {
	return append([]domain.Rating(nil), ratingSeed...)
}
