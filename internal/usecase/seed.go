package usecase

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"

	"go.uber.org/zap"
)

var fallbackMovies = []entity.Movie{
	{ID: "27205", Title: "Inception", Category: "Sci-Fi", IsPopular: true, Rating: 8.8, ReleaseYear: 2010,
		ImageURL:    "https://image.tmdb.org/t/p/w500/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg",
		Description: "A thief who enters people's dreams is asked to plant an idea instead of stealing one."},
	{ID: "155", Title: "The Dark Knight", Category: "Action", IsPopular: true, Rating: 9.0, ReleaseYear: 2008,
		ImageURL:    "https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
		Description: "Batman faces the Joker, who wants to plunge Gotham into anarchy."},
	{ID: "157336", Title: "Interstellar", Category: "Sci-Fi", IsPopular: true, Rating: 8.6, ReleaseYear: 2014,
		ImageURL:    "https://image.tmdb.org/t/p/w500/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
		Description: "Explorers travel through a wormhole looking for a new home for humanity."},
	{ID: "238", Title: "The Godfather", Category: "Drama", IsPopular: true, Rating: 9.2, ReleaseYear: 1972,
		ImageURL:    "https://image.tmdb.org/t/p/w500/3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
		Description: "The head of a crime family hands his empire to his reluctant son."},
	{ID: "680", Title: "Pulp Fiction", Category: "Crime", Rating: 8.9, ReleaseYear: 1994,
		ImageURL:    "https://image.tmdb.org/t/p/w500/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
		Description: "Hitmen, a boxer and a pair of robbers cross paths in Los Angeles."},
	{ID: "278", Title: "The Shawshank Redemption", Category: "Drama", IsPopular: true, Rating: 9.3, ReleaseYear: 1994,
		ImageURL:    "https://image.tmdb.org/t/p/w500/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
		Description: "Two prisoners form a friendship over decades behind bars."},
	{ID: "862", Title: "Toy Story", Category: "Animation", IsPopular: true, Rating: 8.3, ReleaseYear: 1995,
		Description: "A cowboy doll feels threatened when a space ranger toy arrives."},
	{ID: "597", Title: "Titanic", Category: "Romance", Rating: 7.8, ReleaseYear: 1997,
		ImageURL:    "https://image.tmdb.org/t/p/w500/9xjZS2rlVxm8SFx8kPC3aIGCOYQ.jpg",
		Description: "A young aristocrat and a poor artist fall in love aboard a doomed ship."},
	{ID: "138843", Title: "The Conjuring", Category: "Horror", Rating: 7.5, ReleaseYear: 2013,
		Description: "Paranormal investigators help a family terrorized in their farmhouse."},
	{ID: "8363", Title: "Superbad", Category: "Comedy", Rating: 7.6, ReleaseYear: 2007,
		Description: "Two friends try to make the most of their last weeks of high school."},
	{ID: "36557", Title: "Casino Royale", Category: "Thriller", Rating: 8.0, ReleaseYear: 2006,
		Description: "James Bond's first mission as a double-O agent leads to a high-stakes poker game."},
	{ID: "603", Title: "The Matrix", Category: "Sci-Fi", IsPopular: true, Rating: 8.7, ReleaseYear: 1999,
		ImageURL:    "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
		Description: "A programmer learns his world is a simulation run by machines."},
}

// SeedFallbackMovies fills the local movie table when it is empty.
func (s *movieService) SeedFallbackMovies(ctx context.Context) (int, error) {
	count, err := s.repo.Movie.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count fallback movies: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i := range fallbackMovies {
		if err := s.repo.Movie.Upsert(ctx, &fallbackMovies[i]); err != nil {
			return i, fmt.Errorf("seed fallback movie %s: %w", fallbackMovies[i].ID, err)
		}
	}

	s.log.Info("Seeded fallback movies", zap.Int("count", len(fallbackMovies)))
	return len(fallbackMovies), nil
}
