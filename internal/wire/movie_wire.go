package wire

import (
	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireMovie registers catalog browsing routes. All of them are public.
func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, log *zap.Logger) {
	log.Debug("Registering movie routes")

	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/popular", movieHandler.GetPopular)
	r.Get("/api/movies/top-rated", movieHandler.GetTopRated)
	r.Get("/api/movies/now-playing", movieHandler.GetNowPlaying)
	r.Get("/api/movies/upcoming", movieHandler.GetUpcoming)
	r.Get("/api/movies/search", movieHandler.Search)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	r.Get("/api/categories", movieHandler.GetCategories)
	r.Get("/api/categories/{name}/movies", movieHandler.GetByCategory)

	r.Get("/api/people/{id}", movieHandler.GetPerson)
	r.Get("/api/people/{id}/credits", movieHandler.GetPersonCredits)
}
