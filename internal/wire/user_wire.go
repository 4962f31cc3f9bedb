package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/profile", userHandler.GetProfile)
		r.Patch("/profile", userHandler.UpdateProfile)
		r.Get("/reviews", reviewHandler.GetUserReviews)

		r.Get("/saved", userHandler.ListSaved)
		r.Post("/saved", userHandler.SaveMovie)
		r.Delete("/saved/{movieID}", userHandler.RemoveSaved)

		r.Get("/watched", userHandler.ListWatched)
		r.Post("/watched", userHandler.MarkWatched)
		r.Delete("/watched/{movieID}", userHandler.RemoveWatched)
	})
}
