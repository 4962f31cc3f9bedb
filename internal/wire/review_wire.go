package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	voteHandler *adaptor.VoteHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// viewer-aware reads: a token is honored when present
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, log))

		r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)
		r.Get("/api/movies/{id}/review-stats", reviewHandler.GetMovieReviewStats)
		r.Get("/api/reviews/{id}", reviewHandler.GetReview)
		r.Get("/api/reviews/{id}/vote", voteHandler.GetVote)
		r.Post("/api/reviews/votes", voteHandler.GetVotesForReviews)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
		r.Post("/api/reviews/{id}/vote", voteHandler.CastVote)
	})
}
