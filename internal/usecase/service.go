package usecase

import (
	"movie-review/internal/catalog"
	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Review ReviewService
	Vote   VoteService
}

func NewService(repo *repository.Repository, client catalog.Client, config *utils.Config, log *zap.Logger) *Service {
	votes := NewVoteService(repo, config.Vote, log)
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo, log),
		Movie:  NewMovieService(repo, client, log),
		Review: NewReviewService(repo, votes, log),
		Vote:   votes,
	}
}
