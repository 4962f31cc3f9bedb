package repository

import (
	"errors"

	"movie-review/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("repository: not found")

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Movie        MovieRepository
	Review       ReviewRepository
	Vote         VoteRepository
	SavedMovie   SavedMovieRepository
	WatchedMovie WatchedMovieRepository

	Tx database.Transactor
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Vote:         NewVoteRepository(db, log),
		SavedMovie:   NewSavedMovieRepository(db, log),
		WatchedMovie: NewWatchedMovieRepository(db, log),
		Tx:           db,
	}
}
