package repository

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SavedMovieRepository interface {
	Upsert(ctx context.Context, movie *entity.SavedMovie) error
	Delete(ctx context.Context, userID uuid.UUID, movieID string) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavedMovie, error)
}

type WatchedMovieRepository interface {
	Upsert(ctx context.Context, movie *entity.WatchedMovie) error
	Delete(ctx context.Context, userID uuid.UUID, movieID string) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WatchedMovie, error)
}

type savedMovieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSavedMovieRepository(db database.PgxIface, log *zap.Logger) SavedMovieRepository {
	return &savedMovieRepository{
		db:  db,
		log: log.With(zap.String("repository", "saved_movie")),
	}
}

func (r *savedMovieRepository) Upsert(ctx context.Context, m *entity.SavedMovie) error {
	query := `
		INSERT INTO saved_movies (user_id, movie_id, title, image_url, category, description, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			saved_at = EXCLUDED.saved_at
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		m.UserID, m.MovieID, m.Title, m.ImageURL, m.Category, m.Description, m.SavedAt)
	if err != nil {
		r.log.Error("Failed to save movie",
			zap.Error(err),
			zap.String("user_id", m.UserID.String()),
			zap.String("movie_id", m.MovieID),
		)
		return fmt.Errorf("save movie %s for user %s: %w", m.MovieID, m.UserID, err)
	}
	return nil
}

func (r *savedMovieRepository) Delete(ctx context.Context, userID uuid.UUID, movieID string) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM saved_movies WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		r.log.Error("Failed to remove saved movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("remove saved movie %s for user %s: %w", movieID, userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("remove saved movie %s: %w", movieID, ErrNotFound)
	}
	return nil
}

func (r *savedMovieRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavedMovie, error) {
	query := `
		SELECT user_id, movie_id, title, image_url, category, description, saved_at
		FROM saved_movies
		WHERE user_id = $1
		ORDER BY saved_at DESC, movie_id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list saved movies", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list saved movies for user %s: %w", userID, err)
	}
	defer rows.Close()

	var movies []*entity.SavedMovie
	for rows.Next() {
		var m entity.SavedMovie
		if err := rows.Scan(&m.UserID, &m.MovieID, &m.Title, &m.ImageURL, &m.Category, &m.Description, &m.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved movie row: %w", err)
		}
		movies = append(movies, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved movie rows: %w", err)
	}
	return movies, nil
}

type watchedMovieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchedMovieRepository(db database.PgxIface, log *zap.Logger) WatchedMovieRepository {
	return &watchedMovieRepository{
		db:  db,
		log: log.With(zap.String("repository", "watched_movie")),
	}
}

func (r *watchedMovieRepository) Upsert(ctx context.Context, m *entity.WatchedMovie) error {
	query := `
		INSERT INTO watched_movies (user_id, movie_id, title, image_url, category, description, rating, release_year, watched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			rating = EXCLUDED.rating,
			release_year = EXCLUDED.release_year,
			watched_at = EXCLUDED.watched_at
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		m.UserID, m.MovieID, m.Title, m.ImageURL, m.Category, m.Description, m.Rating, m.ReleaseYear, m.WatchedAt)
	if err != nil {
		r.log.Error("Failed to mark movie watched",
			zap.Error(err),
			zap.String("user_id", m.UserID.String()),
			zap.String("movie_id", m.MovieID),
		)
		return fmt.Errorf("mark movie %s watched for user %s: %w", m.MovieID, m.UserID, err)
	}
	return nil
}

func (r *watchedMovieRepository) Delete(ctx context.Context, userID uuid.UUID, movieID string) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM watched_movies WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		r.log.Error("Failed to remove watched movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("remove watched movie %s for user %s: %w", movieID, userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("remove watched movie %s: %w", movieID, ErrNotFound)
	}
	return nil
}

func (r *watchedMovieRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WatchedMovie, error) {
	query := `
		SELECT user_id, movie_id, title, image_url, category, description, rating, release_year, watched_at
		FROM watched_movies
		WHERE user_id = $1
		ORDER BY watched_at DESC, movie_id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list watched movies", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list watched movies for user %s: %w", userID, err)
	}
	defer rows.Close()

	var movies []*entity.WatchedMovie
	for rows.Next() {
		var m entity.WatchedMovie
		if err := rows.Scan(&m.UserID, &m.MovieID, &m.Title, &m.ImageURL, &m.Category,
			&m.Description, &m.Rating, &m.ReleaseYear, &m.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watched movie row: %w", err)
		}
		movies = append(movies, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watched movie rows: %w", err)
	}
	return movies, nil
}
