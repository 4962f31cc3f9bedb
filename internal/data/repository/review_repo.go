package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementCounters adds the signed deltas to likes/dislikes in place.
	IncrementCounters(ctx context.Context, id uuid.UUID, likesDelta, dislikesDelta int) error

	GetMovieReviewStats(ctx context.Context, movieID string) (float64, int64, error) // rating, count
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, movie_id, user_id, user_name, user_email, rating, comment, timestamp, likes, dislikes`

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO movie_reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		review.ID,
		review.MovieID,
		review.UserID,
		review.UserName,
		review.UserEmail,
		review.Rating,
		review.Comment,
		review.Timestamp,
		review.Likes,
		review.Dislikes,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %s by user %s: %w",
			review.MovieID, review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM movie_reviews WHERE id = $1`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, id)
	var review *entity.Review
	if err == nil {
		review, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Review])
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM movie_reviews
		WHERE movie_id = $1
		ORDER BY timestamp DESC, id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %s: %w", movieID, err)
	}

	return collectReviews(rows)
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM movie_reviews
		WHERE user_id = $1
		ORDER BY timestamp DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}

	return collectReviews(rows)
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM movie_reviews WHERE user_id = $1`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reviews by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movie_reviews WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) IncrementCounters(ctx context.Context, id uuid.UUID, likesDelta, dislikesDelta int) error {
	query := `
		UPDATE movie_reviews
		SET likes = likes + $2, dislikes = dislikes + $3
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, likesDelta, dislikesDelta)
	if err != nil {
		r.log.Error("Failed to increment review counters",
			zap.Error(err),
			zap.String("review_id", id.String()),
			zap.Int("likes_delta", likesDelta),
			zap.Int("dislikes_delta", dislikesDelta),
		)
		return fmt.Errorf("increment counters for review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("increment counters for review %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) GetMovieReviewStats(ctx context.Context, movieID string) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0)::float8 AS avg_rating,
			COUNT(*) AS review_count
		FROM movie_reviews
		WHERE movie_id = $1
	`

	var avgRating float64
	var reviewCount int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, movieID).Scan(&avgRating, &reviewCount)
	if err != nil {
		r.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return 0, 0, fmt.Errorf("get movie review stats for %s: %w", movieID, err)
	}

	return avgRating, reviewCount, nil
}

// collectReviews maps rows onto entity.Review by db tag and closes them.
func collectReviews(rows pgx.Rows) ([]*entity.Review, error) {
	reviews, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Review])
	if err != nil {
		return nil, fmt.Errorf("collect review rows: %w", err)
	}
	return reviews, nil
}
