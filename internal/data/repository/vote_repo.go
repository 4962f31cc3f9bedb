package repository

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// VoteRepository stores one vote document per (review, user), keyed by
// entity.VoteID. NONE is represented by the absence of a row.
type VoteRepository interface {
	Find(ctx context.Context, reviewID, userID uuid.UUID) (*entity.ReviewVote, error)
	FindByReviews(ctx context.Context, reviewIDs []uuid.UUID, userID uuid.UUID) ([]*entity.ReviewVote, error)
	Upsert(ctx context.Context, vote *entity.ReviewVote) error
	Delete(ctx context.Context, reviewID, userID uuid.UUID) error
	DeleteByReview(ctx context.Context, reviewID uuid.UUID) (int64, error)

	// Lock takes a transaction-scoped lock on the (review, user) key. It is
	// a no-op outside a transaction.
	Lock(ctx context.Context, reviewID, userID uuid.UUID) error
}

type voteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVoteRepository(db database.PgxIface, log *zap.Logger) VoteRepository {
	return &voteRepository{
		db:  db,
		log: log.With(zap.String("repository", "vote")),
	}
}

func (r *voteRepository) Find(ctx context.Context, reviewID, userID uuid.UUID) (*entity.ReviewVote, error) {
	query := `
		SELECT id, review_id, user_id, vote_type, timestamp
		FROM review_votes
		WHERE id = $1
	`

	var vote entity.ReviewVote
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, entity.VoteID(reviewID, userID)).Scan(
		&vote.ID,
		&vote.ReviewID,
		&vote.UserID,
		&vote.VoteType,
		&vote.Timestamp,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vote",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find vote for review %s by user %s: %w", reviewID, userID, err)
	}

	return &vote, nil
}

func (r *voteRepository) FindByReviews(ctx context.Context, reviewIDs []uuid.UUID, userID uuid.UUID) ([]*entity.ReviewVote, error) {
	query := `
		SELECT id, review_id, user_id, vote_type, timestamp
		FROM review_votes
		WHERE user_id = $1 AND review_id = ANY($2)
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID, reviewIDs)
	if err != nil {
		r.log.Error("Failed to find votes by reviews",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("review_count", len(reviewIDs)),
		)
		return nil, fmt.Errorf("find votes by user %s: %w", userID, err)
	}
	defer rows.Close()

	var votes []*entity.ReviewVote
	for rows.Next() {
		var vote entity.ReviewVote
		if err := rows.Scan(
			&vote.ID,
			&vote.ReviewID,
			&vote.UserID,
			&vote.VoteType,
			&vote.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan vote row: %w", err)
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote rows: %w", err)
	}

	return votes, nil
}

func (r *voteRepository) Upsert(ctx context.Context, vote *entity.ReviewVote) error {
	query := `
		INSERT INTO review_votes (id, review_id, user_id, vote_type, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET vote_type = EXCLUDED.vote_type, timestamp = EXCLUDED.timestamp
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		vote.ID,
		vote.ReviewID,
		vote.UserID,
		vote.VoteType,
		vote.Timestamp,
	)
	if err != nil {
		r.log.Error("Failed to upsert vote",
			zap.Error(err),
			zap.String("vote_id", vote.ID),
			zap.String("vote_type", string(vote.VoteType)),
		)
		return fmt.Errorf("upsert vote %s: %w", vote.ID, err)
	}

	return nil
}

func (r *voteRepository) Delete(ctx context.Context, reviewID, userID uuid.UUID) error {
	query := `DELETE FROM review_votes WHERE id = $1`

	id := entity.VoteID(reviewID, userID)
	if _, err := database.Conn(ctx, r.db).Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete vote",
			zap.Error(err),
			zap.String("vote_id", id),
		)
		return fmt.Errorf("delete vote %s: %w", id, err)
	}

	return nil
}

func (r *voteRepository) DeleteByReview(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	query := `DELETE FROM review_votes WHERE review_id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, reviewID)
	if err != nil {
		r.log.Error("Failed to delete votes for review",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return 0, fmt.Errorf("delete votes for review %s: %w", reviewID, err)
	}

	return result.RowsAffected(), nil
}

func (r *voteRepository) Lock(ctx context.Context, reviewID, userID uuid.UUID) error {
	conn := database.Conn(ctx, r.db)
	if _, inTx := conn.(pgx.Tx); !inTx {
		return nil
	}

	query := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := conn.Exec(ctx, query, entity.VoteID(reviewID, userID)); err != nil {
		return fmt.Errorf("lock vote %s: %w", entity.VoteID(reviewID, userID), err)
	}
	return nil
}
