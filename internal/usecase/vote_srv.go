package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VoteService keeps per-user votes and the per-review like/dislike counters
// in agreement. Reads fail open to VoteNone; writes never do.
type VoteService interface {
	GetVote(ctx context.Context, reviewID, userID uuid.UUID) entity.VoteKind
	CastVote(ctx context.Context, reviewID, userID uuid.UUID, requested entity.VoteKind) (entity.VoteKind, error)
	GetVotesForReviews(ctx context.Context, reviewIDs []uuid.UUID, userID uuid.UUID) map[uuid.UUID]entity.VoteKind
}

type voteService struct {
	reviews repository.ReviewRepository
	votes   repository.VoteRepository
	tx      database.Transactor
	atomic  bool
	now     func() time.Time
	log     *zap.Logger
}

func NewVoteService(repo *repository.Repository, cfg utils.VoteConfig, log *zap.Logger) VoteService {
	return &voteService{
		reviews: repo.Review,
		votes:   repo.Vote,
		tx:      repo.Tx,
		atomic:  cfg.Atomic,
		now:     time.Now,
		log:     log.With(zap.String("service", "vote")),
	}
}

// ResolveVote applies the toggle law: repeating the current vote clears it,
// anything else replaces it.
func ResolveVote(current, requested entity.VoteKind) entity.VoteKind {
	if current == requested {
		return entity.VoteNone
	}
	return requested
}

// voteDeltas is the counter change for moving from prev to next.
func voteDeltas(prev, next entity.VoteKind) (likes, dislikes int) {
	switch prev {
	case entity.VoteLike:
		likes--
	case entity.VoteDislike:
		dislikes--
	}
	switch next {
	case entity.VoteLike:
		likes++
	case entity.VoteDislike:
		dislikes++
	}
	return likes, dislikes
}

func (s *voteService) GetVote(ctx context.Context, reviewID, userID uuid.UUID) entity.VoteKind {
	if userID == uuid.Nil {
		return entity.VoteNone
	}

	vote, err := s.votes.Find(ctx, reviewID, userID)
	if err != nil {
		s.log.Warn("Vote lookup failed, reporting NONE",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
			zap.String("user_id", userID.String()),
		)
		return entity.VoteNone
	}
	return kindOf(vote)
}

func (s *voteService) CastVote(ctx context.Context, reviewID, userID uuid.UUID, requested entity.VoteKind) (entity.VoteKind, error) {
	if userID == uuid.Nil {
		return entity.VoteNone, ErrUnauthenticated
	}
	if requested != entity.VoteLike && requested != entity.VoteDislike {
		return entity.VoteNone, ErrInvalidVote
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return entity.VoteNone, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if review == nil {
		return entity.VoteNone, ErrReviewNotFound
	}

	if s.atomic {
		return s.castAtomic(ctx, reviewID, userID, requested)
	}
	return s.castTwoStep(ctx, reviewID, userID, requested)
}

func (s *voteService) castAtomic(ctx context.Context, reviewID, userID uuid.UUID, requested entity.VoteKind) (entity.VoteKind, error) {
	final := entity.VoteNone
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.votes.Lock(ctx, reviewID, userID); err != nil {
			return err
		}

		current, err := s.currentVote(ctx, reviewID, userID)
		if err != nil {
			return err
		}

		final = ResolveVote(current, requested)
		if err := s.persist(ctx, reviewID, userID, final); err != nil {
			return err
		}
		return s.applyCounters(ctx, reviewID, current, final)
	})

	if errors.Is(err, repository.ErrNotFound) {
		return entity.VoteNone, ErrReviewNotFound
	}
	if err != nil {
		s.log.Error("Vote transaction failed",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
			zap.String("user_id", userID.String()),
		)
		return entity.VoteNone, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Debug("Vote cast",
		zap.String("review_id", reviewID.String()),
		zap.String("user_id", userID.String()),
		zap.String("vote", string(final)),
	)
	return final, nil
}

// castTwoStep writes the vote and then the counters as separate statements.
func (s *voteService) castTwoStep(ctx context.Context, reviewID, userID uuid.UUID, requested entity.VoteKind) (entity.VoteKind, error) {
	current, err := s.currentVote(ctx, reviewID, userID)
	if err != nil {
		return entity.VoteNone, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	final := ResolveVote(current, requested)
	if err := s.persist(ctx, reviewID, userID, final); err != nil {
		return entity.VoteNone, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	if err := s.applyCounters(ctx, reviewID, current, final); err != nil {
		likes, dislikes := voteDeltas(current, final)
		s.log.Error("Vote stored but counters not updated",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
			zap.String("user_id", userID.String()),
			zap.Int("likes_delta", likes),
			zap.Int("dislikes_delta", dislikes),
		)
		return final, fmt.Errorf("%w: %w", ErrPartialWrite, err)
	}

	return final, nil
}

// currentVote is the strict read used on the write path.
func (s *voteService) currentVote(ctx context.Context, reviewID, userID uuid.UUID) (entity.VoteKind, error) {
	vote, err := s.votes.Find(ctx, reviewID, userID)
	if err != nil {
		return entity.VoteNone, err
	}
	return kindOf(vote), nil
}

func (s *voteService) persist(ctx context.Context, reviewID, userID uuid.UUID, kind entity.VoteKind) error {
	if kind == entity.VoteNone {
		return s.votes.Delete(ctx, reviewID, userID)
	}
	return s.votes.Upsert(ctx, &entity.ReviewVote{
		ID:        entity.VoteID(reviewID, userID),
		ReviewID:  reviewID,
		UserID:    userID,
		VoteType:  kind,
		Timestamp: s.now().UnixMilli(),
	})
}

func (s *voteService) applyCounters(ctx context.Context, reviewID uuid.UUID, prev, next entity.VoteKind) error {
	likes, dislikes := voteDeltas(prev, next)
	if likes == 0 && dislikes == 0 {
		return nil
	}
	return s.reviews.IncrementCounters(ctx, reviewID, likes, dislikes)
}

func (s *voteService) GetVotesForReviews(ctx context.Context, reviewIDs []uuid.UUID, userID uuid.UUID) map[uuid.UUID]entity.VoteKind {
	result := make(map[uuid.UUID]entity.VoteKind, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return result
	}

	unique := make([]uuid.UUID, 0, len(reviewIDs))
	for _, id := range reviewIDs {
		if _, seen := result[id]; !seen {
			result[id] = entity.VoteNone
			unique = append(unique, id)
		}
	}

	if userID == uuid.Nil {
		return result
	}

	votes, err := s.votes.FindByReviews(ctx, unique, userID)
	if err != nil {
		s.log.Warn("Batch vote lookup failed, reporting NONE",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("review_count", len(unique)),
		)
		return result
	}

	for _, v := range votes {
		if _, asked := result[v.ReviewID]; asked {
			result[v.ReviewID] = kindOf(v)
		}
	}
	return result
}

func kindOf(vote *entity.ReviewVote) entity.VoteKind {
	if vote == nil {
		return entity.VoteNone
	}
	kind, ok := entity.ParseVoteKind(string(vote.VoteType))
	if !ok {
		return entity.VoteNone
	}
	return kind
}
