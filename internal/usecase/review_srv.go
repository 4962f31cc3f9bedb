package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReview(ctx context.Context, reviewID, viewerID uuid.UUID) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string, viewerID uuid.UUID) ([]response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error

	GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error)
}

type reviewService struct {
	repo  *repository.Repository
	votes VoteService
	now   func() time.Time
	log   *zap.Logger
}

func NewReviewService(repo *repository.Repository, votes VoteService, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		votes: votes,
		now:   time.Now,
		log:   log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	review := &entity.Review{
		ID:        uuid.New(),
		MovieID:   strings.TrimSpace(req.MovieID),
		UserID:    user.ID,
		UserName:  user.DisplayName(),
		UserEmail: user.Email,
		Rating:    *req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		Timestamp: s.now().UnixMilli(),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", review.MovieID),
		zap.Float32("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review, entity.VoteNone)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID, viewerID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	resp := response.ReviewToResponse(review, s.votes.GetVote(ctx, reviewID, viewerID))
	return &resp, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string, viewerID uuid.UUID) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return s.annotate(ctx, reviews, viewerID), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	total, err := s.repo.Review.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return response.NewPaginatedResponse(s.annotate(ctx, reviews, userID), page.Page, page.Limit(), total), nil
}

// annotate attaches the viewer's vote to each review.
func (s *reviewService) annotate(ctx context.Context, reviews []*entity.Review, viewerID uuid.UUID) []response.ReviewResponse {
	ids := make([]uuid.UUID, len(reviews))
	for i, r := range reviews {
		ids[i] = r.ID
	}
	votes := s.votes.GetVotesForReviews(ctx, ids, viewerID)

	out := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, response.ReviewToResponse(r, votes[r.ID]))
	}
	return out
}

// DeleteReview removes the review and its votes in one transaction. Only the
// author may delete.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.UserID != userID {
		s.log.Warn("Delete review forbidden",
			zap.String("review_id", reviewID.String()),
			zap.String("user_id", userID.String()),
		)
		return ErrForbidden
	}

	var removedVotes int64
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.repo.Vote.DeleteByReview(ctx, reviewID)
		if err != nil {
			return err
		}
		removedVotes = n
		return s.repo.Review.Delete(ctx, reviewID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrReviewNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID.String()),
		zap.Int64("votes_removed", removedVotes),
	)
	return nil
}

func (s *reviewService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error) {
	avg, count, err := s.repo.Review.GetMovieReviewStats(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return &response.MovieReviewStats{
		MovieID:       movieID,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}
