package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-review/internal/data/entity"
	"movie-review/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newReviews(s *store) (ReviewService, VoteService) {
	votes := newVotes(s, true)
	return NewReviewService(s.repository(), votes, zap.NewNop()), votes
}

func addUser(s *store, name, email string) *entity.User {
	u := &entity.User{Record: entity.Record{ID: uuid.New()}, Name: name, Email: email}
	s.users[u.ID] = u
	return u
}

func ratingPtr(v float32) *float32 { return &v }

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	author := addUser(s, "", "ana@example.com")
	reviews, _ := newReviews(s)

	got, err := reviews.CreateReview(ctx, author.ID, &request.CreateReviewRequest{
		MovieID: " 550 ",
		Rating:  ratingPtr(4.5),
		Comment: "  Great  ",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if got.MovieID != "550" || got.Comment != "Great" {
		t.Fatalf("review = %+v, want trimmed movie id and comment", got)
	}
	if got.UserName != "Anonymous" {
		t.Fatalf("UserName = %q, want Anonymous for a nameless user", got.UserName)
	}
	if got.Likes != 0 || got.Dislikes != 0 || got.UserVote != string(entity.VoteNone) {
		t.Fatalf("new review counters/vote = %d/%d/%s", got.Likes, got.Dislikes, got.UserVote)
	}
	if len(s.reviews) != 1 {
		t.Fatalf("stored %d reviews, want 1", len(s.reviews))
	}
}

func TestCreateReviewValidation(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	author := addUser(s, "Ana", "ana@example.com")
	reviews, _ := newReviews(s)

	tests := []struct {
		name string
		req  *request.CreateReviewRequest
	}{
		{"missing rating", &request.CreateReviewRequest{MovieID: "550"}},
		{"rating above five", &request.CreateReviewRequest{MovieID: "550", Rating: ratingPtr(5.5)}},
		{"missing movie", &request.CreateReviewRequest{Rating: ratingPtr(3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reviews.CreateReview(ctx, author.ID, tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) || !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}

	if _, err := reviews.CreateReview(ctx, uuid.Nil, &request.CreateReviewRequest{MovieID: "550", Rating: ratingPtr(3)}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous CreateReview err = %v, want ErrUnauthenticated", err)
	}
	if _, err := reviews.CreateReview(ctx, uuid.New(), &request.CreateReviewRequest{MovieID: "550", Rating: ratingPtr(3)}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unknown user CreateReview err = %v, want ErrUnauthenticated", err)
	}
}

func TestGetMovieReviewsAnnotatesViewerVote(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	r1 := s.addReview("550", uuid.New(), 0, 0)
	r2 := s.addReview("550", uuid.New(), 0, 0)
	s.addReview("680", uuid.New(), 0, 0)
	viewer := uuid.New()
	reviews, votes := newReviews(s)

	if _, err := votes.CastVote(ctx, r1.ID, viewer, entity.VoteLike); err != nil {
		t.Fatalf("CastVote: %v", err)
	}

	got, err := reviews.GetMovieReviews(ctx, "550", viewer)
	if err != nil {
		t.Fatalf("GetMovieReviews: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reviews, want 2", len(got))
	}
	if got[0].ID != r2.ID.String() {
		t.Fatalf("first review = %s, want newest %s", got[0].ID, r2.ID)
	}
	for _, r := range got {
		want := entity.VoteNone
		if r.ID == r1.ID.String() {
			want = entity.VoteLike
		}
		if r.UserVote != string(want) {
			t.Errorf("review %s user_vote = %s, want %s", r.ID, r.UserVote, want)
		}
	}
	if got[1].Likes != 1 {
		t.Fatalf("liked review likes = %d, want 1", got[1].Likes)
	}

	if got, _ := reviews.GetMovieReviews(ctx, "999", viewer); len(got) != 0 {
		t.Fatalf("unknown movie returned %d reviews", len(got))
	}
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	author := uuid.New()
	review := s.addReview("550", author, 0, 0)
	reviews, votes := newReviews(s)

	if _, err := votes.CastVote(ctx, review.ID, uuid.New(), entity.VoteLike); err != nil {
		t.Fatalf("CastVote: %v", err)
	}

	if err := reviews.DeleteReview(ctx, review.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-author delete err = %v, want ErrForbidden", err)
	}
	if err := reviews.DeleteReview(ctx, review.ID, uuid.Nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous delete err = %v, want ErrUnauthenticated", err)
	}
	if err := reviews.DeleteReview(ctx, review.ID, author); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if len(s.reviews) != 0 || len(s.votes) != 0 {
		t.Fatalf("after delete: %d reviews, %d votes remain", len(s.reviews), len(s.votes))
	}
	if err := reviews.DeleteReview(ctx, review.ID, author); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("second delete err = %v, want ErrReviewNotFound", err)
	}
}

func TestGetUserReviewsPaginates(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	author := uuid.New()
	for i := 0; i < 5; i++ {
		s.addReview("550", author, 0, 0)
	}
	s.addReview("550", uuid.New(), 0, 0)
	reviews, _ := newReviews(s)

	got, err := reviews.GetUserReviews(ctx, author, request.PaginatedRequest{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("GetUserReviews: %v", err)
	}
	if len(got.Data) != 2 {
		t.Fatalf("page 2 has %d reviews, want 2", len(got.Data))
	}
	if got.Pagination.Total != 5 {
		t.Fatalf("total = %d, want 5", got.Pagination.Total)
	}
}

func TestGetMovieReviewStats(t *testing.T) {
	s := newStore()
	s.addReview("550", uuid.New(), 0, 0)
	s.addReview("550", uuid.New(), 0, 0)
	reviews, _ := newReviews(s)

	stats, err := reviews.GetMovieReviewStats(context.Background(), "550")
	if err != nil {
		t.Fatalf("GetMovieReviewStats: %v", err)
	}
	if stats.ReviewCount != 2 || stats.AverageRating != 4 {
		t.Fatalf("stats = %+v, want 2 reviews averaging 4", stats)
	}
}
