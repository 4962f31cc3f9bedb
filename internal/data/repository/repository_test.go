package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"
	"movie-review/pkg/database/dbtest"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type testEnv struct {
	ctx  context.Context
	db   *database.DB
	repo *Repository
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()
	db := dbtest.New(t)
	return &testEnv{
		ctx:  context.Background(),
		db:   db,
		repo: NewRepository(db, zap.NewNop()),
	}
}

func mustCreateUser(t testing.TB, env *testEnv, email string) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Record:       entity.Record{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
	}
	if err := env.repo.User.Create(env.ctx, user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func mustCreateReview(t testing.TB, env *testEnv, movieID string, author uuid.UUID, ts int64) *entity.Review {
	t.Helper()
	review := &entity.Review{
		ID:        uuid.New(),
		MovieID:   movieID,
		UserID:    author,
		UserName:  "Test User",
		Rating:    4,
		Comment:   "solid",
		Timestamp: ts,
	}
	if err := env.repo.Review.Create(env.ctx, review); err != nil {
		t.Fatalf("create review: %v", err)
	}
	return review
}

func TestUserRepository_CreateFindDuplicate(t *testing.T) {
	env := newTestEnv(t)

	user := mustCreateUser(t, env, "Ann@Example.com")

	got, err := env.repo.User.FindByEmail(env.ctx, "ann@example.com")
	if err != nil || got == nil || got.ID != user.ID {
		t.Fatalf("FindByEmail = %v, %v; want %s", got, err, user.ID)
	}

	dup := *user
	dup.ID = uuid.New()
	if err := env.repo.User.Create(env.ctx, &dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate create err = %v, want ErrDuplicate", err)
	}

	missing, err := env.repo.User.FindByID(env.ctx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("FindByID(unknown) = %v, %v; want nil, nil", missing, err)
	}
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := mustCreateUser(t, env, "s@example.com")

	session := &entity.Session{
		AppendOnly: entity.AppendOnly{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	if err := env.repo.Session.Create(env.ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	found, err := env.repo.Session.FindValid(env.ctx, session.Token)
	if err != nil || found == nil || found.UserID != user.ID {
		t.Fatalf("FindValid = %v, %v", found, err)
	}

	if err := env.repo.Session.Revoke(env.ctx, session.Token); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := env.repo.Session.Revoke(env.ctx, session.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second revoke err = %v, want ErrNotFound", err)
	}
	found, err = env.repo.Session.FindValid(env.ctx, session.Token)
	if err != nil || found != nil {
		t.Fatalf("FindValid after revoke = %v, %v; want nil", found, err)
	}
}

func TestReviewRepository_IncrementCounters(t *testing.T) {
	env := newTestEnv(t)
	author := uuid.New()
	review := mustCreateReview(t, env, "550", author, 1000)

	if err := env.repo.Review.IncrementCounters(env.ctx, review.ID, 1, 0); err != nil {
		t.Fatalf("increment likes: %v", err)
	}
	if err := env.repo.Review.IncrementCounters(env.ctx, review.ID, -1, 1); err != nil {
		t.Fatalf("switch to dislike: %v", err)
	}

	got, err := env.repo.Review.FindByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("find review: %v", err)
	}
	if got.Likes != 0 || got.Dislikes != 1 {
		t.Fatalf("counters = (%d,%d), want (0,1)", got.Likes, got.Dislikes)
	}

	// the CHECK constraint rejects a negative counter
	if err := env.repo.Review.IncrementCounters(env.ctx, review.ID, -1, 0); err == nil {
		t.Fatal("expected negative likes to be rejected")
	}

	if err := env.repo.Review.IncrementCounters(env.ctx, uuid.New(), 1, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("increment unknown review err = %v, want ErrNotFound", err)
	}
}

func TestReviewRepository_ListingAndStats(t *testing.T) {
	env := newTestEnv(t)
	author := uuid.New()
	older := mustCreateReview(t, env, "550", author, 1000)
	newer := mustCreateReview(t, env, "550", author, 2000)
	mustCreateReview(t, env, "13", author, 3000)

	reviews, err := env.repo.Review.FindByMovieID(env.ctx, "550")
	if err != nil {
		t.Fatalf("FindByMovieID: %v", err)
	}
	if len(reviews) != 2 || reviews[0].ID != newer.ID || reviews[1].ID != older.ID {
		t.Fatalf("FindByMovieID order wrong: %+v", reviews)
	}

	page, err := env.repo.Review.FindByUserID(env.ctx, author, 2, 0)
	if err != nil || len(page) != 2 {
		t.Fatalf("FindByUserID = %d reviews, %v; want 2", len(page), err)
	}
	total, err := env.repo.Review.CountByUserID(env.ctx, author)
	if err != nil || total != 3 {
		t.Fatalf("CountByUserID = %d, %v; want 3", total, err)
	}

	avg, count, err := env.repo.Review.GetMovieReviewStats(env.ctx, "550")
	if err != nil || count != 2 || avg != 4 {
		t.Fatalf("stats = %v, %d, %v; want 4, 2", avg, count, err)
	}
	avg, count, err = env.repo.Review.GetMovieReviewStats(env.ctx, "unknown")
	if err != nil || count != 0 || avg != 0 {
		t.Fatalf("empty stats = %v, %d, %v", avg, count, err)
	}
}

func TestVoteRepository_UpsertFindDelete(t *testing.T) {
	env := newTestEnv(t)
	review := mustCreateReview(t, env, "550", uuid.New(), 1000)
	other := mustCreateReview(t, env, "550", uuid.New(), 1001)
	voter := uuid.New()

	vote := &entity.ReviewVote{
		ID:        entity.VoteID(review.ID, voter),
		ReviewID:  review.ID,
		UserID:    voter,
		VoteType:  entity.VoteLike,
		Timestamp: 1,
	}
	if err := env.repo.Vote.Upsert(env.ctx, vote); err != nil {
		t.Fatalf("upsert like: %v", err)
	}
	vote.VoteType = entity.VoteDislike
	if err := env.repo.Vote.Upsert(env.ctx, vote); err != nil {
		t.Fatalf("upsert dislike: %v", err)
	}

	got, err := env.repo.Vote.Find(env.ctx, review.ID, voter)
	if err != nil || got == nil || got.VoteType != entity.VoteDislike {
		t.Fatalf("Find = %+v, %v; want DISLIKE", got, err)
	}

	votes, err := env.repo.Vote.FindByReviews(env.ctx, []uuid.UUID{review.ID, other.ID}, voter)
	if err != nil || len(votes) != 1 || votes[0].ReviewID != review.ID {
		t.Fatalf("FindByReviews = %+v, %v", votes, err)
	}

	if err := env.repo.Vote.Delete(env.ctx, review.ID, voter); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = env.repo.Vote.Find(env.ctx, review.ID, voter)
	if err != nil || got != nil {
		t.Fatalf("Find after delete = %+v, %v; want nil", got, err)
	}

	// NONE is never stored
	none := *vote
	none.VoteType = entity.VoteNone
	if err := env.repo.Vote.Upsert(env.ctx, &none); err == nil {
		t.Fatal("expected NONE vote row to be rejected")
	}
}

func TestVoteRepository_DeleteReviewCascadesInTx(t *testing.T) {
	env := newTestEnv(t)
	review := mustCreateReview(t, env, "550", uuid.New(), 1000)
	for i := 0; i < 3; i++ {
		voter := uuid.New()
		if err := env.repo.Vote.Upsert(env.ctx, &entity.ReviewVote{
			ID:        entity.VoteID(review.ID, voter),
			ReviewID:  review.ID,
			UserID:    voter,
			VoteType:  entity.VoteLike,
			Timestamp: int64(i),
		}); err != nil {
			t.Fatalf("upsert vote %d: %v", i, err)
		}
	}

	err := env.repo.Tx.WithinTx(env.ctx, func(ctx context.Context) error {
		if err := env.repo.Vote.Lock(ctx, review.ID, uuid.Nil); err != nil {
			return err
		}
		n, err := env.repo.Vote.DeleteByReview(ctx, review.ID)
		if err != nil {
			return err
		}
		if n != 3 {
			return fmt.Errorf("deleted %d votes, want 3", n)
		}
		return env.repo.Review.Delete(ctx, review.ID)
	})
	if err != nil {
		t.Fatalf("delete review tx: %v", err)
	}

	got, err := env.repo.Review.FindByID(env.ctx, review.ID)
	if err != nil || got != nil {
		t.Fatalf("review after delete = %+v, %v", got, err)
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	env := newTestEnv(t)
	review := mustCreateReview(t, env, "550", uuid.New(), 1000)

	boom := errors.New("boom")
	err := env.repo.Tx.WithinTx(env.ctx, func(ctx context.Context) error {
		if err := env.repo.Review.IncrementCounters(ctx, review.ID, 5, 0); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx err = %v, want boom", err)
	}

	got, err := env.repo.Review.FindByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("find review: %v", err)
	}
	if got.Likes != 0 {
		t.Fatalf("likes = %d after rollback, want 0", got.Likes)
	}
}

func TestListRepositories(t *testing.T) {
	env := newTestEnv(t)
	user := mustCreateUser(t, env, "lists@example.com")

	saved := &entity.SavedMovie{UserID: user.ID, MovieID: "550", Title: "Fight Club", SavedAt: 1}
	if err := env.repo.SavedMovie.Upsert(env.ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved.SavedAt = 2
	if err := env.repo.SavedMovie.Upsert(env.ctx, saved); err != nil {
		t.Fatalf("save again: %v", err)
	}
	list, err := env.repo.SavedMovie.FindByUserID(env.ctx, user.ID)
	if err != nil || len(list) != 1 || list[0].SavedAt != 2 {
		t.Fatalf("saved list = %+v, %v", list, err)
	}
	if err := env.repo.SavedMovie.Delete(env.ctx, user.ID, "550"); err != nil {
		t.Fatalf("remove saved: %v", err)
	}
	if err := env.repo.SavedMovie.Delete(env.ctx, user.ID, "550"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove twice err = %v, want ErrNotFound", err)
	}

	watched := &entity.WatchedMovie{UserID: user.ID, MovieID: "13", Title: "Forrest Gump", ReleaseYear: 1994, WatchedAt: 5}
	if err := env.repo.WatchedMovie.Upsert(env.ctx, watched); err != nil {
		t.Fatalf("watch: %v", err)
	}
	wl, err := env.repo.WatchedMovie.FindByUserID(env.ctx, user.ID)
	if err != nil || len(wl) != 1 || wl[0].ReleaseYear != 1994 {
		t.Fatalf("watched list = %+v, %v", wl, err)
	}
}

func TestMovieRepository_FallbackFilters(t *testing.T) {
	env := newTestEnv(t)
	for _, m := range []*entity.Movie{
		{ID: "1", Title: "The Dark Knight", Category: "Action", IsPopular: true, Rating: 9},
		{ID: "2", Title: "Superbad", Category: "Comedy", Rating: 7.6},
		{ID: "3", Title: "Knight and Day", Category: "Action", Rating: 6.3},
	} {
		if err := env.repo.Movie.Upsert(env.ctx, m); err != nil {
			t.Fatalf("upsert %s: %v", m.ID, err)
		}
	}

	popular, err := env.repo.Movie.FindAll(env.ctx, MovieFilter{PopularOnly: true})
	if err != nil || len(popular) != 1 || popular[0].ID != "1" {
		t.Fatalf("popular = %+v, %v", popular, err)
	}

	action, err := env.repo.Movie.FindAll(env.ctx, MovieFilter{Category: "Action"})
	if err != nil || len(action) != 2 || action[0].ID != "1" {
		t.Fatalf("action = %+v, %v", action, err)
	}

	search, err := env.repo.Movie.FindAll(env.ctx, MovieFilter{Title: "KNIGHT", Limit: 1})
	if err != nil || len(search) != 1 {
		t.Fatalf("search = %+v, %v", search, err)
	}

	total, err := env.repo.Movie.Count(env.ctx)
	if err != nil || total != 3 {
		t.Fatalf("count = %d, %v; want 3", total, err)
	}
}

func TestReviewRepository_ConcurrentIncrementsAddUp(t *testing.T) {
	env := newTestEnv(t)
	review := mustCreateReview(t, env, "550", uuid.New(), 1000)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			likes, dislikes := 1, 0
			if i%4 == 0 {
				likes, dislikes = 0, 1
			}
			errs <- env.repo.Review.IncrementCounters(env.ctx, review.ID, likes, dislikes)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	got, err := env.repo.Review.FindByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("find review: %v", err)
	}
	if got.Likes != 24 || got.Dislikes != 8 {
		t.Fatalf("counters = (%d, %d), want (24, 8)", got.Likes, got.Dislikes)
	}
}
