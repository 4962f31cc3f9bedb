package usecase

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"movie-review/internal/catalog"
	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"

	"github.com/google/uuid"
)

var errInjected = errors.New("injected failure")

// store is an in-memory stand-in for the database. Fault fields make the
// matching operation fail.
type store struct {
	mu sync.Mutex

	users    map[uuid.UUID]*entity.User
	sessions map[uuid.UUID]*entity.Session
	movies   map[string]*entity.Movie
	reviews  map[uuid.UUID]*entity.Review
	votes    map[string]*entity.ReviewVote
	saved    map[string]*entity.SavedMovie
	watched  map[string]*entity.WatchedMovie

	failVoteFind    error
	failVoteBatch   error
	failVoteWrite   error
	failIncrement   error
	failReviewFind  error
	failMovieFind   error
	batchCalls      int
	incrementCalls  int
	transactions    int
	rolledBack      int
}

func newStore() *store {
	return &store{
		users:    map[uuid.UUID]*entity.User{},
		sessions: map[uuid.UUID]*entity.Session{},
		movies:   map[string]*entity.Movie{},
		reviews:  map[uuid.UUID]*entity.Review{},
		votes:    map[string]*entity.ReviewVote{},
		saved:    map[string]*entity.SavedMovie{},
		watched:  map[string]*entity.WatchedMovie{},
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:         fakeUsers{s},
		Session:      fakeSessions{s},
		Movie:        fakeMovies{s},
		Review:       fakeReviews{s},
		Vote:         fakeVotes{s},
		SavedMovie:   fakeSaved{s},
		WatchedMovie: fakeWatched{s},
		Tx:           fakeTx{s},
	}
}

func (s *store) addReview(movieID string, author uuid.UUID, likes, dislikes int) *entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &entity.Review{
		ID:        uuid.New(),
		MovieID:   movieID,
		UserID:    author,
		UserName:  "Author",
		Rating:    4,
		Timestamp: int64(len(s.reviews) + 1),
		Likes:     likes,
		Dislikes:  dislikes,
	}
	s.reviews[r.ID] = r
	return r
}

func (s *store) counters(id uuid.UUID) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.reviews[id]
	return r.Likes, r.Dislikes
}

func (s *store) storedVote(reviewID, userID uuid.UUID) entity.VoteKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.votes[entity.VoteID(reviewID, userID)]; ok {
		return v.VoteType
	}
	return entity.VoteNone
}

type snapshot struct {
	reviews map[uuid.UUID]entity.Review
	votes   map[string]entity.ReviewVote
	users   map[uuid.UUID]*entity.User
	session map[uuid.UUID]*entity.Session
}

func (s *store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		reviews: map[uuid.UUID]entity.Review{},
		votes:   map[string]entity.ReviewVote{},
		users:   maps.Clone(s.users),
		session: maps.Clone(s.sessions),
	}
	for k, v := range s.reviews {
		snap.reviews[k] = *v
	}
	for k, v := range s.votes {
		snap.votes[k] = *v
	}
	return snap
}

func (s *store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = map[uuid.UUID]*entity.Review{}
	for k, v := range snap.reviews {
		v := v
		s.reviews[k] = &v
	}
	s.votes = map[string]*entity.ReviewVote{}
	for k, v := range snap.votes {
		v := v
		s.votes[k] = &v
	}
	s.users = snap.users
	s.sessions = snap.session
}

type fakeTx struct{ s *store }

func (t fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	t.s.transactions++
	t.s.mu.Unlock()

	snap := t.s.snapshot()
	if err := fn(ctx); err != nil {
		t.s.restore(snap)
		t.s.mu.Lock()
		t.s.rolledBack++
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type fakeReviews struct{ s *store }

func (f fakeReviews) Create(_ context.Context, r *entity.Review) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *r
	f.s.reviews[r.ID] = &cp
	return nil
}

func (f fakeReviews) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failReviewFind != nil {
		return nil, f.s.failReviewFind
	}
	r, ok := f.s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f fakeReviews) FindByMovieID(_ context.Context, movieID string) ([]*entity.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Review
	for _, r := range f.s.reviews {
		if r.MovieID == movieID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (f fakeReviews) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Review
	for _, r := range f.s.reviews {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f fakeReviews) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, r := range f.s.reviews {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f fakeReviews) Delete(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.reviews, id)
	return nil
}

func (f fakeReviews) IncrementCounters(_ context.Context, id uuid.UUID, likesDelta, dislikesDelta int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.incrementCalls++
	if f.s.failIncrement != nil {
		return f.s.failIncrement
	}
	r, ok := f.s.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.Likes+likesDelta < 0 || r.Dislikes+dislikesDelta < 0 {
		return fmt.Errorf("check constraint violated")
	}
	r.Likes += likesDelta
	r.Dislikes += dislikesDelta
	return nil
}

func (f fakeReviews) GetMovieReviewStats(_ context.Context, movieID string) (float64, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var sum float64
	var n int64
	for _, r := range f.s.reviews {
		if r.MovieID == movieID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

type fakeVotes struct{ s *store }

func (f fakeVotes) Find(_ context.Context, reviewID, userID uuid.UUID) (*entity.ReviewVote, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failVoteFind != nil {
		return nil, f.s.failVoteFind
	}
	v, ok := f.s.votes[entity.VoteID(reviewID, userID)]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (f fakeVotes) FindByReviews(_ context.Context, reviewIDs []uuid.UUID, userID uuid.UUID) ([]*entity.ReviewVote, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.batchCalls++
	if f.s.failVoteBatch != nil {
		return nil, f.s.failVoteBatch
	}
	var out []*entity.ReviewVote
	for _, id := range reviewIDs {
		if v, ok := f.s.votes[entity.VoteID(id, userID)]; ok {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f fakeVotes) Upsert(_ context.Context, v *entity.ReviewVote) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failVoteWrite != nil {
		return f.s.failVoteWrite
	}
	if v.VoteType == entity.VoteNone {
		return fmt.Errorf("NONE must not be stored")
	}
	cp := *v
	f.s.votes[v.ID] = &cp
	return nil
}

func (f fakeVotes) Delete(_ context.Context, reviewID, userID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failVoteWrite != nil {
		return f.s.failVoteWrite
	}
	delete(f.s.votes, entity.VoteID(reviewID, userID))
	return nil
}

func (f fakeVotes) DeleteByReview(_ context.Context, reviewID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for k, v := range f.s.votes {
		if v.ReviewID == reviewID {
			delete(f.s.votes, k)
			n++
		}
	}
	return n, nil
}

func (f fakeVotes) Lock(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type fakeUsers struct{ s *store }

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}

type fakeSessions struct{ s *store }

func (f fakeSessions) Create(_ context.Context, sess *entity.Session) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *sess
	f.s.sessions[sess.Token] = &cp
	return nil
}

func (f fakeSessions) FindValid(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (f fakeSessions) Revoke(_ context.Context, token uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := sess.CreatedAt
	sess.RevokedAt = &now
	return nil
}

func (f fakeSessions) RevokeAllForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, sess := range f.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			now := sess.CreatedAt
			sess.RevokedAt = &now
			n++
		}
	}
	return n, nil
}

func (f fakeSessions) PurgeExpired(context.Context) (int64, error) { return 0, nil }

type fakeMovies struct{ s *store }

func (f fakeMovies) FindByID(_ context.Context, id string) (*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.movies[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (f fakeMovies) FindAll(_ context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failMovieFind != nil {
		return nil, f.s.failMovieFind
	}
	var out []*entity.Movie
	for _, m := range f.s.movies {
		if filter.PopularOnly && !m.IsPopular {
			continue
		}
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Title)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeMovies) Count(context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return int64(len(f.s.movies)), nil
}

func (f fakeMovies) Upsert(_ context.Context, m *entity.Movie) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *m
	f.s.movies[m.ID] = &cp
	return nil
}

type fakeSaved struct{ s *store }

func (f fakeSaved) Upsert(_ context.Context, m *entity.SavedMovie) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *m
	f.s.saved[m.UserID.String()+"/"+m.MovieID] = &cp
	return nil
}

func (f fakeSaved) Delete(_ context.Context, userID uuid.UUID, movieID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := userID.String() + "/" + movieID
	if _, ok := f.s.saved[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.saved, key)
	return nil
}

func (f fakeSaved) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.SavedMovie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.SavedMovie
	for _, m := range f.s.saved {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeWatched struct{ s *store }

func (f fakeWatched) Upsert(_ context.Context, m *entity.WatchedMovie) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *m
	f.s.watched[m.UserID.String()+"/"+m.MovieID] = &cp
	return nil
}

func (f fakeWatched) Delete(_ context.Context, userID uuid.UUID, movieID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := userID.String() + "/" + movieID
	if _, ok := f.s.watched[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.watched, key)
	return nil
}

func (f fakeWatched) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.WatchedMovie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.WatchedMovie
	for _, m := range f.s.watched {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeCatalog serves canned catalog data; err fails every call.
type fakeCatalog struct {
	popular []catalog.Movie
	cast    []catalog.Credit
	crew    []catalog.Credit
	details map[int]*catalog.MovieDetails
	err     error
	genres  []int
}

func (c *fakeCatalog) list() ([]catalog.Movie, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.popular, nil
}

func (c *fakeCatalog) Popular(context.Context, int) ([]catalog.Movie, error)    { return c.list() }
func (c *fakeCatalog) TopRated(context.Context, int) ([]catalog.Movie, error)   { return c.list() }
func (c *fakeCatalog) NowPlaying(context.Context, int) ([]catalog.Movie, error) { return c.list() }
func (c *fakeCatalog) Upcoming(context.Context, int) ([]catalog.Movie, error)   { return c.list() }

func (c *fakeCatalog) ByGenre(_ context.Context, genreID, _ int) ([]catalog.Movie, error) {
	c.genres = append(c.genres, genreID)
	return c.list()
}

func (c *fakeCatalog) Search(context.Context, string, int) ([]catalog.Movie, error) { return c.list() }

func (c *fakeCatalog) MovieDetails(_ context.Context, id int) (*catalog.MovieDetails, error) {
	if c.err != nil {
		return nil, c.err
	}
	d, ok := c.details[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return d, nil
}

func (c *fakeCatalog) PersonDetails(context.Context, int) (*catalog.PersonDetails, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &catalog.PersonDetails{ID: "31", Name: "Tom Hanks", Gender: "Male"}, nil
}

func (c *fakeCatalog) PersonCredits(context.Context, int) (*catalog.Filmography, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &catalog.Filmography{Cast: c.cast, Crew: c.crew}, nil
}

func (c *fakeCatalog) PersonCastCredits(context.Context, int) ([]catalog.Credit, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cast, nil
}

func (c *fakeCatalog) PersonCrewCredits(context.Context, int) ([]catalog.Credit, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.crew, nil
}
