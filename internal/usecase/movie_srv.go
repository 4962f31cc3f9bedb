package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"movie-review/internal/catalog"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/response"

	"go.uber.org/zap"
)

const (
	SourceCatalog = "catalog"
	SourceLocal   = "local"
	SourceNone    = "none"
)

// MovieService serves catalog browsing. List endpoints never fail: they fall
// back to the local movie table and finally to an empty list.
type MovieService interface {
	GetPopular(ctx context.Context, page int) *response.MovieListResponse
	GetTopRated(ctx context.Context, page int) *response.MovieListResponse
	GetNowPlaying(ctx context.Context, page int) *response.MovieListResponse
	GetUpcoming(ctx context.Context, page int) *response.MovieListResponse
	GetByCategory(ctx context.Context, category string, page int) *response.MovieListResponse
	Search(ctx context.Context, query string, page int) *response.MovieListResponse
	GetAll(ctx context.Context, page int) *response.MovieListResponse
	GetCategories() []string

	GetMovieDetails(ctx context.Context, movieID string) (*catalog.MovieDetails, error)
	GetPersonDetails(ctx context.Context, personID string) (*catalog.PersonDetails, error)
	GetPersonCredits(ctx context.Context, personID string) (*response.PersonCreditsResponse, error)

	SeedFallbackMovies(ctx context.Context) (int, error)
}

type movieService struct {
	repo    *repository.Repository
	catalog catalog.Client
	log     *zap.Logger
}

func NewMovieService(repo *repository.Repository, client catalog.Client, log *zap.Logger) MovieService {
	return &movieService{
		repo:    repo,
		catalog: client,
		log:     log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetPopular(ctx context.Context, page int) *response.MovieListResponse {
	return s.browse(ctx, "popular", func() ([]catalog.Movie, error) {
		return s.catalog.Popular(ctx, page)
	}, repository.MovieFilter{PopularOnly: true})
}

func (s *movieService) GetTopRated(ctx context.Context, page int) *response.MovieListResponse {
	return s.browse(ctx, "top_rated", func() ([]catalog.Movie, error) {
		return s.catalog.TopRated(ctx, page)
	}, repository.MovieFilter{})
}

func (s *movieService) GetNowPlaying(ctx context.Context, page int) *response.MovieListResponse {
	return s.browse(ctx, "now_playing", func() ([]catalog.Movie, error) {
		return s.catalog.NowPlaying(ctx, page)
	}, repository.MovieFilter{})
}

func (s *movieService) GetUpcoming(ctx context.Context, page int) *response.MovieListResponse {
	return s.browse(ctx, "upcoming", func() ([]catalog.Movie, error) {
		return s.catalog.Upcoming(ctx, page)
	}, repository.MovieFilter{})
}

func (s *movieService) GetByCategory(ctx context.Context, category string, page int) *response.MovieListResponse {
	genreID := catalog.CategoryGenreID(category)
	return s.browse(ctx, "category", func() ([]catalog.Movie, error) {
		return s.catalog.ByGenre(ctx, genreID, page)
	}, repository.MovieFilter{Category: category})
}

func (s *movieService) Search(ctx context.Context, query string, page int) *response.MovieListResponse {
	query = strings.TrimSpace(query)
	if query == "" {
		return &response.MovieListResponse{Movies: []catalog.Movie{}, Source: SourceNone}
	}
	return s.browse(ctx, "search", func() ([]catalog.Movie, error) {
		return s.catalog.Search(ctx, query, page)
	}, repository.MovieFilter{Title: query})
}

func (s *movieService) GetAll(ctx context.Context, page int) *response.MovieListResponse {
	return s.browse(ctx, "all", func() ([]catalog.Movie, error) {
		return s.catalog.Popular(ctx, page)
	}, repository.MovieFilter{})
}

func (s *movieService) GetCategories() []string {
	return catalog.Categories()
}

func (s *movieService) browse(ctx context.Context, endpoint string, fetch func() ([]catalog.Movie, error), fallback repository.MovieFilter) *response.MovieListResponse {
	movies, err := fetch()
	if err == nil {
		if movies == nil {
			movies = []catalog.Movie{}
		}
		return &response.MovieListResponse{Movies: movies, Source: SourceCatalog}
	}

	s.log.Warn("Catalog request failed, serving local movies",
		zap.String("endpoint", endpoint),
		zap.Error(err),
	)

	local, err := s.repo.Movie.FindAll(ctx, fallback)
	if err != nil {
		s.log.Error("Local movie fallback failed",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return &response.MovieListResponse{Movies: []catalog.Movie{}, Source: SourceNone}
	}

	out := make([]catalog.Movie, 0, len(local))
	for _, m := range local {
		out = append(out, response.MovieFromEntity(m))
	}
	return &response.MovieListResponse{Movies: out, Source: SourceLocal}
}

func (s *movieService) GetMovieDetails(ctx context.Context, movieID string) (*catalog.MovieDetails, error) {
	id, err := parseCatalogID("movie_id", movieID)
	if err != nil {
		return nil, err
	}

	details, err := s.catalog.MovieDetails(ctx, id)
	if err != nil {
		return nil, s.catalogErr("movie details", err)
	}
	return details, nil
}

func (s *movieService) GetPersonDetails(ctx context.Context, personID string) (*catalog.PersonDetails, error) {
	id, err := parseCatalogID("person_id", personID)
	if err != nil {
		return nil, err
	}

	person, err := s.catalog.PersonDetails(ctx, id)
	if err != nil {
		return nil, s.catalogErr("person details", err)
	}
	return person, nil
}

func (s *movieService) GetPersonCredits(ctx context.Context, personID string) (*response.PersonCreditsResponse, error) {
	id, err := parseCatalogID("person_id", personID)
	if err != nil {
		return nil, err
	}

	films, err := s.catalog.PersonCredits(ctx, id)
	if err != nil {
		return nil, s.catalogErr("person credits", err)
	}

	return &response.PersonCreditsResponse{
		PersonID: personID,
		Credits:  MergeCredits(films.Cast, films.Crew),
	}, nil
}

func (s *movieService) catalogErr(what string, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	s.log.Error("Catalog request failed", zap.String("request", what), zap.Error(err))
	return fmt.Errorf("%s: %w: %w", what, ErrCatalogUnavailable, err)
}

func parseCatalogID(field, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, invalid(field, "Must be a positive integer")
	}
	return id, nil
}
