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

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	ListSavedMovies(ctx context.Context, userID uuid.UUID) ([]response.SavedMovieResponse, error)
	SaveMovie(ctx context.Context, userID uuid.UUID, req *request.MovieSnapshot) (*response.SavedMovieResponse, error)
	RemoveSavedMovie(ctx context.Context, userID uuid.UUID, movieID string) error

	ListWatchedMovies(ctx context.Context, userID uuid.UUID) ([]response.WatchedMovieResponse, error)
	MarkWatched(ctx context.Context, userID uuid.UUID, req *request.MovieSnapshot) (*response.WatchedMovieResponse, error)
	RemoveWatchedMovie(ctx context.Context, userID uuid.UUID, movieID string) error
}

type userService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = *req.ProfileImageURL
	}
	user.UpdatedAt = s.now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) ListSavedMovies(ctx context.Context, userID uuid.UUID) ([]response.SavedMovieResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	movies, err := s.repo.SavedMovie.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	out := make([]response.SavedMovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, response.SavedMovieToResponse(m))
	}
	return out, nil
}

func (s *userService) SaveMovie(ctx context.Context, userID uuid.UUID, req *request.MovieSnapshot) (*response.SavedMovieResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	saved := &entity.SavedMovie{
		UserID:      userID,
		MovieID:     req.MovieID,
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Description: req.Description,
		SavedAt:     s.now().UnixMilli(),
	}
	if err := s.repo.SavedMovie.Upsert(ctx, saved); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	resp := response.SavedMovieToResponse(saved)
	return &resp, nil
}

func (s *userService) RemoveSavedMovie(ctx context.Context, userID uuid.UUID, movieID string) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	return mapRemoveErr(s.repo.SavedMovie.Delete(ctx, userID, movieID))
}

func (s *userService) ListWatchedMovies(ctx context.Context, userID uuid.UUID) ([]response.WatchedMovieResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	movies, err := s.repo.WatchedMovie.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	out := make([]response.WatchedMovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, response.WatchedMovieToResponse(m))
	}
	return out, nil
}

func (s *userService) MarkWatched(ctx context.Context, userID uuid.UUID, req *request.MovieSnapshot) (*response.WatchedMovieResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	watched := &entity.WatchedMovie{
		UserID:      userID,
		MovieID:     req.MovieID,
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Description: req.Description,
		Rating:      req.Rating,
		ReleaseYear: req.ReleaseYear,
		WatchedAt:   s.now().UnixMilli(),
	}
	if err := s.repo.WatchedMovie.Upsert(ctx, watched); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	resp := response.WatchedMovieToResponse(watched)
	return &resp, nil
}

func (s *userService) RemoveWatchedMovie(ctx context.Context, userID uuid.UUID, movieID string) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	return mapRemoveErr(s.repo.WatchedMovie.Delete(ctx, userID, movieID))
}

func mapRemoveErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
}
