package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PATCH /api/user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}

// ListSaved handles GET /api/user/saved
func (h *UserHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListSavedMovies(r.Context(), utils.ViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list saved movies")
		return
	}
	utils.ResponseSuccess(w, "success", movies)
}

// SaveMovie handles POST /api/user/saved
func (h *UserHandler) SaveMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSnapshot
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	saved, err := h.service.SaveMovie(r.Context(), utils.ViewerFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save movie")
		return
	}
	utils.ResponseCreated(w, "success", saved)
}

// RemoveSaved handles DELETE /api/user/saved/{movieID}
func (h *UserHandler) RemoveSaved(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveSavedMovie(r.Context(), utils.ViewerFromContext(r.Context()), chi.URLParam(r, "movieID"))
	if err != nil {
		handleServiceError(w, h.log, err, "remove saved movie")
		return
	}
	utils.ResponseSuccess(w, "success", nil)
}

// ListWatched handles GET /api/user/watched
func (h *UserHandler) ListWatched(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListWatchedMovies(r.Context(), utils.ViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list watched movies")
		return
	}
	utils.ResponseSuccess(w, "success", movies)
}

// MarkWatched handles POST /api/user/watched
func (h *UserHandler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSnapshot
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	watched, err := h.service.MarkWatched(r.Context(), utils.ViewerFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "mark watched")
		return
	}
	utils.ResponseCreated(w, "success", watched)
}

// RemoveWatched handles DELETE /api/user/watched/{movieID}
func (h *UserHandler) RemoveWatched(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveWatchedMovie(r.Context(), utils.ViewerFromContext(r.Context()), chi.URLParam(r, "movieID"))
	if err != nil {
		handleServiceError(w, h.log, err, "remove watched movie")
		return
	}
	utils.ResponseSuccess(w, "success", nil)
}
