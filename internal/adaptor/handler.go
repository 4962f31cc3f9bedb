package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Movie  *MovieHandler
	Review *ReviewHandler
	Vote   *VoteHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Movie:  NewMovieHandler(service.Movie, log),
		Review: NewReviewHandler(service.Review, log),
		Vote:   NewVoteHandler(service.Vote, service.Review, log),
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// handleServiceError maps usecase errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Any("errors", verr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrInvalidVote):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "You are not allowed to do that")

	case errors.Is(err, usecase.ErrReviewNotFound), errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken):
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrPartialWrite):
		log.Error(operation+" partially applied", zap.Error(err))
		utils.ResponseInternalError(w, usecase.ErrPartialWrite.Error())

	case errors.Is(err, usecase.ErrStorageUnavailable), errors.Is(err, usecase.ErrCatalogUnavailable):
		log.Error(operation+" failed, dependency unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// requireUser writes a 401 and reports false for anonymous requests.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return userID, ok
}

// uuidParam parses a UUID path parameter, answering 400 when it is malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
