package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, log: log.With(zap.String("handler", "review"))}
}

// CreateReview handles POST /api/reviews. The author name comes from the
// profile, never the body.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	author, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body request.CreateReviewRequest
	if err := decodeJSON(r, &body); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.CreateReview(r.Context(), author, &body)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}
	utils.ResponseCreated(w, "Review created", created)
}

func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := uuidParam(w, r, "id", "review")
	if !ok {
		return
	}

	found, err := h.service.GetReview(r.Context(), reviewID, utils.ViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}
	utils.ResponseSuccess(w, "success", found)
}

// GetMovieReviews lists a movie's reviews newest first, each annotated with
// the viewer's own vote.
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieParam(w, r)
	if !ok {
		return
	}

	list, err := h.service.GetMovieReviews(r.Context(), movieID, utils.ViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list movie reviews")
		return
	}
	utils.ResponseSuccess(w, "success", list)
}

func (h *ReviewHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	author, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetUserReviews(r.Context(), author, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list user reviews")
		return
	}
	utils.ResponseSuccess(w, "success", page)
}

// DeleteReview removes a review and its votes. Only the author may do so.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "id", "review")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), reviewID, caller); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}
	utils.ResponseSuccess(w, "Review deleted", nil)
}

func (h *ReviewHandler) GetMovieReviewStats(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieParam(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetMovieReviewStats(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "movie review stats")
		return
	}
	utils.ResponseSuccess(w, "success", stats)
}

func movieParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return "", false
	}
	return movieID, true
}
