package adaptor

import (
	"errors"
	"net/http"

	"movie-review/internal/data/entity"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VoteHandler struct {
	votes   usecase.VoteService
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewVoteHandler(votes usecase.VoteService, reviews usecase.ReviewService, log *zap.Logger) *VoteHandler {
	return &VoteHandler{
		votes:   votes,
		reviews: reviews,
		log:     log.With(zap.String("handler", "vote")),
	}
}

// GetVote handles GET /api/reviews/{id}/vote. Anonymous callers get NONE.
func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := uuidParam(w, r, "id", "review")
	if !ok {
		return
	}

	vote := h.votes.GetVote(r.Context(), reviewID, utils.ViewerFromContext(r.Context()))
	utils.ResponseSuccess(w, "success", response.VoteResponse{
		ReviewID: reviewID.String(),
		Vote:     string(vote),
	})
}

// CastVote handles POST /api/reviews/{id}/vote (protected)
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reviewID, ok := uuidParam(w, r, "id", "review")
	if !ok {
		return
	}

	var req request.CastVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	final, err := h.votes.CastVote(r.Context(), reviewID, userID, entity.VoteKind(req.Vote))
	if err != nil {
		handleServiceError(w, h.log, err, "cast vote")
		return
	}

	resp := response.VoteResponse{ReviewID: reviewID.String(), Vote: string(final)}
	// counters are informational; the vote itself already succeeded
	if review, err := h.reviews.GetReview(r.Context(), reviewID, userID); err == nil {
		resp.Likes = &review.Likes
		resp.Dislikes = &review.Dislikes
	} else if !errors.Is(err, usecase.ErrReviewNotFound) {
		h.log.Warn("Failed to reload review after vote",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetVotesForReviews handles POST /api/reviews/votes
func (h *VoteHandler) GetVotesForReviews(w http.ResponseWriter, r *http.Request) {
	var req request.BatchVotesRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ReviewIDs))
	for _, raw := range req.ReviewIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid review ID: "+raw, nil)
			return
		}
		ids = append(ids, id)
	}

	votes := h.votes.GetVotesForReviews(r.Context(), ids, utils.ViewerFromContext(r.Context()))

	out := make(map[string]string, len(votes))
	for id, kind := range votes {
		out[id.String()] = string(kind)
	}
	utils.ResponseSuccess(w, "success", response.BatchVotesResponse{Votes: out})
}
