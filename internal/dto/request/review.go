package request

type CreateReviewRequest struct {
	MovieID string   `json:"movie_id" validate:"required,max=32"`
	Rating  *float32 `json:"rating" validate:"required,gte=0,lte=5"`
	Comment string   `json:"comment" validate:"max=2000"`
}

type CastVoteRequest struct {
	Vote string `json:"vote" validate:"required,oneof=LIKE DISLIKE"`
}

type BatchVotesRequest struct {
	ReviewIDs []string `json:"review_ids" validate:"max=200,dive,uuid4"`
}
