package response

import (
	"movie-review/internal/data/entity"
)

type ReviewResponse struct {
	ID        string  `json:"id"`
	MovieID   string  `json:"movie_id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	UserEmail string  `json:"user_email,omitempty"`
	Rating    float32 `json:"rating"`
	Comment   string  `json:"comment"`
	Timestamp int64   `json:"timestamp"`
	Likes     int     `json:"likes"`
	Dislikes  int     `json:"dislikes"`
	UserVote  string  `json:"user_vote,omitempty"`
}

type MovieReviewStats struct {
	MovieID       string  `json:"movie_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type VoteResponse struct {
	ReviewID string `json:"review_id"`
	Vote     string `json:"vote"`
	Likes    *int   `json:"likes,omitempty"`
	Dislikes *int   `json:"dislikes,omitempty"`
}

type BatchVotesResponse struct {
	Votes map[string]string `json:"votes"`
}

func ReviewToResponse(review *entity.Review, userVote entity.VoteKind) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		MovieID:   review.MovieID,
		UserID:    review.UserID.String(),
		UserName:  review.UserName,
		UserEmail: review.UserEmail,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Timestamp: review.Timestamp,
		Likes:     review.Likes,
		Dislikes:  review.Dislikes,
		UserVote:  string(userVote),
	}
}
