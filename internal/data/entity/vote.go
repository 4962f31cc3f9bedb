package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type VoteKind string

const (
	VoteNone    VoteKind = "NONE"
	VoteLike    VoteKind = "LIKE"
	VoteDislike VoteKind = "DISLIKE"
)

// ParseVoteKind maps a stored or requested value to a VoteKind. Unknown
// values report ok=false and map to VoteNone.
func ParseVoteKind(s string) (VoteKind, bool) {
	switch VoteKind(s) {
	case VoteNone, VoteLike, VoteDislike:
		return VoteKind(s), true
	default:
		return VoteNone, false
	}
}

// ReviewVote is the single vote record a user holds on a review. A NONE vote
// is never stored: absence of the record means NONE.
type ReviewVote struct {
	ID        string    `db:"id"`
	ReviewID  uuid.UUID `db:"review_id"`
	UserID    uuid.UUID `db:"user_id"`
	VoteType  VoteKind  `db:"vote_type"`
	Timestamp int64     `db:"timestamp"` // epoch millis
}

// VoteID is the composite document key for a (review, user) pair.
func VoteID(reviewID, userID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", reviewID, userID)
}
