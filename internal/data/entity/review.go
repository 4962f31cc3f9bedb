package entity

import (
	"github.com/google/uuid"
)

// Review is a user's rating of a catalog movie. Likes and Dislikes are only
// ever changed through atomic increments by the vote engine.
type Review struct {
	ID        uuid.UUID `db:"id"`
	MovieID   string    `db:"movie_id"`
	UserID    uuid.UUID `db:"user_id"`
	UserName  string    `db:"user_name"`
	UserEmail string    `db:"user_email"`
	Rating    float32   `db:"rating"` // 0-5
	Comment   string    `db:"comment"`
	Timestamp int64     `db:"timestamp"` // epoch millis
	Likes     int       `db:"likes"`
	Dislikes  int       `db:"dislikes"`
}
