package entity

import "github.com/google/uuid"

type SavedMovie struct {
	UserID      uuid.UUID `db:"user_id"`
	MovieID     string    `db:"movie_id"`
	Title       string    `db:"title"`
	ImageURL    string    `db:"image_url"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	SavedAt     int64     `db:"saved_at"`
}

type WatchedMovie struct {
	UserID      uuid.UUID `db:"user_id"`
	MovieID     string    `db:"movie_id"`
	Title       string    `db:"title"`
	ImageURL    string    `db:"image_url"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	Rating      float64   `db:"rating"`
	ReleaseYear int       `db:"release_year"`
	WatchedAt   int64     `db:"watched_at"`
}
