package response

import (
	"movie-review/internal/catalog"
	"movie-review/internal/data/entity"
)

type MovieListResponse struct {
	Movies []catalog.Movie `json:"movies"`
	Source string          `json:"source"` // catalog, local or none
}

type PersonCreditsResponse struct {
	PersonID string           `json:"person_id"`
	Credits  []catalog.Credit `json:"credits"`
}

type SavedMovieResponse struct {
	MovieID     string `json:"movie_id"`
	Title       string `json:"title"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Description string `json:"description"`
	SavedAt     int64  `json:"saved_at"`
}

type WatchedMovieResponse struct {
	MovieID     string  `json:"movie_id"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	ReleaseYear int     `json:"release_year"`
	WatchedAt   int64   `json:"watched_at"`
}

func SavedMovieToResponse(m *entity.SavedMovie) SavedMovieResponse {
	return SavedMovieResponse{
		MovieID:     m.MovieID,
		Title:       m.Title,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		Description: m.Description,
		SavedAt:     m.SavedAt,
	}
}

func WatchedMovieToResponse(m *entity.WatchedMovie) WatchedMovieResponse {
	return WatchedMovieResponse{
		MovieID:     m.MovieID,
		Title:       m.Title,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		Description: m.Description,
		Rating:      m.Rating,
		ReleaseYear: m.ReleaseYear,
		WatchedAt:   m.WatchedAt,
	}
}

// MovieFromEntity maps a locally stored fallback row to the catalog view.
func MovieFromEntity(m *entity.Movie) catalog.Movie {
	return catalog.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Category:    m.Category,
		IsPopular:   m.IsPopular,
		ImageURL:    m.ImageURL,
		Description: m.Description,
		Rating:      m.Rating,
		ReleaseYear: m.ReleaseYear,
		Genres:      []string{m.Category},
	}
}
