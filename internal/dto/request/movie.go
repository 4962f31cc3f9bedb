package request

// MovieSnapshot is the client's copy of a movie stored with list entries.
type MovieSnapshot struct {
	MovieID     string  `json:"movie_id" validate:"required,max=32"`
	Title       string  `json:"title" validate:"required,max=300"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"max=50"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseYear int     `json:"release_year" validate:"gte=0,lte=9999"`
}
