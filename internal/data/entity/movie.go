package entity

// Movie is the locally stored fallback copy of a catalog movie, used when
// the catalog service cannot be reached.
type Movie struct {
	ID          string  `db:"id"`
	Title       string  `db:"title"`
	Category    string  `db:"category"`
	IsPopular   bool    `db:"is_popular"`
	ImageURL    string  `db:"image_url"`
	Description string  `db:"description"`
	Rating      float64 `db:"rating"`
	ReleaseYear int     `db:"release_year"`
}
