// Package catalog talks to the third-party movie catalog (TMDB v3) and
// converts its payloads into the read-only view models served by the API.
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the catalog has no record for the requested id.
var ErrNotFound = errors.New("catalog: not found")

type RoleKind string

const (
	RoleActing RoleKind = "acting"
	RoleCrew   RoleKind = "crew"
)

// Role describes how a person contributed to a movie. Acting roles carry
// Character; crew roles carry Job and Department.
type Role struct {
	Kind       RoleKind `json:"kind"`
	Character  string   `json:"character,omitempty"`
	Job        string   `json:"job,omitempty"`
	Department string   `json:"department,omitempty"`
}

func Acting(character string) Role {
	return Role{Kind: RoleActing, Character: character}
}

func Crew(job, department string) Role {
	return Role{Kind: RoleCrew, Job: job, Department: department}
}

// Descriptor is a stable text form of the role, used for ordering.
func (r Role) Descriptor() string {
	if r.Kind == RoleActing {
		return string(r.Kind) + ":" + r.Character
	}
	return string(r.Kind) + ":" + r.Department + ":" + r.Job
}

// Credit is one movie in a person's filmography.
type Credit struct {
	MovieID     string  `json:"movie_id"`
	Title       string  `json:"title"`
	Role        Role    `json:"role"`
	PosterURL   string  `json:"poster_url"`
	ReleaseDate string  `json:"release_date"` // ISO yyyy-mm-dd, may be empty
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	IsPopular   bool     `json:"is_popular"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	ReleaseYear int      `json:"release_year"`
	Genres      []string `json:"genres"`
}

type CastMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profile_url,omitempty"`
}

type MovieDetails struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	PosterURL   string       `json:"poster_url"`
	BackdropURL string       `json:"backdrop_url"`
	ReleaseDate string       `json:"release_date"`
	Rating      float64      `json:"rating"`
	VoteCount   int          `json:"vote_count"`
	Runtime     int          `json:"runtime"`
	Genres      []string     `json:"genres"`
	TrailerURL  string       `json:"trailer_url,omitempty"`
	Cast        []CastMember `json:"cast"`
	Tagline     string       `json:"tagline,omitempty"`
}

type PersonDetails struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           string  `json:"birthday,omitempty"`
	Deathday           string  `json:"deathday,omitempty"`
	PlaceOfBirth       string  `json:"place_of_birth,omitempty"`
	ProfileImageURL    string  `json:"profile_image_url"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
	Gender             string  `json:"gender"`
}

// CreditSource yields a person's acting and crew credits.
type CreditSource interface {
	PersonCastCredits(ctx context.Context, personID int) ([]Credit, error)
	PersonCrewCredits(ctx context.Context, personID int) ([]Credit, error)
}

// Filmography holds both credit lists of a person, as one upstream payload.
type Filmography struct {
	Cast []Credit `json:"cast"`
	Crew []Credit `json:"crew"`
}

// Client is the full catalog surface.
type Client interface {
	CreditSource

	// PersonCredits fetches cast and crew credits in a single upstream call.
	PersonCredits(ctx context.Context, personID int) (*Filmography, error)

	Popular(ctx context.Context, page int) ([]Movie, error)
	TopRated(ctx context.Context, page int) ([]Movie, error)
	NowPlaying(ctx context.Context, page int) ([]Movie, error)
	Upcoming(ctx context.Context, page int) ([]Movie, error)
	ByGenre(ctx context.Context, genreID, page int) ([]Movie, error)
	Search(ctx context.Context, query string, page int) ([]Movie, error)

	MovieDetails(ctx context.Context, movieID int) (*MovieDetails, error)
	PersonDetails(ctx context.Context, personID int) (*PersonDetails, error)
}
