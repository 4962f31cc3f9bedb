package catalog

import (
	"strconv"
	"strings"
)

const (
	posterSize   = "w500"
	backdropSize = "w780"
	profileSize  = "w185"

	popularityThreshold = 100.0
	detailsCastLimit    = 8
)

type movieListPayload struct {
	Page         int            `json:"page"`
	Results      []moviePayload `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type moviePayload struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
}

type genrePayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movieDetailsPayload struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Overview     string         `json:"overview"`
	PosterPath   *string        `json:"poster_path"`
	BackdropPath *string        `json:"backdrop_path"`
	ReleaseDate  string         `json:"release_date"`
	VoteAverage  float64        `json:"vote_average"`
	VoteCount    int            `json:"vote_count"`
	Runtime      *int           `json:"runtime"`
	Genres       []genrePayload `json:"genres"`
	Tagline      *string        `json:"tagline"`
}

type videosPayload struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

type movieCreditsPayload struct {
	Cast []struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Character   string  `json:"character"`
		ProfilePath *string `json:"profile_path"`
		Order       int     `json:"order"`
	} `json:"cast"`
}

type personPayload struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           *string `json:"birthday"`
	Deathday           *string `json:"deathday"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	ProfilePath        *string `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
	Gender             int     `json:"gender"`
}

type personCreditsPayload struct {
	ID   int `json:"id"`
	Cast []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Character   string  `json:"character"`
		PosterPath  *string `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		Overview    string  `json:"overview"`
	} `json:"cast"`
	Crew []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Job         string  `json:"job"`
		Department  string  `json:"department"`
		PosterPath  *string `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		Overview    string  `json:"overview"`
	} `json:"crew"`
}

// images builds absolute image URLs from catalog-relative paths.
type images struct {
	base string
}

func (im images) url(size string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return strings.TrimRight(im.base, "/") + "/" + size + *path
}

func (im images) movie(p moviePayload) Movie {
	return Movie{
		ID:          strconv.Itoa(p.ID),
		Title:       p.Title,
		Category:    PrimaryCategory(p.GenreIDs),
		IsPopular:   p.Popularity > popularityThreshold,
		ImageURL:    im.url(posterSize, p.PosterPath),
		Description: p.Overview,
		Rating:      p.VoteAverage,
		ReleaseYear: ReleaseYear(p.ReleaseDate),
		Genres:      genreNamesFor(p.GenreIDs),
	}
}

func (im images) movies(list movieListPayload) []Movie {
	movies := make([]Movie, 0, len(list.Results))
	for _, p := range list.Results {
		movies = append(movies, im.movie(p))
	}
	return movies
}

func (im images) details(p movieDetailsPayload, trailerKey string, credits movieCreditsPayload) *MovieDetails {
	genres := make([]string, 0, len(p.Genres))
	for _, g := range p.Genres {
		genres = append(genres, g.Name)
	}

	cast := make([]CastMember, 0, detailsCastLimit)
	for _, c := range credits.Cast {
		if len(cast) == detailsCastLimit {
			break
		}
		cast = append(cast, CastMember{
			ID:         c.ID,
			Name:       c.Name,
			Character:  c.Character,
			ProfileURL: im.url(profileSize, c.ProfilePath),
		})
	}

	d := &MovieDetails{
		ID:          strconv.Itoa(p.ID),
		Title:       p.Title,
		Overview:    p.Overview,
		PosterURL:   im.url(posterSize, p.PosterPath),
		BackdropURL: im.url(backdropSize, p.BackdropPath),
		ReleaseDate: p.ReleaseDate,
		Rating:      p.VoteAverage,
		VoteCount:   p.VoteCount,
		Genres:      genres,
		Cast:        cast,
		Tagline:     deref(p.Tagline),
	}
	if p.Runtime != nil {
		d.Runtime = *p.Runtime
	}
	if trailerKey != "" {
		d.TrailerURL = "https://www.youtube.com/watch?v=" + trailerKey
	}
	return d
}

func (im images) person(p personPayload) *PersonDetails {
	return &PersonDetails{
		ID:                 strconv.Itoa(p.ID),
		Name:               p.Name,
		Biography:          p.Biography,
		Birthday:           deref(p.Birthday),
		Deathday:           deref(p.Deathday),
		PlaceOfBirth:       deref(p.PlaceOfBirth),
		ProfileImageURL:    im.url(posterSize, p.ProfilePath),
		KnownForDepartment: p.KnownForDepartment,
		Popularity:         p.Popularity,
		Gender:             GenderLabel(p.Gender),
	}
}

func (im images) castCredits(p personCreditsPayload) []Credit {
	credits := make([]Credit, 0, len(p.Cast))
	for _, c := range p.Cast {
		credits = append(credits, Credit{
			MovieID:     strconv.Itoa(c.ID),
			Title:       c.Title,
			Role:        Acting(c.Character),
			PosterURL:   im.url(posterSize, c.PosterPath),
			ReleaseDate: c.ReleaseDate,
			VoteAverage: c.VoteAverage,
			Overview:    c.Overview,
		})
	}
	return credits
}

func (im images) crewCredits(p personCreditsPayload) []Credit {
	credits := make([]Credit, 0, len(p.Crew))
	for _, c := range p.Crew {
		credits = append(credits, Credit{
			MovieID:     strconv.Itoa(c.ID),
			Title:       c.Title,
			Role:        Crew(c.Job, c.Department),
			PosterURL:   im.url(posterSize, c.PosterPath),
			ReleaseDate: c.ReleaseDate,
			VoteAverage: c.VoteAverage,
			Overview:    c.Overview,
		})
	}
	return credits
}

// firstTrailerKey returns the key of the first YouTube trailer, or "".
func firstTrailerKey(v videosPayload) string {
	for _, r := range v.Results {
		if r.Type == "Trailer" && r.Site == "YouTube" {
			return r.Key
		}
	}
	return ""
}

// ReleaseYear reads the year prefix of an ISO date; 0 when absent or malformed.
func ReleaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, ch := range date[:4] {
		if ch < '0' || ch > '9' {
			return 0
		}
		year = year*10 + int(ch-'0')
	}
	return year
}

func GenderLabel(code int) string {
	switch code {
	case 1:
		return "Female"
	case 2:
		return "Male"
	default:
		return "Not specified"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
