package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// HTTPClient implements Client against the TMDB v3 REST API.
type HTTPClient struct {
	baseURL  *url.URL
	apiKey   string
	language string
	images   images
	client   *http.Client
	log      *zap.Logger
}

func NewHTTPClient(cfg utils.CatalogConfig, log *zap.Logger) (*HTTPClient, error) {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}

	return &HTTPClient{
		baseURL:  parsed,
		apiKey:   cfg.APIKey,
		language: language,
		images:   images{base: cfg.ImageBaseURL},
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
				MaxIdleConnsPerHost:   10,
			},
		},
		log: log.With(zap.String("client", "catalog")),
	}, nil
}

func (c *HTTPClient) Popular(ctx context.Context, page int) ([]Movie, error) {
	return c.movieList(ctx, "movie/popular", pageQuery(page))
}

func (c *HTTPClient) TopRated(ctx context.Context, page int) ([]Movie, error) {
	return c.movieList(ctx, "movie/top_rated", pageQuery(page))
}

func (c *HTTPClient) NowPlaying(ctx context.Context, page int) ([]Movie, error) {
	return c.movieList(ctx, "movie/now_playing", pageQuery(page))
}

func (c *HTTPClient) Upcoming(ctx context.Context, page int) ([]Movie, error) {
	return c.movieList(ctx, "movie/upcoming", pageQuery(page))
}

func (c *HTTPClient) ByGenre(ctx context.Context, genreID, page int) ([]Movie, error) {
	q := pageQuery(page)
	q.Set("with_genres", strconv.Itoa(genreID))
	return c.movieList(ctx, "discover/movie", q)
}

func (c *HTTPClient) Search(ctx context.Context, query string, page int) ([]Movie, error) {
	q := pageQuery(page)
	q.Set("query", query)
	return c.movieList(ctx, "search/movie", q)
}

// MovieDetails fetches the movie itself, then its videos and cast. Only a
// failure of the first call is returned; the extras degrade to empty.
func (c *HTTPClient) MovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	id := strconv.Itoa(movieID)

	var details movieDetailsPayload
	if err := c.get(ctx, "movie/"+id, nil, &details); err != nil {
		return nil, err
	}

	var videos videosPayload
	if err := c.get(ctx, "movie/"+id+"/videos", nil, &videos); err != nil {
		c.log.Warn("Failed to fetch movie videos", zap.Int("movie_id", movieID), zap.Error(err))
	}

	var credits movieCreditsPayload
	if err := c.get(ctx, "movie/"+id+"/credits", nil, &credits); err != nil {
		c.log.Warn("Failed to fetch movie credits", zap.Int("movie_id", movieID), zap.Error(err))
	}

	return c.images.details(details, firstTrailerKey(videos), credits), nil
}

func (c *HTTPClient) PersonDetails(ctx context.Context, personID int) (*PersonDetails, error) {
	var person personPayload
	if err := c.get(ctx, "person/"+strconv.Itoa(personID), nil, &person); err != nil {
		return nil, err
	}
	return c.images.person(person), nil
}

func (c *HTTPClient) PersonCredits(ctx context.Context, personID int) (*Filmography, error) {
	payload, err := c.personCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	return &Filmography{
		Cast: c.images.castCredits(payload),
		Crew: c.images.crewCredits(payload),
	}, nil
}

func (c *HTTPClient) PersonCastCredits(ctx context.Context, personID int) ([]Credit, error) {
	f, err := c.PersonCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	return f.Cast, nil
}

func (c *HTTPClient) PersonCrewCredits(ctx context.Context, personID int) ([]Credit, error) {
	f, err := c.PersonCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	return f.Crew, nil
}

func (c *HTTPClient) personCredits(ctx context.Context, personID int) (personCreditsPayload, error) {
	var payload personCreditsPayload
	err := c.get(ctx, "person/"+strconv.Itoa(personID)+"/movie_credits", nil, &payload)
	return payload, err
}

func (c *HTTPClient) movieList(ctx context.Context, path string, q url.Values) ([]Movie, error) {
	var payload movieListPayload
	if err := c.get(ctx, path, q, &payload); err != nil {
		return nil, err
	}
	return c.images.movies(payload), nil
}

func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	rel := &url.URL{Path: path, RawQuery: q.Encode()}
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode catalog %s response: %w", path, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		c.log.Warn("Unexpected catalog status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("catalog: upstream returned %d", resp.StatusCode)
	}
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}
