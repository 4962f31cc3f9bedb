package adaptor

import (
	"net/http"

	"movie-review/internal/dto/response"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

func page(r *http.Request) int {
	p := utils.ParseInt(r.URL.Query().Get("page"), 1)
	if p < 1 {
		return 1
	}
	return p
}

func (h *MovieHandler) list(w http.ResponseWriter, movies *response.MovieListResponse) {
	utils.ResponseSuccess(w, "success", movies)
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.GetAll(r.Context(), page(r)))
}

// GetPopular handles GET /api/movies/popular
func (h *MovieHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.GetPopular(r.Context(), page(r)))
}

// GetTopRated handles GET /api/movies/top-rated
func (h *MovieHandler) GetTopRated(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.GetTopRated(r.Context(), page(r)))
}

// GetNowPlaying handles GET /api/movies/now-playing
func (h *MovieHandler) GetNowPlaying(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.GetNowPlaying(r.Context(), page(r)))
}

// GetUpcoming handles GET /api/movies/upcoming
func (h *MovieHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.GetUpcoming(r.Context(), page(r)))
}

// Search handles GET /api/movies/search?q=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.Search(r.Context(), r.URL.Query().Get("q"), page(r)))
}

// GetCategories handles GET /api/categories
func (h *MovieHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetCategories())
}

// GetByCategory handles GET /api/categories/{name}/movies
func (h *MovieHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	h.list(w, h.service.GetByCategory(r.Context(), chi.URLParam(r, "name"), page(r)))
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetMovieDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie details")
		return
	}
	utils.ResponseSuccess(w, "success", details)
}

// GetPerson handles GET /api/people/{id}
func (h *MovieHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person, err := h.service.GetPersonDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get person")
		return
	}
	utils.ResponseSuccess(w, "success", person)
}

// GetPersonCredits handles GET /api/people/{id}/credits
func (h *MovieHandler) GetPersonCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.service.GetPersonCredits(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get person credits")
		return
	}
	utils.ResponseSuccess(w, "success", credits)
}
