// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/internal/catalog"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, client catalog.Client, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, client, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, handler.Review, repo, logger)
	wireMovie(r, handler.Movie, logger)
	wireReview(r, handler.Review, handler.Vote, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
