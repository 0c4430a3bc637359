package wire

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movie-favorites/internal/adapter/tmdb"
	"movie-favorites/internal/adaptor"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/queue"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/middleware"
	"movie-favorites/pkg/utils"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the service and handler graph and mounts the routes.
// Both rdb and publisher may be nil; the dependent features degrade to
// no-ops in that case.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	rdb *redis.Client,
	publisher *queue.Publisher,
	tmdbClient *tmdb.Client,
) *App {
	service := usecase.NewService(repo, tmdbClient, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger, rdb)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
	rdb *redis.Client,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	cache := middleware.Cache(rdb, time.Duration(config.Redis.TTLSecs)*time.Second, logger)

	// Apply routes
	wireUser(r, handler.User, cache)
	wireMovie(r, handler.Movie, handler.Catalog, cache)
	wireFavorite(r, handler.Favorite, cache)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
