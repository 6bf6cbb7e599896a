package wire

import (
	"net/http"

	"showscape/internal/adaptor"
	"showscape/internal/data/repository"
	"showscape/internal/usecase"
	"showscape/pkg/middleware"
	"showscape/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router   *chi.Mux
	Registry *prometheus.Registry
}

// Wiring builds services, handlers and the router on top of repo
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, logger)
	handler := adaptor.NewHandler(service, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		Router:   setupRouter(handler, registry, config, logger),
		Registry: registry,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	registry *prometheus.Registry,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(config.App.Name, registry)

	// Apply global middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(metrics.Handler)
	r.Use(middleware.CORS(config.HTTP.AllowedOrigins))
	if config.HTTP.RateLimitEnabled {
		r.Use(middleware.RateLimit(config.HTTP.RateLimitRPS, config.HTTP.RateLimitBurst, logger))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, r, "resource not found")
	})
	r.MethodNotAllowed(utils.ResponseMethodNotAllowed)

	// Apply routes
	wireMovie(r, handler.Movie)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
