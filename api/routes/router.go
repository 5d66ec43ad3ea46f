package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tentenco/stellantis/api/controllers"
	"github.com/tentenco/stellantis/api/middleware"
	"github.com/tentenco/stellantis/internal/leads"
	"github.com/tentenco/stellantis/internal/session"
	"github.com/tentenco/stellantis/pkg/config"
	"github.com/tentenco/stellantis/pkg/db"
	"github.com/tentenco/stellantis/pkg/logger"
	"github.com/tentenco/stellantis/pkg/metrics"
	"github.com/tentenco/stellantis/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionService session.Service,
	leadService leads.Service,
	httpMetrics *metrics.HTTPMetrics,
	configuratorMetrics *metrics.ConfiguratorMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	sessionCreatePolicy := middleware.NewRateLimitPolicy(
		"session_create",
		cfg.RateLimit.SessionCreateWindow,
		cfg.RateLimit.SessionCreateLimit,
	)

	// A nil *redis.Client must stay a nil Pinger, not a typed-nil interface.
	pingers := map[string]controllers.Pinger{"database": dbP, "redis": nil}
	if redisClient != nil {
		pingers["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionCreatePolicy, redisClient, logg)).
			Post("/", controllers.SessionCreate(sessionService, configuratorMetrics, logg))

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.SessionFetch(sessionService, logg))
			r.Put("/engine", controllers.SessionSelectEngine(sessionService, logg))
			r.Put("/trim", controllers.SessionSelectTrim(sessionService, logg))
			r.Put("/year", controllers.SessionSelectYear(sessionService, logg))
			r.Put("/color", controllers.SessionSelectColor(sessionService, logg))
			r.Post("/accessories/toggle", controllers.SessionToggleAccessory(sessionService, logg))
			r.Put("/area", controllers.SessionSelectArea(sessionService, logg))
			r.Put("/dealer", controllers.SessionSelectDealer(sessionService, logg))
			r.Put("/payment", controllers.SessionSetPayment(sessionService, logg))
			r.Post("/stock/refresh", controllers.SessionRefreshStock(sessionService, configuratorMetrics, logg))
			r.Post("/submit", controllers.SessionSubmit(sessionService, configuratorMetrics, logg))
		})
	})

	r.Route("/api/v1/leads", func(r chi.Router) {
		r.Get("/", controllers.LeadList(leadService, logg))
		r.Get("/{leadId}", controllers.LeadDetail(leadService, logg))
		r.Patch("/{leadId}/status", controllers.LeadUpdateStatus(leadService, logg))
	})

	return r
}
