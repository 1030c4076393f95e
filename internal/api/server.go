package api

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/alloy/internal/api/handler"
	mw "github.com/edvin/alloy/internal/api/middleware"
	"github.com/edvin/alloy/internal/config"
	"github.com/edvin/alloy/internal/consumption"
	"github.com/edvin/alloy/internal/core"
)

// readyProbe is a harmless read used by the readiness check.
var readyProbe = consumption.BulkGetParams{
	CustomerID:     "readyz",
	SubscriptionID: "readyz",
	FeatureIDs:     []string{"probe"},
}

//go:embed docs/openapi.json
var openAPIJSON []byte

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, services *core.Services, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(mw.Correlation)
	s.router.Use(chimw.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(chimw.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
}

func (s *Server) setupRoutes() {
	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.Handler())

	// Health checks
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// OpenAPI spec and docs (public, no auth)
	s.router.Route("/docs", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(scalarHTML))
		})
		r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(openAPIJSON)
		})
	})

	// Local development token mint, never mounted in production
	if s.cfg.DevMode {
		auth := handler.NewAuth(s.services.Auth)
		s.router.Post("/auth/dev-token", auth.DevToken)
	}

	// Authenticated API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.services.Auth))

		bootstrap := handler.NewBootstrap(s.services.Billing)
		r.Get("/bootstrap", bootstrap.Get)

		customer := handler.NewCustomer(s.services.Billing)
		r.Get("/customer", customer.Get)
		r.Post("/customer", customer.Create)

		portal := handler.NewPortalSession(s.services.Billing)
		r.Post("/portal-session", portal.Create)

		pricing := handler.NewPricingPageSession(s.services.Billing)
		r.Post("/pricing-page-session", pricing.Create)

		entitlement := handler.NewEntitlement(s.services.Billing)
		r.Get("/subscriptions/{subscriptionId}/entitlements", entitlement.ListBySubscription)

		consumptionHandler := handler.NewConsumption(s.services.Consumption)
		r.Post("/consumption/bulk", consumptionHandler.BulkGet)
		r.Post("/consumption/increment", consumptionHandler.Increment)

		catalogHandler := handler.NewCatalog()
		r.Get("/catalog", catalogHandler.Get)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	// Probe the counter store; a read failure means the data dir is broken.
	if _, err := s.services.Consumption.BulkGet(r.Context(), readyProbe); err != nil {
		checks["consumption"] = err.Error()
		healthy = false
	} else {
		checks["consumption"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Alloy Dashboard API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/docs/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
