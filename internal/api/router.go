package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// livenessText is the body of GET /.
const livenessText = "shiperd is running"

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Set before any Route/Mount so subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, r, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, msgMethodNotAllowed)
	})

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware())
	r.Use(s.bodySizeLimitMiddleware)
	if d := time.Duration(s.cfg.Timeouts.Request) * time.Second; d > 0 {
		r.Use(chimw.Timeout(d))
	}

	r.Get("/", s.handleLiveness)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/test-db", s.handleTestDB)
		r.Get("/system/metrics", s.handleSystemMetrics)

		// Auth endpoints (no token required)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.With(s.requireAuth).Get("/auth/me", s.handleMe)

		pilots := s.pilotResource()
		r.Route("/pilots", func(r chi.Router) {
			pilots.mount(r, s.handleListPilots(pilots))
		})

		ships := s.shipResource()
		r.Route("/ships", func(r chi.Router) {
			ships.mount(r, s.handleListShips(ships))
		})

		shipClasses := s.shipClassResource()
		r.Route("/ship-classes", func(r chi.Router) {
			shipClasses.mount(r, s.handleListShipClasses(shipClasses))
		})

		weaponClasses := s.weaponClassResource()
		r.Route("/weapon-classes", func(r chi.Router) {
			weaponClasses.mount(r, s.handleListWeaponClasses(weaponClasses))
		})

		r.Route("/ship-weapons", s.mountShipWeapons)
	})

	return r
}

// handleLiveness answers GET / with plain text.
func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write([]byte(livenessText))
}

// handleTestDB reports whether the database answers a query.
func (s *Server) handleTestDB(w http.ResponseWriter, r *http.Request) {
	if err := s.db.HealthCheck(r.Context()); err != nil {
		s.logger.Error("database connectivity probe failed", "error", err)
		writeInternalError(w, r, "Database connection failed: "+err.Error())
		return
	}
	writeResponse(w, r, http.StatusOK,
		success("Database connection successful").with("driver", s.db.Driver()))
}
