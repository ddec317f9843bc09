package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/nerrad567/shiperd/internal/auth"
	"github.com/nerrad567/shiperd/internal/fleet"
	"github.com/nerrad567/shiperd/internal/infrastructure/config"
	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	"github.com/nerrad567/shiperd/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config        config.APIConfig
	Security      config.SecurityConfig
	Logger        *logging.Logger
	DB            *database.DB
	Pilots        fleet.PilotRepository
	Ships         fleet.ShipRepository
	ShipClasses   fleet.ShipClassRepository
	WeaponClasses fleet.WeaponClassRepository
	ShipWeapons   fleet.ShipWeaponRepository
	Users         auth.UserRepository
	Version       string
}

// Server is the HTTP API server for shiperd.
//
// It owns the router, middleware and HTTP listener. The server is created
// with New() and started with Start().
type Server struct {
	cfg           config.APIConfig
	secCfg        config.SecurityConfig
	logger        *logging.Logger
	db            *database.DB
	pilots        fleet.PilotRepository
	ships         fleet.ShipRepository
	shipClasses   fleet.ShipClassRepository
	weaponClasses fleet.WeaponClassRepository
	shipWeapons   fleet.ShipWeaponRepository
	users         auth.UserRepository
	registration  auth.RegistrationPolicy
	metrics       *httpMetrics
	version       string
	startTime     time.Time
	router        http.Handler
	server        *http.Server
	listener      net.Listener
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, database, repositories)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger is required")
	case deps.DB == nil:
		return nil, fmt.Errorf("database is required")
	case deps.Pilots == nil, deps.Ships == nil, deps.ShipClasses == nil,
		deps.WeaponClasses == nil, deps.ShipWeapons == nil:
		return nil, fmt.Errorf("fleet repositories are required")
	case deps.Users == nil:
		return nil, fmt.Errorf("user repository is required")
	case deps.Security.JWT.Secret == "":
		return nil, fmt.Errorf("jwt secret is required")
	}

	policy := auth.DefaultRegistrationPolicy
	if n := deps.Security.Registration.MinUsernameLength; n > 0 {
		policy.MinUsernameLength = n
	}
	if n := deps.Security.Registration.MinPasswordLength; n > 0 {
		policy.MinPasswordLength = n
	}

	s := &Server{
		cfg:           deps.Config,
		secCfg:        deps.Security,
		logger:        deps.Logger,
		db:            deps.DB,
		pilots:        deps.Pilots,
		ships:         deps.Ships,
		shipClasses:   deps.ShipClasses,
		weaponClasses: deps.WeaponClasses,
		shipWeapons:   deps.ShipWeapons,
		users:         deps.Users,
		registration:  policy,
		metrics:       newHTTPMetrics(deps.DB.DB),
		version:       deps.Version,
		startTime:     time.Now(),
	}
	s.router = s.buildRouter()

	return s, nil
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves HTTP connections in a background
// goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Context for cancellation (not used for listener lifetime)
//
// Returns:
//   - error: If the server was already started, the TLS key pair cannot be
//     loaded, or the address cannot be bound
func (s *Server) Start(_ context.Context) error {
	if s.server != nil {
		return fmt.Errorf("api server already started")
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port)),
		Handler:           s.router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}
	if s.cfg.TLS.Enabled {
		cert, err := tls.LoadX509KeyPair(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("loading TLS key pair: %w", err)
		}
		srv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}
	s.server = srv
	s.listener = ln

	go func() {
		var err error
		if srv.TLSConfig != nil {
			s.logger.Info("API server starting with TLS",
				"address", ln.Addr().String(),
				"cert", s.cfg.TLS.CertFile,
			)
			err = srv.ServeTLS(ln, "", "")
		} else {
			s.logger.Info("API server starting", "address", ln.Addr().String())
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies Start has bound the listener and the database responds.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return s.db.HealthCheck(ctx)
}
