// Package api serves the analysis engine, dossiers and the archive over
// HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/structura/structura/internal/config"
	"github.com/structura/structura/internal/report"
)

// Archive is the dossier storage the server needs
type Archive interface {
	Save(ctx context.Context, d report.Dossier) error
	Get(ctx context.Context, id string) (report.Dossier, error)
	List(ctx context.Context, limit int) ([]report.Dossier, error)
}

// Server bundles the router and its dependencies
type Server struct {
	cfg     *config.Config
	archive Archive
	logger  *zap.Logger
	router  *mux.Router
	handler http.Handler
	now     func() time.Time
}

// New constructs a server with routes and middleware. archive may be nil,
// in which case dossiers are not stored and the dossier routes answer 503.
func New(cfg *config.Config, archive Archive, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:     cfg,
		archive: archive,
		logger:  logger,
		router:  mux.NewRouter(),
		now:     time.Now,
	}
	s.registerRoutes()

	s.handler = recoverer(logger, requestLogger(logger, cors(cfg.Server.AllowedOrigins, s.router)))
	return s
}

// Handler exposes the full middleware chain (for tests)
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("api listening", zap.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("api shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		<-errCh
		return err
	}
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	limiter := NewIPRateLimiter(rate.Limit(s.cfg.Server.RateLimit), s.cfg.Server.RateBurst)
	api.Use(limiter.LimitMiddleware)
	if s.cfg.Server.APIToken != "" {
		api.Use(bearerAuth(s.cfg.Server.APIToken))
	}

	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/analysis", s.handleAnalysis).Methods(http.MethodPost)
	api.HandleFunc("/analysis/batch", s.handleBatch).Methods(http.MethodPost)
	api.HandleFunc("/reports", s.handleReport).Methods(http.MethodPost)
	api.HandleFunc("/dossiers", s.handleListDossiers).Methods(http.MethodGet)
	api.HandleFunc("/dossiers/{id}", s.handleGetDossier).Methods(http.MethodGet)
}
