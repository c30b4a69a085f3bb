// Package api exposes the token registry over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/feed"
	"solana-token-api/internal/observability"
	"solana-token-api/internal/storage"
)

// Options configures a Server.
type Options struct {
	Addr    string
	Stores  storage.Stores
	Network NetworkStatusProvider

	// Feed receives create events. Defaults to feed.Discard.
	Feed feed.Publisher

	// FeedHandler serves GET /api/feed when set.
	FeedHandler http.Handler

	// Metrics may be nil, in which case /metrics is not registered.
	Metrics *observability.Metrics
	Logger  *zap.Logger
}

// Server routes HTTP requests to the registry stores.
type Server struct {
	tokens    storage.TokenStore
	transfers storage.TransferStore
	network   NetworkStatusProvider
	feed      feed.Publisher
	metrics   *observability.Metrics
	logger    *zap.Logger

	router *mux.Router
	server *http.Server
}

// NewServer creates a server with all routes registered.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Feed == nil {
		opts.Feed = feed.Discard{}
	}
	if opts.Network == nil {
		opts.Network = StaticNetworkStatus(domain.DefaultNetworkStatus)
	}

	s := &Server{
		tokens:    opts.Stores.Tokens,
		transfers: opts.Stores.Transfers,
		network:   opts.Network,
		feed:      opts.Feed,
		metrics:   opts.Metrics,
		logger:    opts.Logger.Named("api"),
		router:    mux.NewRouter(),
	}

	s.registerRoutes(opts.FeedHandler)

	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(feedHandler http.Handler) {
	s.router.Use(loggingMiddleware(s.logger))
	if s.metrics != nil {
		s.router.Use(metricsMiddleware(s.metrics))
	}
	s.router.Use(recoverMiddleware(s.logger))

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tokens/{walletAddress}", s.handleGetTokensByWallet).Methods(http.MethodGet)
	api.HandleFunc("/token/{mintAddress}", s.handleGetTokenByMint).Methods(http.MethodGet)
	api.HandleFunc("/token/{mintAddress}/transfers", s.handleGetTransfersByMint).Methods(http.MethodGet)
	api.HandleFunc("/tokens", s.handleCreateToken).Methods(http.MethodPost)
	api.HandleFunc("/transfers/{walletAddress}", s.handleGetTransfersByWallet).Methods(http.MethodGet)
	api.HandleFunc("/transfers", s.handleCreateTransfer).Methods(http.MethodPost)
	api.HandleFunc("/network/status", s.handleNetworkStatus).Methods(http.MethodGet)
	if feedHandler != nil {
		api.Handle("/feed", feedHandler).Methods(http.MethodGet)
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}
