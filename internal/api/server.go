package api

import (
	"context"
	"net/http"
	"time"

	"npdecide/app"
	"npdecide/internal"
	"npdecide/internal/metrics"

	"github.com/gin-gonic/gin"
)

// ServerOptions configures the HTTP server
type ServerOptions struct {
	Addr           string
	RequestTimeout time.Duration
	// Collector is optional; without it /metrics is not mounted
	Collector *metrics.Collector
	Logger    *internal.Logger
}

// Server serves the JSON decision API
type Server struct {
	router  *gin.Engine
	handler *DecisionHandler
	opts    ServerOptions
	logger  *internal.Logger
	http    *http.Server
	started time.Time
}

// NewServer creates the API server around a decision service
func NewServer(service *app.DecisionService, opts ServerOptions) *Server {
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}
	s := &Server{
		router:  gin.New(),
		handler: NewDecisionHandler(service, opts.Logger),
		opts:    opts,
		logger:  opts.Logger.WithComponent("Server"),
		started: time.Now(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	var sink HTTPMetrics
	if s.opts.Collector != nil {
		sink = s.opts.Collector
	}
	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
	s.router.Use(AccessLog(s.opts.Logger, sink))
	s.router.Use(Timeout(s.opts.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	if s.opts.Collector != nil {
		s.router.GET("/metrics", gin.WrapH(s.opts.Collector.Handler()))
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/continuous", s.handler.SolveContinuous)
		v1.POST("/matrix", s.handler.SolveMatrix)
		v1.POST("/matrix/batch", s.handler.SolveMatrixBatch)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens on the configured address and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("listening on %s", s.opts.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
