// Package api is the HTTP JSON layer over the engine.
// It only decodes requests, calls the engine and encodes results.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hostforge/core/engine"
	"hostforge/internal/metrics"
)

// ServerConfig configures the API server
type ServerConfig struct {
	Version string
	Logger  *zap.Logger
	Debug   bool
}

// Server is the API server
type Server struct {
	gin     *gin.Engine
	engine  *engine.Engine
	version string
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(eng *engine.Engine, cfg ServerConfig) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)

	s := &Server{
		gin:     router,
		engine:  eng,
		version: cfg.Version,
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.gin.GET("/health", s.handleHealth)
	s.gin.GET("/version", s.handleVersion)
	s.gin.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	r := s.gin.Group("/api")

	// Identifiers
	r.POST("/generate", s.handleGenerate)
	r.GET("/sectors", s.handleSectors)
	r.GET("/sectors/:sector/next", s.handleNext)
	r.GET("/decode/:hostname", s.handleDecode)
	r.POST("/encode", s.handleEncode)
	r.GET("/snapshot", s.handleSnapshot)

	// Conformance
	r.POST("/validate", s.handleValidate)
	r.POST("/validate/batch", s.handleValidateBatch)
	r.POST("/duplicates", s.handleDuplicates)
	r.POST("/suggestions", s.handleSuggestions)

	// Catalogs
	r.GET("/catalogs", s.handleListCatalogs)
	r.GET("/catalogs/lint", s.handleLint)
	r.POST("/catalogs/:kind", s.handleAddEntry)
	r.DELETE("/catalogs/:kind/:name", s.handleRemoveEntry)

	// History
	r.GET("/history", s.handleListHistory)
	r.GET("/history/:id", s.handleGetHistory)
	r.DELETE("/history/:id", s.handleDeleteHistory)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     s.version,
		"engine":      "hostforge",
		"api_version": "v1",
		"prefix":      s.engine.Prefix(),
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.gin.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
