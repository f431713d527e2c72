package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/pipeline"
)

//go:embed templates/*.html
var templatesFS embed.FS

// -----------------------------------------------------------------------------
// WebServer
// -----------------------------------------------------------------------------

type WebServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Pipeline *pipeline.Pipeline

	engine     *gin.Engine
	httpServer *http.Server
	limiter    *RateLimiter
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewWebServer(cfg *models.MConfig, p *pipeline.Pipeline, log *logger.Logger) (*WebServer, error) {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &WebServer{
		Config:   cfg,
		Logger:   log,
		Pipeline: p,
		engine:   gin.New(),
	}

	if cfg.RateLimit.Enabled {
		s.limiter = NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(requestID(), accessLog(log), recovery(log))
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *WebServer) setupRoutes() {
	s.engine.GET("/", s.getIndex)
	s.engine.POST("/", s.postIndex)
	s.engine.GET("/error", s.getError)
	s.engine.GET("/plot", s.rateLimit(true), s.getPlot)

	api := s.engine.Group("/api")
	api.Use(cors.New(s.corsConfig()))
	api.GET("/health", s.getHealth)
	api.GET("/series", s.rateLimit(false), s.getSeries)
}

// -----------------------------------------------------------------------------

func (s *WebServer) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if len(s.Config.CORS.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.Config.CORS.AllowOrigins
	}
	return cfg
}

// -----------------------------------------------------------------------------

// Handler exposes the router, mainly for httptest.
func (s *WebServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks serving HTTP until Stop is called.
func (s *WebServer) Start() error {
	s.Logger.Info("Starting server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *WebServer) Stop(ctx context.Context) error {
	s.Logger.Info("Stopping server")
	return s.httpServer.Shutdown(ctx)
}
