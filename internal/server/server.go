// Package server implements the Wayfinder REST backend: authentication,
// distance calculation, route history, and history insights.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/npatel/wayfinder/internal/geo"
	"github.com/npatel/wayfinder/internal/insights"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Opts holds configuration for the API server.
type Opts struct {
	DB        *gorm.DB
	Geocoder  geo.Geocoder
	Assistant *insights.Assistant

	JWTSecret        string
	TokenTTL         time.Duration
	Port             int
	CORSAllowOrigins []string
	Out              io.Writer

	// MemoryTTL bounds how long an idle chat session is remembered.
	MemoryTTL time.Duration
}

// Server carries the wired dependencies behind the route handlers.
type Server struct {
	db        *gorm.DB
	geocoder  geo.Geocoder
	assistant *insights.Assistant
	jwtSecret string
	tokenTTL  time.Duration
}

// New validates opts and builds a Server.
func New(opts Opts) (*Server, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("server: db is required")
	}
	if opts.Geocoder == nil {
		return nil, fmt.Errorf("server: geocoder is required")
	}
	if opts.Assistant == nil {
		return nil, fmt.Errorf("server: assistant is required")
	}
	if opts.JWTSecret == "" {
		return nil, fmt.Errorf("server: jwt secret is required")
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}
	return &Server{
		db:        opts.DB,
		geocoder:  opts.Geocoder,
		assistant: opts.Assistant,
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
	}, nil
}

// Router builds the Gin engine with all routes registered.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Wayfinder"})
	})

	authGroup := router.Group("/auth")
	authGroup.POST("/signup", s.handleSignup)
	authGroup.POST("/login", s.handleLogin)

	routes := router.Group("/routes")
	routes.Use(s.requireUser())
	routes.POST("/distance", s.handleDistance)
	routes.GET("/history", s.handleHistory)
	routes.POST("/history-insights", s.handleHistoryInsights)

	return router
}

// Start runs the API server and its janitor. It blocks until ctx is
// cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts Opts) error {
	s, err := New(opts)
	if err != nil {
		return err
	}
	if opts.Port <= 0 {
		opts.Port = 8000
	}
	if opts.MemoryTTL == 0 {
		opts.MemoryTTL = time.Hour
	}

	janitor := cron.New()
	if _, err := janitor.AddFunc("@every 10m", func() {
		if n, ok := opts.Geocoder.(*geo.Nominatim); ok {
			if removed := n.PruneCache(); removed > 0 {
				logrus.WithField("removed", removed).Debug("pruned geocode cache")
			}
		}
		if removed := s.assistant.Memory().Expire(opts.MemoryTTL); removed > 0 {
			logrus.WithField("removed", removed).Debug("expired idle chat sessions")
		}
	}); err != nil {
		return fmt.Errorf("server: schedule janitor: %w", err)
	}
	janitor.Start()
	defer janitor.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: s.Router(opts.CORSAllowOrigins),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Wayfinder API listening on http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}
