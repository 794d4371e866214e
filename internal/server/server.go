// internal/server/server.go
// HTTP server setup with dependency injection

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"srcomp/internal/api"
	"srcomp/internal/audit"
	"srcomp/internal/auth"
	"srcomp/internal/cache"
	"srcomp/internal/competition"
	"srcomp/internal/config"
	"srcomp/internal/database"
	"srcomp/internal/middleware"
	"srcomp/internal/store"
	"srcomp/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	router      *gin.Engine
	competition *competition.Service
	logger      *log.Logger
	server      *http.Server
}

// New creates a new server with all dependencies
func New(cfg *config.Config, db *database.Connections, logger *log.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := auth.NewService(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, cfg.Auth.BCryptCost)
	cacheService := cache.NewService(db.Redis, logger)
	historyStore := store.New(db.MySQL, logger)
	auditLog := audit.NewLog(db.MongoDB, logger)
	compService := competition.NewService(cfg.Competition.Root, cacheService, historyStore, logger)

	if err := historyStore.EnsureSchema(context.Background()); err != nil {
		logger.Printf("ensuring history schema: %v", err)
	}
	if err := compService.Reload(context.Background()); err != nil {
		logger.Fatalf("loading competition from %s: %v", cfg.Competition.Root, err)
	}

	router := setupRouter(cfg, compService, authService, historyStore, auditLog, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		config:      cfg,
		router:      router,
		competition: compService,
		logger:      logger,
		server:      srv,
	}
}

// setupRouter configures all routes and middleware
func setupRouter(cfg *config.Config, compService *competition.Service, authService *auth.Service, historyStore *store.Store, auditLog *audit.Log, logger *log.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	if cfg.Features.MaintenanceMode {
		router.Use(middleware.MaintenanceMode())
	}

	router.GET("/health", api.HealthCheck(cfg))

	v1 := router.Group("/api/v1")
	{
		api.RegisterAuthRoutes(v1, authService)
		api.RegisterCompetitionRoutes(v1, compService)
		api.RegisterHistoryRoutes(v1, historyStore)
		api.RegisterAdminRoutes(v1, compService, authService, auditLog, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	if cfg.Features.EnableWebSocket {
		hub := websocket.NewHub(logger)
		go hub.Run()
		compService.SetHub(hub)
		router.GET("/ws", websocket.HandleConnection(hub))
	}

	return router
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Println("Shutting down server...")
	return s.server.Shutdown(ctx)
}
