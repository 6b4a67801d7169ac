package server

import (
	"io"

	"rosterhub/internal/api/handlers"
	"rosterhub/internal/api/middleware"
	"rosterhub/internal/config"
	"rosterhub/internal/logging"
	"rosterhub/internal/membership"
	"rosterhub/internal/repository"
	"rosterhub/internal/server/routes"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	db      *gorm.DB
	logger  *logging.Logger
	hub     *repository.AuthHub
	manager *membership.Manager
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, db *gorm.DB, logger *logging.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	return &Server{
		router: router,
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// Init wires repositories, the membership manager, handlers and routes.
func (s *Server) Init() error {
	s.hub = repository.NewAuthHub()
	authFactory := repository.NewAuthPortFactory(s.db, s.hub)
	directory := repository.NewDirectoryRepository(s.db, s.hub)

	s.manager = membership.NewManager(authFactory, directory, s.logger)

	m := &routes.Middleware{
		Auth:       middleware.NewAuthMiddleware(s.db),
		Validation: middleware.NewValidationMiddleware(),
	}

	h := &routes.Handlers{
		Auth:       handlers.NewAuthHandler(s.db, s.hub, s.manager),
		Membership: handlers.NewMembershipHandler(s.manager),
		Team:       handlers.NewTeamHandler(s.db, s.manager, directory),
		Stats:      handlers.NewStatsHandler(s.db, s.manager),
		Health:     handlers.NewHealthHandler(s.db),
	}

	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger)
	routes.Setup(s.router, h, m)

	return nil
}

// Manager returns the membership store manager, for background tasks.
func (s *Server) Manager() *membership.Manager {
	return s.manager
}

// Hub returns the auth event hub, for background tasks.
func (s *Server) Hub() *repository.AuthHub {
	return s.hub
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("Listening on port %s", s.cfg.Port)
	return s.router.Run(":" + s.cfg.Port)
}
