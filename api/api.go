package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/prodkeep/api/auth"
	"github.com/jon4hz/prodkeep/api/handler"
	"github.com/jon4hz/prodkeep/config"
	"github.com/jon4hz/prodkeep/database"
)

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	db           database.DB
	authProvider *auth.Provider
}

func New(cfg *config.Config, db database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	return &Server{
		cfg:          cfg,
		ginEngine:    gin.Default(),
		db:           db,
		authProvider: auth.New(db),
	}, nil
}

func (s *Server) setupRoutes() {
	h := handler.New(s.db, s.cfg)

	api := s.ginEngine.Group("/api")
	api.POST("/users", h.CreateUser)
	api.POST("/users/token", s.authProvider.Login)

	protected := api.Group("/")
	protected.Use(s.authProvider.RequireAuth())

	protected.GET("/users/me", h.Me)
	protected.PATCH("/users/me", h.UpdateMe)

	protected.GET("/products", h.ListProducts)
	protected.POST("/products", h.CreateProduct)
	protected.GET("/products/:id", h.GetProduct)
	protected.PUT("/products/:id", h.UpdateProduct)
	protected.PATCH("/products/:id", h.PatchProduct)
	protected.DELETE("/products/:id", h.DeleteProduct)

	staff := protected.Group("/")
	staff.Use(s.authProvider.RequireStaff())
	staff.GET("/users", h.ListUsers)
}

func (s *Server) Run() error {
	s.setupRoutes()

	return s.ginEngine.Run(s.cfg.Listen)
}
