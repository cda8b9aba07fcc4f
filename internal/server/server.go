package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tnals634/board-api/internal/config"
	"github.com/tnals634/board-api/internal/database"
	"github.com/tnals634/board-api/internal/handlers"
	"github.com/tnals634/board-api/internal/middleware"
	"github.com/tnals634/board-api/pkg/logger"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// New wires the database, the handlers and the router into an http.Server.
func New(cfg *config.Config) (*http.Server, database.Service, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := handlers.NewHandler(db.GetDB(), []byte(cfg.JWTSecret))

	s := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("server starting on port " + cfg.Port)

	return srv, db, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Public routes
	r.POST("/signup", s.handler.User.Signup)
	r.POST("/login", s.handler.User.Login)
	r.GET("/posts", s.handler.Post.GetPosts)
	r.GET("/posts/:post_id", s.handler.Post.GetPost)
	r.GET("/posts/:post_id/comments", s.handler.Comment.GetComments)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.Auth([]byte(s.cfg.JWTSecret)))
	{
		protected.POST("/posts", s.handler.Post.CreatePost)
		protected.PUT("/posts/:post_id", s.handler.Post.UpdatePost)
		protected.DELETE("/posts/:post_id", s.handler.Post.DeletePost)
		protected.PUT("/posts/:post_id/like", s.handler.Post.ToggleLike)
		protected.GET("/like/posts", s.handler.Post.GetLikedPosts)

		protected.POST("/posts/:post_id/comments", s.handler.Comment.CreateComment)
		protected.PUT("/posts/:post_id/comments/:comment_id", s.handler.Comment.UpdateComment)
		protected.DELETE("/posts/:post_id/comments/:comment_id", s.handler.Comment.DeleteComment)
	}

	return r
}
