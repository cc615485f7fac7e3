// Package contentapi contains HTTP handlers for the content service:
// posts, comments, likes, and the home feed.
package contentapi

import (
	"context"
	"fmt"
	"log"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/featureflags"
	"quill/internal/identity"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds the content service's dependencies and handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	resolver       identity.Resolver
	notifier       *notifications.Notifier
	flags          *featureflags.Manager
	postService    *service.PostService
	commentService *service.CommentService
	feedService    *service.FeedService
}

// NewServer creates a new content server with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg, cfg.ContentDBName, &models.Post{}, &models.Comment{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	resolver := identity.NewResolver(cfg.IdentityBaseURL, time.Duration(cfg.ResolverTimeout)*time.Millisecond)
	return NewServerWithDeps(cfg, db, cache.GetClient(), resolver)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a stub resolver.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, resolver identity.Resolver) (*Server, error) {
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notifier := notifications.NewNotifier(redisClient)

	prom := middleware.InitMetrics("quill-content")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		resolver:       resolver,
		notifier:       notifier,
		flags:          featureflags.NewManager(cfg.FeatureFlags),
	}
	server.postService = service.NewPostService(postRepo, resolver, notifier, middleware.Logger)
	server.commentService = service.NewCommentService(postRepo, commentRepo, resolver, notifier, middleware.Logger)
	server.feedService = service.NewFeedService(postRepo, resolver, middleware.Logger)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the content service.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api.Get("/flags", s.GetFlags)

	posts := api.Group("/posts")
	posts.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 20, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Get("/", s.GetPosts)

	// Specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/like", middleware.AuthRequired, s.LikePost)
	posts.Post("/:id/comments", middleware.AuthRequired, s.AddComment)
	posts.Get("/:id/comments", s.GetComments)
	posts.Put("/:id", middleware.AuthRequired, s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)
	posts.Get("/:id", s.GetPost)
}

// GetFlags returns the evaluated feature flags for the viewer. Anonymous
// viewers get the zero-user evaluation, which leaves percentage rollouts off.
func (s *Server) GetFlags(c *fiber.Ctx) error {
	viewerID, _ := middleware.OptionalUserID(c)
	return respondSuccess(c, fiber.StatusOK, s.flags.Snapshot(viewerID))
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Only the database gates
// readiness: Redis is best effort, and the identity service is checked per
// request rather than here so a flap there does not cascade into this
// service being pulled from rotation.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"service": "quill-content",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the content server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Quill Content API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Content server starting on port %s...", s.config.ContentPort)
	return app.Listen(":" + s.config.ContentPort)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Content server shutdown complete")
	return nil
}
