// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	indexTTL       time.Duration

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	imageRepo   repository.ImageRepository

	feedService    *service.FeedService
	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
	groupService   *service.GroupService
	userService    *service.UserService
	imageService   *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	imageRepo := repository.NewImageRepository(db)

	prom := middleware.InitMetrics("inkwell-api")

	// a TTL of zero in the config means "use the default", not "uncached"
	indexTTL := cache.DefaultIndexTTL
	if cfg.IndexCacheTTLSeconds > 0 {
		indexTTL = time.Duration(cfg.IndexCacheTTLSeconds) * time.Second
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		indexTTL:       indexTTL,
		userRepo:       userRepo,
		postRepo:       postRepo,
		groupRepo:      groupRepo,
		commentRepo:    commentRepo,
		followRepo:     followRepo,
		imageRepo:      imageRepo,
	}
	server.feedService = service.NewFeedService(postRepo, groupRepo, userRepo, followRepo)
	server.postService = service.NewPostService(postRepo, groupRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.groupService = service.NewGroupService(groupRepo)
	server.userService = service.NewUserService(userRepo, followRepo)
	server.imageService = service.NewImageService(imageRepo, cfg)

	return server, nil
}

// Shutdown releases server-held resources after the HTTP listener stops.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Per-IP rate limit; generous enough for page navigation bursts
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell Metrics Dashboard",
	}))

	// Auth routes. The login path is also the target of the auth gate's
	// redirect, so it lives outside /api.
	auth := app.Group("/auth")
	auth.Get("/login", s.LoginPage)
	auth.Post("/login", s.Login)
	auth.Post("/signup", s.Signup)
	auth.Post("/logout", s.Logout)

	requireAuth := middleware.RequireAuth(s.config.JWTSecret)
	optionalAuth := middleware.OptionalAuth(s.config.JWTSecret)

	// Post listings and detail are public
	posts := api.Group("/posts")
	posts.Get("/", s.Index)
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id", s.GetPost)

	// Mutations require an identity; anonymous requests are redirected to
	// the login page with the original URL in ?next=.
	posts.Post("/", requireAuth, s.CreatePost)
	posts.Post("/:id/comments", requireAuth, s.CreateComment)
	posts.Put("/:id", requireAuth, s.UpdatePost)
	posts.Delete("/:id", requireAuth, s.DeletePost)

	// Group routes
	groups := api.Group("/groups")
	groups.Get("/", s.ListGroups)
	groups.Get("/:slug", s.GetGroupFeed)
	groups.Get("/:slug/posts", s.GetGroupFeed)
	groups.Post("/", requireAuth, s.CreateGroup)
	groups.Put("/:slug", requireAuth, s.UpdateGroup)
	groups.Delete("/:slug", requireAuth, s.DeleteGroup)

	// Author pages and the follow graph
	users := api.Group("/users")
	users.Get("/me", requireAuth, s.GetMyProfile)
	users.Put("/me", requireAuth, s.UpdateMyProfile)
	users.Get("/:username", optionalAuth, s.GetProfile)
	users.Get("/:username/posts", s.GetAuthorPosts)
	users.Post("/:username/follow", requireAuth, s.Follow)
	users.Delete("/:username/follow", requireAuth, s.Unfollow)

	// The per-reader follow feed
	api.Get("/feed", requireAuth, s.FollowFeed)
	api.Get("/feed/follow", requireAuth, s.FollowFeed)

	// Image upload and verbatim serving
	api.Post("/images", requireAuth, s.UploadImage)
	app.Get("/media/:id", s.ServeImage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
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
		// The app runs without Redis, just uncached.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
