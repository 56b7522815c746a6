package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gamelearn/internal/adapter"
	"gamelearn/internal/cache"
	"gamelearn/internal/config"
	"gamelearn/internal/database"
	"gamelearn/internal/handler"
	"gamelearn/internal/logger"
	"gamelearn/internal/middleware"
	"gamelearn/internal/repository"
	"gamelearn/internal/service"
	"gamelearn/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize Redis client, cache adapter and event bus
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	eventBus := adapter.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	// Initialize the local fallback store and the failover stores
	fallback, err := store.NewFallback(cfg.Store.FallbackSize)
	if err != nil {
		appLogger.Fatal("Failed to create fallback store", zap.Error(err))
	}
	progressStore := store.NewProgressStore(repository.NewSQLXProgressRepository(db), fallback, cfg.Store.QueryTimeout)
	scoreStore := store.NewScoreStore(repository.NewSQLXScoreRepository(db), fallback, cfg.Store.QueryTimeout, cfg.Store.LeaderboardTimeout, cfg.Store.ImprovementTimeout)
	achievementStore := store.NewAchievementStore(repository.NewSQLXAchievementRepository(db), fallback, cfg.Store.QueryTimeout)

	userRepository := repository.NewSQLXUserRepository(db)
	friendRepository := repository.NewSQLXFriendRepository(db)
	statisticsRepository := repository.NewSQLXStatisticsRepository(db)

	// Initialize services
	courseService := service.NewCourseService(cacheAdapter, cfg.Store.CourseCacheTTL)
	scoreService := service.NewScoreService(scoreStore, eventBus)
	progressService := service.NewProgressService(progressStore, scoreStore, courseService, scoreService)
	achievementService := service.NewAchievementService(
		achievementStore, scoreStore, progressStore,
		statisticsRepository, friendRepository, scoreService, eventBus)
	leaderboardService := service.NewLeaderboardService(scoreStore, achievementStore, friendRepository)
	userService := service.NewUserService(userRepository)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	courseHandler := handler.NewCourseHandler(courseService)
	progressHandler := handler.NewProgressHandler(progressService)
	scoreHandler := handler.NewScoreHandler(scoreService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	achievementHandler := handler.NewAchievementHandler(achievementService)
	realtimeHandler := handler.NewRealtimeHandler(eventBus)
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)

	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// User routes
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)

	// Course catalog routes (public)
	apiGroup.Get("/courses", courseHandler.ListCourses)
	apiGroup.Get("/courses/:courseID", validationMiddleware.ValidateCourseID(), courseHandler.GetCourse)
	apiGroup.Get("/courses/:courseID/levels/:levelID", validationMiddleware.ValidateCourseID(), courseHandler.GetLevel)
	apiGroup.Get("/courses/:courseID/modules/:moduleID", validationMiddleware.ValidateModuleRef(), courseHandler.GetModule)
	apiGroup.Get("/courses/:courseID/modules/:moduleID/quiz", validationMiddleware.ValidateModuleRef(), courseHandler.GetModuleQuiz)

	// Progress routes
	progressGroup := apiGroup.Group("/progress", middleware.Protected(authService))
	progressGroup.Post("/start", progressHandler.StartModule)
	progressGroup.Post("/complete", progressHandler.CompleteModule)
	progressGroup.Get("/:courseID", validationMiddleware.ValidateCourseID(), progressHandler.GetCourseProgress)
	progressGroup.Delete("/:courseID/modules/:moduleID", validationMiddleware.ValidateModuleRef(), progressHandler.ResetModule)

	// Score routes
	scoreGroup := apiGroup.Group("/scores", middleware.Protected(authService))
	scoreGroup.Post("/", scoreHandler.AddScore)
	scoreGroup.Get("/me", scoreHandler.GetMyScore)
	scoreGroup.Get("/me/rank", scoreHandler.GetMyRank)

	// Leaderboard routes
	apiGroup.Get("/leaderboard", middleware.OptionalAuth(authService), leaderboardHandler.GetLeaderboard)
	apiGroup.Get("/leaderboard/improved", scoreHandler.MostImproved)
	apiGroup.Get("/leaderboard/friends", middleware.Protected(authService), leaderboardHandler.GetFriendsLeaderboard)

	// Achievement routes
	achievementGroup := apiGroup.Group("/achievements", middleware.Protected(authService))
	achievementGroup.Get("/me", achievementHandler.GetMyAchievements)
	achievementGroup.Get("/me/progress", achievementHandler.GetProgressSummary)
	achievementGroup.Post("/award", achievementHandler.Award)
	achievementGroup.Post("/check", achievementHandler.AwardEligible)
	apiGroup.Get("/statistics/me", middleware.Protected(authService), achievementHandler.GetUserStatistics)

	// Realtime event stream
	apiGroup.Get("/events", realtimeHandler.Stream)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
