package main

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	"github.com/yukikurage/intern-allocation-api/internal/config"
	"github.com/yukikurage/intern-allocation-api/internal/constants"
	"github.com/yukikurage/intern-allocation-api/internal/database"
	"github.com/yukikurage/intern-allocation-api/internal/handlers"
	"github.com/yukikurage/intern-allocation-api/internal/lock"
	"github.com/yukikurage/intern-allocation-api/internal/logger"
	"github.com/yukikurage/intern-allocation-api/internal/metrics"
	"github.com/yukikurage/intern-allocation-api/internal/repository"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode before the logger picks its default level
	gin.SetMode(cfg.GinMode)
	logger.SetLevel(cfg.LogLevel)
	log := logger.Log

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		cfg.RedisAddr(),           // Redis address from config
		"",                        // username (empty for default user)
		cfg.RedisPassword,         // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Allocation run lock
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.AllocationLock == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis for the allocation lock: %v", err)
		}
		cancel()
		locker = lock.NewRedisLocker(client, lock.DefaultKey, cfg.AllocationLockTTL, log.WithField("component", "lock"))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	allocationStore := repository.NewAllocationStore(db)

	allocator := allocation.NewAllocator(allocationStore, allocationStore,
		allocation.WithCapacityDeduction(cfg.AllocationDeductCapacity),
		allocation.WithLogger(log.WithField("component", "allocator")),
	)
	recorder := metrics.New()

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(userRepo)),
		Skill:      handlers.NewSkillHandler(services.NewSkillService(skillRepo)),
		Project:    handlers.NewProjectHandler(services.NewProjectService(projectRepo, skillRepo, aiService)),
		Intern:     handlers.NewInternHandler(services.NewInternService(userRepo, skillRepo, assignmentRepo)),
		Assignment: handlers.NewAssignmentHandler(services.NewAssignmentService(db)),
		Allocation: handlers.NewAllocationHandler(services.NewAllocationService(allocator, locker, recorder)),
		Report:     handlers.NewReportHandler(services.NewReportService(userRepo, assignmentRepo)),
		Metrics:    recorder.Handler(),
	})

	// Start server
	addr := ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("Server starting")
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
