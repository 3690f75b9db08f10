package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/kafka"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	transportHttp "github.com/iamasit07/4-in-a-row/engine/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Persistence (optional: without a database finished games are not archived)
	var db *sql.DB
	var gameRepo game.GameRepository
	var historyHandler *transportHttp.HistoryHandler
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(cfg)
		if err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

		repo := postgres.NewGameRepo(db)
		gameRepo = repo
		historyHandler = transportHttp.NewHistoryHandler(repo)
	} else {
		log.Println("DATABASE_URL not set, finished games will not be archived")
	}

	// 2. Board snapshots
	var cache game.SnapshotStore
	var redisCache *redis.RedisCache
	redisClient, err := redis.InitRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	if redisClient != nil {
		redisCache = redis.NewRedisCache(redisClient)
		cache = redisCache
	}

	// 3. Game events
	producer := kafka.NewProducer(cfg)

	// 4. Services
	engine := bot.NewEngine(0)
	sessionManager := game.NewSessionManager(engine, gameRepo, cache, producer)

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout)
	cleanupWorker.Start()

	// 5. HTTP
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	transportHttp.RegisterRoutes(router, transportHttp.Handlers{
		Analysis: transportHttp.NewAnalysisHandler(bot.SearchDepth),
		Game:     transportHttp.NewGameHandler(sessionManager, domain.PlayerID(cfg.DefaultAIPlayer), cfg.DefaultDifficulty),
		Watch:    transportHttp.NewWatchHandler(sessionManager),
		History:  historyHandler,
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cleanupWorker.Stop()
	// let pending archive writes land before the database goes away
	sessionManager.Wait()

	var result *multierror.Error
	if err := producer.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		log.Fatalf("Error releasing resources: %v", err)
	}

	log.Println("Server exited gracefully")
}
