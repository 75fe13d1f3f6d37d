package main

import (
	"log"
	"os"

	"github.com/oncoliving/checkin-api/internal/config"
	pgRepo "github.com/oncoliving/checkin-api/internal/repository/postgres"
	redisRepo "github.com/oncoliving/checkin-api/internal/repository/redis"
	"github.com/oncoliving/checkin-api/internal/service"
	"github.com/oncoliving/checkin-api/pkg/database"
)

// Seeds the baseline questionnaires into an already-migrated database.
// Safe to run repeatedly: purposes that already have an active quiz are
// left untouched.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize CacheRepo: %v", err)
	}

	quizRepo := pgRepo.NewQuizRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)

	catalogService := service.NewCatalogService(quizRepo, responseRepo, cacheRepo, cfg.Checkin.ActiveQuizCacheTTL)

	if err := catalogService.EnsureBaselineQuizzes(); err != nil {
		log.Fatalf("Failed to seed baseline quizzes: %v", err)
	}

	log.Println("Baseline quizzes are in place")
}
