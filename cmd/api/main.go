package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oncoliving/checkin-api/internal/config"
	"github.com/oncoliving/checkin-api/internal/handler"
	"github.com/oncoliving/checkin-api/internal/middleware"
	pgRepo "github.com/oncoliving/checkin-api/internal/repository/postgres"
	redisRepo "github.com/oncoliving/checkin-api/internal/repository/redis"
	"github.com/oncoliving/checkin-api/internal/service"
	"github.com/oncoliving/checkin-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	quizRepo := pgRepo.NewQuizRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	location := cfg.Checkin.Location()

	catalogService := service.NewCatalogService(quizRepo, responseRepo, cacheRepo, cfg.Checkin.ActiveQuizCacheTTL)
	checkinService := service.NewCheckinService(quizRepo, responseRepo, cacheRepo, location, cfg.Checkin.TodayCacheTTL)
	reportService := service.NewReportService(responseRepo, location)

	if cfg.Checkin.SeedBaseline {
		if err := catalogService.EnsureBaselineQuizzes(); err != nil {
			log.Printf("Failed to seed baseline quizzes: %v", err)
			os.Exit(1)
		}
	}

	catalogHandler := handler.NewCatalogHandler(catalogService)
	checkinHandler := handler.NewCheckinHandler(checkinService, catalogService, reportService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimiter(
		redisClient,
		cfg.Checkin.SubmitRateLimit,
		time.Duration(cfg.Checkin.SubmitRateWindowSec)*time.Second,
	)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Trusted proxies so c.ClientIP() is not spoofable. Add the load
	// balancer address here when deploying behind one.
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://app.oncoliving.com.br", "https://admin.oncoliving.com.br", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Questionnaire catalog
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.GET("/active", catalogHandler.GetActiveQuiz)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", catalogHandler.GetQuiz)

				adminQuiz := quizWithID.Group("")
				adminQuiz.Use(authMiddleware.RequireAdmin())
				{
					adminQuiz.PATCH("", catalogHandler.UpdateQuiz)
					adminQuiz.DELETE("", catalogHandler.DeleteQuiz)
					adminQuiz.POST("/activate", catalogHandler.ActivateQuiz)
					adminQuiz.POST("/questions", catalogHandler.AddQuestion)
				}
			}

			adminQuizzes := quizzes.Group("")
			adminQuizzes.Use(authMiddleware.RequireAdmin())
			{
				adminQuizzes.GET("", catalogHandler.ListQuizzes)
				adminQuizzes.POST("", catalogHandler.CreateQuiz)
			}
		}

		// Question and option administration
		questions := api.Group("/questions/:id")
		questions.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		questions.Use(middleware.ExtractUintParam("id", "questionID"))
		{
			questions.PATCH("", catalogHandler.UpdateQuestion)
			questions.DELETE("", catalogHandler.DeleteQuestion)
			questions.POST("/options", catalogHandler.AddOption)
		}

		options := api.Group("/options/:id")
		options.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		options.Use(middleware.ExtractUintParam("id", "optionID"))
		{
			options.PATCH("", catalogHandler.UpdateOption)
			options.DELETE("", catalogHandler.DeleteOption)
		}

		// Daily check-ins
		checkins := api.Group("/checkins")
		checkins.Use(authMiddleware.RequireAuth())
		{
			checkins.POST("", rateLimiter.Limit("checkin-submit"), checkinHandler.SubmitCheckin)
			checkins.GET("/today", checkinHandler.GetToday)
			checkins.GET("/history", checkinHandler.GetHistory)
			checkins.GET("/stats", checkinHandler.GetStats)
			checkins.GET("/export", checkinHandler.ExportHistory)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
