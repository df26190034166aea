package main

import (
	"fmt"
	"log"
	"os"

	"github.com/study-droid/studyflow/config"
	"github.com/study-droid/studyflow/handler"
	"github.com/study-droid/studyflow/middleware"
	"github.com/study-droid/studyflow/repository"
	"github.com/study-droid/studyflow/services"
	"github.com/study-droid/studyflow/usecase"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file found, relying on environment: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()

	if os.Getenv("GO_ENV") != "test" {
		dbConfig := config.LoadDatabaseConfig()
		utils.InitMongoClient(dbConfig.URI, dbConfig.MaxPoolSize, dbConfig.MinPoolSize, dbConfig.MaxConnIdleTime)

		db := utils.MongoClient.Database(dbConfig.DatabaseName)
		if err := repository.SetupIndexes(db); err != nil {
			log.Printf("Failed to set up indexes: %v", err)
		}
	}
}

func setupRouter(limiter *services.RateLimiter) *gin.Engine {
	router := gin.Default()

	serverConfig := config.LoadServerConfig()

	// Initialize repositories
	sessionsRepo := repository.GetSessionsRepo(utils.MongoClient)
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	subjectsRepo := repository.GetSubjectsRepo(utils.MongoClient)
	flashcardsRepo := repository.GetFlashcardsRepo(utils.MongoClient)
	goalsRepo := repository.GetGoalsRepo(utils.MongoClient)

	// Initialize services
	analyticsService := usecase.NewAnalyticsService(sessionsRepo, tasksRepo, subjectsRepo, flashcardsRepo, goalsRepo)
	sessionsService := usecase.NewSessionsService(sessionsRepo)
	tasksService := usecase.NewTasksService(tasksRepo)
	goalsService := usecase.NewGoalsService(goalsRepo)

	// Initialize handlers
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	sessionHandler := handler.NewSessionHandler(sessionsService)
	taskHandler := handler.NewTaskHandler(tasksService)
	subjectHandler := handler.NewSubjectHandler(subjectsRepo)
	flashcardHandler := handler.NewFlashcardHandler(flashcardsRepo)
	goalHandler := handler.NewGoalHandler(goalsService)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(serverConfig.MaxRequestSize))

	// Operational endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", handler.HealthCheck)

	// All API routes require a token from the hosted auth service
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	if limiter != nil {
		protected.Use(middleware.RateLimitMiddleware(limiter))
	}
	{
		protected.GET("/analytics", analyticsHandler.GetAnalytics)

		sessions := protected.Group("/sessions")
		{
			sessions.POST("/", sessionHandler.StartSession)
			sessions.GET("/", sessionHandler.ListSessions)
			sessions.PUT("/:id/finish", sessionHandler.FinishSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.POST("/", taskHandler.CreateTask)
			tasks.GET("/", taskHandler.GetUserTasks)
			tasks.GET("/summary", taskHandler.GetTaskSummary)
			tasks.POST("/:id/toggle", taskHandler.ToggleTaskComplete)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		subjects := protected.Group("/subjects")
		{
			subjects.POST("/", subjectHandler.CreateSubject)
			subjects.GET("/", subjectHandler.GetUserSubjects)
			subjects.DELETE("/:id", subjectHandler.DeleteSubject)
		}

		flashcards := protected.Group("/flashcards")
		{
			flashcards.POST("/attempts", flashcardHandler.RecordAttempt)
			flashcards.GET("/attempts", flashcardHandler.ListAttempts)
		}

		goals := protected.Group("/goals")
		{
			goals.POST("/", goalHandler.CreateGoal)
			goals.GET("/", goalHandler.GetActiveGoals)
			goals.PUT("/:id/progress", goalHandler.UpdateProgress)
			goals.POST("/:id/deactivate", goalHandler.DeactivateGoal)
		}
	}

	return router
}

func main() {
	redisConfig := config.LoadRedisConfig()
	limiter, err := services.NewRateLimiter(redisConfig.URL, redisConfig.RateLimit, redisConfig.RateLimitWindow)
	if err != nil {
		// The API still works without throttling; run degraded rather than refuse to start
		log.Printf("Rate limiter disabled: %v", err)
		limiter = nil
	} else {
		defer limiter.Close()
	}

	router := setupRouter(limiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
