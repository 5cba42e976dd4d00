package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wakewell/backend/internal/config"
	"github.com/wakewell/backend/internal/handlers"
	"github.com/wakewell/backend/internal/logger"
	"github.com/wakewell/backend/internal/middleware"
	"github.com/wakewell/backend/internal/repository"
	"github.com/wakewell/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port   string
	dbPath string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database file (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flag overrides
	if port != "" {
		cfg.Server.Port = port
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Initialize structured logging
	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	log.Info("starting wakewell api server",
		logger.String("env", cfg.Server.Env),
		logger.String("database", cfg.Database.Path),
	)

	// Open the database
	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Initialize repositories
	recordRepo := repository.NewDailyRecordRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	reflectionRepo := repository.NewReflectionRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	cacheRepo := repository.NewInsightCacheRepository(db)

	// Initialize services
	recordService := service.NewRecordService(recordRepo, cacheRepo)
	analyticsService := service.NewAnalyticsService(recordRepo)
	achievementService := service.NewAchievementService(recordRepo, goalRepo)
	patternService := service.NewPatternService(recordRepo, checkinRepo, cfg.Analysis)
	insightService := service.NewInsightService(recordRepo, checkinRepo, goalRepo, cacheRepo)
	checkinService := service.NewCheckinService(checkinRepo, reflectionRepo)
	goalService := service.NewGoalService(goalRepo, recordRepo)

	// Initialize handlers
	recordHandler := handlers.NewRecordHandler(recordService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	goalHandler := handlers.NewGoalHandler(goalService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, achievementService)
	insightsHandler := handlers.NewInsightsHandler(insightService, patternService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(middleware.NewHTTPMetrics()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Daily record routes
		v1.POST("/records/import", recordHandler.ImportRecords)
		v1.GET("/records", recordHandler.GetRecords)
		v1.PUT("/records/:date", recordHandler.UpsertRecord)
		v1.GET("/records/:date", recordHandler.GetRecord)

		// Lifestyle check-in routes
		v1.GET("/checkins/streak", checkinHandler.GetCheckinStreak)
		v1.PUT("/checkins/:date", checkinHandler.UpsertCheckin)
		v1.GET("/checkins/:date", checkinHandler.GetCheckin)

		// Morning reflection routes
		v1.PUT("/reflections/:date", checkinHandler.UpsertReflection)
		v1.GET("/reflections/:date", checkinHandler.GetReflection)

		// Goal routes
		v1.GET("/goals", goalHandler.ListGoals)
		v1.GET("/goals/progress", goalHandler.GetGoalProgress)
		v1.PUT("/goals/:metric", goalHandler.PutGoal)
		v1.PATCH("/goals/:metric", goalHandler.PatchGoal)
		v1.DELETE("/goals/:metric", goalHandler.DeleteGoal)

		// Analytics routes
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/rolling", analyticsHandler.GetRollingAverages)
			analytics.GET("/aggregates", analyticsHandler.GetAggregates)
			analytics.GET("/comparison", analyticsHandler.GetComparison)
			analytics.GET("/trend", analyticsHandler.GetTrend)
			analytics.GET("/records", analyticsHandler.GetPersonalRecords)
			analytics.GET("/streak", analyticsHandler.GetStreak)
			analytics.GET("/milestones", analyticsHandler.GetMilestones)
			analytics.GET("/consistency", analyticsHandler.GetConsistency)
		}

		// Insight routes
		insights := v1.Group("/insights")
		{
			insights.GET("/daily", insightsHandler.GetDailyInsight)
			insights.GET("/patterns", insightsHandler.GetPatterns)
			insights.POST("/refresh", insightsHandler.RefreshInsight)
		}
	}

	log.Info("server listening", logger.String("addr", cfg.Server.Addr()))
	if err := router.Run(cfg.Server.Addr()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
