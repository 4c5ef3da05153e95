package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/visitdesk/visitdesk-api/api/swagger"
	"github.com/visitdesk/visitdesk-api/internal/handler"
	"github.com/visitdesk/visitdesk-api/internal/middleware"
	"github.com/visitdesk/visitdesk-api/internal/repository"
	"github.com/visitdesk/visitdesk-api/internal/service"
	"github.com/visitdesk/visitdesk-api/pkg/cache"
	"github.com/visitdesk/visitdesk-api/pkg/config"
	"github.com/visitdesk/visitdesk-api/pkg/database"
	"github.com/visitdesk/visitdesk-api/pkg/export"
	"github.com/visitdesk/visitdesk-api/pkg/logger"
	corsmiddleware "github.com/visitdesk/visitdesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/visitdesk/visitdesk-api/pkg/middleware/requestid"
)

// @title VisitDesk API
// @version 0.1.0
// @description Visitor management and meeting-room timeline backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Timeline.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, timeline cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Timeline.CacheTTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	authService := service.NewAuthService(cfg.Auth)
	roomService := service.NewRoomService(roomRepo, cacheService, validate, logr)
	bookingService := service.NewBookingService(bookingRepo, roomRepo, cacheService, validate, logr)
	visitService := service.NewVisitService(visitRepo, cacheService, validate, logr, nil)
	timelineService := service.NewTimelineService(roomRepo, bookingRepo, visitRepo, cacheService, metricsService, cfg.Timeline, logr)
	exportService := service.NewExportService(visitRepo, export.NewPDFExporter(), cfg.Exports.Enabled, logr)

	roomHandler := handler.NewRoomHandler(roomService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	visitHandler := handler.NewVisitHandler(visitService)
	timelineHandler := handler.NewTimelineHandler(timelineService)
	exportHandler := handler.NewExportHandler(exportService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Auth(authService))
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.List)
			rooms.POST("", roomHandler.Create)
			rooms.GET("/:id", roomHandler.Get)
			rooms.PUT("/:id", roomHandler.Update)
			rooms.DELETE("/:id", roomHandler.Delete)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bookingHandler.List)
			bookings.POST("", bookingHandler.Create)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.PUT("/:id", bookingHandler.Update)
			bookings.DELETE("/:id", bookingHandler.Delete)
			bookings.GET("/:id/occurrences", bookingHandler.Occurrences)
		}

		visits := api.Group("/visits")
		{
			visits.GET("", visitHandler.List)
			visits.POST("", visitHandler.Create)
			visits.GET("/:id", visitHandler.Get)
			visits.DELETE("/:id", visitHandler.Delete)
			visits.POST("/:id/check-in", visitHandler.CheckIn)
			visits.POST("/:id/check-out", visitHandler.CheckOut)
		}

		timeline := api.Group("/timeline")
		{
			timeline.GET("", timelineHandler.Day)
			timeline.POST("/click", timelineHandler.Click)
			timeline.GET("/schedules", timelineHandler.Schedules)
		}

		api.GET("/exports/day-sheet", exportHandler.DaySheet)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
