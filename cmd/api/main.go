package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/GuhGPG-IEEM/trabalhogestao/api/swagger"
	"github.com/GuhGPG-IEEM/trabalhogestao/internal/handler"
	"github.com/GuhGPG-IEEM/trabalhogestao/internal/middleware"
	"github.com/GuhGPG-IEEM/trabalhogestao/internal/repository"
	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/cache"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/config"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/database"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/logger"
	corsmiddleware "github.com/GuhGPG-IEEM/trabalhogestao/pkg/middleware/cors"
	reqidmiddleware "github.com/GuhGPG-IEEM/trabalhogestao/pkg/middleware/requestid"
)

// @title Rotina Escolar API
// @version 1.0.0
// @description Student routine backend: grades, subjects, tasks and study tips
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	cacheSvc := service.NewCacheService(nil, metricsSvc, cfg.Dashboard.CacheTTL, logr, false)
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	studentRepo := repository.NewStudentRepository(db, metricsSvc)
	subjectRepo := repository.NewSubjectRepository(db, metricsSvc)
	gradeRepo := repository.NewGradeRepository(db, metricsSvc)
	taskRepo := repository.NewTaskRepository(db, metricsSvc)
	studyTipRepo := repository.NewStudyTipRepository(db, metricsSvc)

	authSvc := service.NewAuthService(studentRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "rotina-escolar",
	})
	subjectSvc := service.NewSubjectService(subjectRepo, nil, logr)
	gradeSvc := service.NewGradeService(gradeRepo, subjectRepo, nil, logr)
	taskSvc := service.NewTaskService(taskRepo, subjectRepo, nil, logr)
	studyTipSvc := service.NewStudyTipService(studyTipRepo, cfg.StudyTips, nil, logr)
	reportSvc := service.NewReportService(gradeSvc, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, subjectRepo, taskRepo, studyTipRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc, dashboardSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc, reportSvc)
	taskHandler := handler.NewTaskHandler(taskSvc, dashboardSvc)
	studyTipHandler := handler.NewStudyTipHandler(studyTipSvc, dashboardSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)

	protected.GET("/dashboard", dashboardHandler.Summary)
	protected.GET("/metrics/snapshot", metricsHandler.Snapshot)

	protected.GET("/subjects", subjectHandler.List)
	protected.POST("/subjects", subjectHandler.Create)
	protected.DELETE("/subjects/:id", subjectHandler.Delete)

	protected.GET("/grades", gradeHandler.Overview)
	protected.GET("/grades/summary", gradeHandler.Summary)
	protected.GET("/grades/report", gradeHandler.Report)
	protected.PUT("/grades/subjects/:subjectId", gradeHandler.SetGrade)
	protected.DELETE("/grades/:id", gradeHandler.Delete)

	protected.GET("/tasks", taskHandler.List)
	protected.POST("/tasks", taskHandler.Create)
	protected.PATCH("/tasks/:id/toggle", taskHandler.ToggleComplete)
	protected.DELETE("/tasks/:id", taskHandler.Delete)

	protected.GET("/study-tips", studyTipHandler.List)
	protected.GET("/study-tips/assistant-link", studyTipHandler.AssistantLink)
	protected.POST("/study-tips", studyTipHandler.Save)
	protected.DELETE("/study-tips/:id", studyTipHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
