package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortlink-service/internal/config"
	"shortlink-service/internal/handler"
	"shortlink-service/internal/middleware"
	"shortlink-service/internal/model"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/service"
	"shortlink-service/internal/shortcode"
	"shortlink-service/pkg/database"
	"shortlink-service/pkg/logger"
	"shortlink-service/pkg/redis"

	_ "shortlink-service/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Shortlink Service API
// @version 1.0
// @description URL shortening service with visit analytics, QR codes and expiration.
// @BasePath /

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("log sync failed:", err)
		}
	}()
	sugaredLogger := zap.S()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("loading config failed: %v", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		sugaredLogger.Fatalf("database init failed: %v", err)
	}
	sugaredLogger.Info("database connected")

	if err := db.AutoMigrate(&model.ShortLink{}, &model.VisitRecord{}); err != nil {
		sugaredLogger.Fatalf("database migration failed: %v", err)
	}
	sugaredLogger.Info("database migrated")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewRedisClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("cache connection failed, continuing without redis: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("closing redis client failed: %v", err)
				}
			}()
			sugaredLogger.Info("cache connected")
		}
	}

	repo := repository.NewGormLinkRepository(db)
	generator := shortcode.NewGenerator(cfg.Shortener.CodeLength)
	cache := service.NewLinkCache(rdb)

	shortener := service.NewShortener(repo, generator, cache, sugaredLogger)
	redirector := service.NewRedirector(repo, cache, sugaredLogger)
	analytics := service.NewAnalytics(repo, sugaredLogger)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	linkHandler := handler.NewShortLinkHandler(shortener, redirector, analytics, cfg.App.Name, cfg.App.Version)
	registerRoutes(router, linkHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		sugaredLogger.Infof("server listening on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugaredLogger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		sugaredLogger.Fatalf("forced shutdown: %v", err)
	}
	sugaredLogger.Info("server exited")
}

func registerRoutes(router *gin.Engine, linkHandler *handler.ShortLinkHandler) {
	router.GET("/", linkHandler.Index)
	router.GET("/health", linkHandler.HealthCheck)

	router.POST("/shorten", linkHandler.CreateShortLink)
	router.GET("/urls", linkHandler.ListLinks)
	router.GET("/stats/:code", linkHandler.GetStats)
	router.GET("/qr/:code", linkHandler.GetQRCode)
	router.DELETE("/url/:code", linkHandler.DeactivateLink)
	router.DELETE("/url/:code/purge", linkHandler.DeleteLink)

	router.GET("/:code", linkHandler.Redirect)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return database.InitMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	case "", "sqlite":
		path := cfg.Database.Path
		if path == "" {
			path = "./shortlink.db"
		}
		return database.InitSQLite(path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
