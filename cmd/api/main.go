package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "github.com/Torteous44/santaCruzService/internal/adapter/http"
	idemp "github.com/Torteous44/santaCruzService/internal/adapter/middleware"
	"github.com/Torteous44/santaCruzService/internal/adapter/repository/mysql"
	"github.com/Torteous44/santaCruzService/internal/config"
	"github.com/Torteous44/santaCruzService/internal/imagehost"
	"github.com/Torteous44/santaCruzService/internal/infrastructure/cache"
	"github.com/Torteous44/santaCruzService/internal/infrastructure/db"
	"github.com/Torteous44/santaCruzService/internal/staging"
	photouc "github.com/Torteous44/santaCruzService/internal/usecase/photo"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	host, err := imagehost.NewMinioHost(ctx, imagehost.MinioConfig{
		Endpoint:   cfg.MinioEndpoint,
		AccessKey:  cfg.MinioAccessKey,
		SecretKey:  cfg.MinioSecretKey,
		UseSSL:     cfg.MinioUseSSL,
		Bucket:     cfg.MinioBucket,
		CDNBaseURL: cfg.CDNBaseURL,
	})
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	stager, err := staging.New(cfg.StagingDir)
	if err != nil {
		log.Fatal(err)
	}

	repo := mysql.NewPhotoRepository(gdb)
	uc := photouc.NewUsecase(repo, host, stager)

	h := httpadp.NewHandler()
	photoHandler := httpadp.NewPhotoHandler(uc, stager)
	moderationHandler := httpadp.NewModerationHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Validator = httpadp.NewValidator()

	// routes
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.POST("/photos", photoHandler.SubmitPhoto)
	api.GET("/photos", photoHandler.ListPhotos)
	api.GET("/photos/formats", photoHandler.SupportedFormats)

	moderation := api.Group("", idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	moderation.POST("/photos/:photo_id/approve", moderationHandler.ApprovePhoto)
	moderation.POST("/photos/:photo_id/reject", moderationHandler.RejectPhoto)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
