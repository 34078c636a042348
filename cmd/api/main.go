package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidtube/platform/internal/api"
	mongostore "github.com/vidtube/platform/internal/infrastructure/db/mongo"
	redisstore "github.com/vidtube/platform/internal/infrastructure/db/redis"
	"github.com/vidtube/platform/internal/infrastructure/storage/s3"
	"github.com/vidtube/platform/internal/pkg/config"
	"github.com/vidtube/platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongostore.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongostore.NewVideoRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("video index creation failed")
	}
	if err := mongostore.NewLikeRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("like index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	blobs, err := s3.New(ctx, s3.Config{
		Region:        cfg.S3.Region,
		Bucket:        cfg.S3.Bucket,
		Endpoint:      cfg.S3.Endpoint,
		AccessKey:     cfg.S3.AccessKey,
		SecretKey:     cfg.S3.SecretKey,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("blob store initialisation failed")
	}

	e, dispatcher := api.NewRouter(cfg, db, rdb, blobs, log)
	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
