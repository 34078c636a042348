package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidtube/platform/internal/api/handler"
	"github.com/vidtube/platform/internal/api/middleware"
	"github.com/vidtube/platform/internal/core/ports"
	"github.com/vidtube/platform/internal/core/service"
	mongostore "github.com/vidtube/platform/internal/infrastructure/db/mongo"
	redisstore "github.com/vidtube/platform/internal/infrastructure/db/redis"
	"github.com/vidtube/platform/internal/infrastructure/queue"
	"github.com/vidtube/platform/internal/pkg/config"
	"github.com/vidtube/platform/internal/pkg/password"
	"github.com/vidtube/platform/internal/pkg/token"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the view-event dispatcher (started by the caller).
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, blobs ports.BlobStore, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit(bodyLimit(cfg.Upload.MaxSizeMB)))
	e.Use(echoprometheus.NewMiddleware("vidtube"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	videoRepo := mongostore.NewVideoRepository(db)
	tweetRepo := mongostore.NewTweetRepository(db)
	commentRepo := mongostore.NewCommentRepository(db)
	likeRepo := mongostore.NewLikeRepository(db)
	viewDedup := redisstore.NewViewDeduper(rdb)

	hasher := password.NewHasher(0)
	issuer := token.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	uploader := service.NewUploadService(blobs, log)
	sessions := service.NewSessionService(userRepo, hasher, issuer, log)
	users := service.NewUserService(userRepo, hasher, uploader, blobs, log)
	videos := service.NewVideoService(videoRepo, likeRepo, uploader, blobs, viewDedup, log)
	tweets := service.NewTweetService(tweetRepo, log)
	comments := service.NewCommentService(commentRepo, videoRepo, log)
	likes := service.NewLikeService(likeRepo, log)

	dispatcher := queue.NewDispatcher(0, videos, log)

	secureCookies := cfg.Env == "production"
	stagingDir := cfg.Upload.TempDir

	authHandler := handler.NewAuthHandler(sessions, users, stagingDir, secureCookies)
	userHandler := handler.NewUserHandler(users, stagingDir)
	videoHandler := handler.NewVideoHandler(videos, dispatcher, stagingDir)
	tweetHandler := handler.NewTweetHandler(tweets)
	commentHandler := handler.NewCommentHandler(comments)
	likeHandler := handler.NewLikeHandler(likes)

	authRequired := middleware.Auth(issuer)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/refresh", authHandler.Refresh)
	v1.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- User routes ---
	usersGroup := v1.Group("/users", authRequired)
	usersGroup.GET("/me", userHandler.Me)
	usersGroup.PATCH("/me", userHandler.UpdateAccount)
	usersGroup.POST("/me/password", userHandler.ChangePassword)
	usersGroup.PATCH("/me/avatar", userHandler.UpdateAvatar)
	usersGroup.PATCH("/me/cover-image", userHandler.UpdateCoverImage)

	// --- Video routes ---
	videosGroup := v1.Group("/videos", authRequired)
	videosGroup.POST("", videoHandler.Publish)
	videosGroup.GET("", videoHandler.List)
	videosGroup.GET("/:id", videoHandler.Get)
	videosGroup.PATCH("/:id", videoHandler.Update)
	videosGroup.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)
	videosGroup.DELETE("/:id", videoHandler.Delete)
	v1.GET("/dashboard/stats", videoHandler.ChannelStats, authRequired)

	// --- Social routes ---
	v1.POST("/tweets", tweetHandler.Create, authRequired)
	v1.GET("/tweets/user/:userId", tweetHandler.ListByUser, authRequired)
	v1.PATCH("/tweets/:id", tweetHandler.Update, authRequired)
	v1.DELETE("/tweets/:id", tweetHandler.Delete, authRequired)

	videosGroup.POST("/:id/comments", commentHandler.Add)
	videosGroup.GET("/:id/comments", commentHandler.ListByVideo)
	v1.PATCH("/comments/:id", commentHandler.Update, authRequired)
	v1.DELETE("/comments/:id", commentHandler.Delete, authRequired)

	v1.POST("/likes/:target/:id", likeHandler.Toggle, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}

func bodyLimit(maxSizeMB int) string {
	if maxSizeMB <= 0 {
		maxSizeMB = 100
	}
	return fmt.Sprintf("%dM", maxSizeMB)
}
