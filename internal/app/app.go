package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidstream/internal/config"
	"vidstream/internal/database"
	"vidstream/internal/handler"
	"vidstream/internal/middleware"
	"vidstream/internal/objectstore"
	"vidstream/internal/repository"
	"vidstream/internal/router"
	"vidstream/internal/service"
	"vidstream/internal/token"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, database.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBConnLifetime,
		MaxConnIdleTime: cfg.DBConnIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	likeRepo := repository.NewLikeRepository(pool)
	playlistRepo := repository.NewPlaylistRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	tweetRepo := repository.NewTweetRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	slog.Info("database ready")

	store, err := objectstore.New(context.Background(), objectstore.Config{
		Endpoint:   cfg.S3Endpoint,
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		PresignTTL: cfg.S3PresignTTL,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	authService := service.NewAuthService(userRepo, issuer)
	userService := service.NewUserService(userRepo, store)
	videoService := service.NewVideoService(videoRepo, store)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, store)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, store)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, store)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		User:         handler.NewUserHandler(authService, userService, cfg.CookieSecure),
		Video:        handler.NewVideoHandler(videoService),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Health:       handler.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.db.Close()
	slog.Info("shutdown complete")
	return nil
}
