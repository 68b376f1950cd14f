package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/iayeshaabid-21/productivity-app/internal/api/http"
	"github.com/iayeshaabid-21/productivity-app/internal/api/http/handlers"
	"github.com/iayeshaabid-21/productivity-app/internal/auth"
	"github.com/iayeshaabid-21/productivity-app/internal/config"
	"github.com/iayeshaabid-21/productivity-app/internal/events"
	"github.com/iayeshaabid-21/productivity-app/internal/observability"
	"github.com/iayeshaabid-21/productivity-app/internal/persistence"
	"github.com/iayeshaabid-21/productivity-app/internal/relay"
	"github.com/iayeshaabid-21/productivity-app/internal/repository"
	"github.com/iayeshaabid-21/productivity-app/internal/service"
	"github.com/iayeshaabid-21/productivity-app/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	taskService := service.NewTaskService(taskRepo, dispatcher)
	messageService := service.NewMessageService(messageRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	var rateLimiter httptransport.RateLimiter
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("redis unavailable; falling back to in-memory rate limiter", zap.Error(err))
		rateLimiter = httptransport.NewMemoryRateLimiter()
	} else {
		rateLimiter = httptransport.NewRedisRateLimiter(redis.Client, logger)
	}
	defer rateLimiter.Close()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.CORSOrigin, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	usersHandler := handlers.NewUsersHandler(userRepo)
	tasksHandler := handlers.NewTasksHandler(taskService)
	messagesHandler := handlers.NewMessagesHandler(messageService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Users:          usersHandler,
		Tasks:          tasksHandler,
		Messages:       messagesHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		RateLimit:      cfg.RateLimit,
	})

	hub := relay.NewHub()
	relayServer := relay.NewServer(cfg.Relay, hub, logger, metrics)

	go func() {
		logger.Info("relay listening", zap.String("addr", cfg.Relay.Addr()))
		if err := relayServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("relay listen", zap.Error(err))
		}
	}()

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), relay.ShutdownTimeout)
	defer shutdownCancel()
	_ = relayServer.Shutdown(shutdownCtx)
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
