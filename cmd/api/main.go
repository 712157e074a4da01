package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/girmesh03/Task-Manager-V19/internal/api/http"
	"github.com/girmesh03/Task-Manager-V19/internal/api/http/handlers"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/config"
	"github.com/girmesh03/Task-Manager-V19/internal/events"
	"github.com/girmesh03/Task-Manager-V19/internal/lifecycle"
	"github.com/girmesh03/Task-Manager-V19/internal/observability"
	"github.com/girmesh03/Task-Manager-V19/internal/persistence"
	"github.com/girmesh03/Task-Manager-V19/internal/presence"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
	"github.com/girmesh03/Task-Manager-V19/internal/worker"
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

	redisConn := persistence.NewRedis(cfg.Redis, logger)
	defer redisConn.Close()

	pool := pg.PoolHandle()
	orgRepo := repository.NewOrganizationRepository(pool)
	deptRepo := repository.NewDepartmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	activityRepo := repository.NewTaskActivityRepository(pool)
	commentRepo := repository.NewTaskCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	vendorRepo := repository.NewVendorRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	lifecycleStore := repository.NewLifecycleStore(pool)

	dispatcher := events.NewInMemoryDispatcher()
	engine := lifecycle.NewEngine(lifecycleStore, dispatcher, logger)
	sweeper := lifecycle.NewSweeper(lifecycleStore, cfg.Purge.SweepInterval(), logger)
	tracker := presence.NewTracker(nil)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	extractor := auth.NewExtractor(tokens, userRepo, orgRepo, deptRepo, cfg.Auth.CookieName, cfg.Platform.OrganizationID)

	publisher := worker.NewRedisNotificationPublisher(redisConn.Client, cfg.Redis.NotificationChannel, logger)

	authService := service.NewAuthService(userRepo, orgRepo, deptRepo, resetRepo, tokens, cfg.Auth, logger)
	orgService := service.NewOrganizationService(orgRepo, engine, logger)
	deptService := service.NewDepartmentService(deptRepo, engine, logger)
	userService := service.NewUserService(userRepo, deptRepo, engine, cfg.Auth, logger)
	taskService := service.NewTaskService(taskRepo, activityRepo, commentRepo, attachmentRepo, userRepo, engine, dispatcher, logger)
	materialService := service.NewMaterialService(materialRepo, engine, logger)
	vendorService := service.NewVendorService(vendorRepo, engine, logger)
	notificationService := service.NewNotificationService(notificationRepo, taskRepo, publisher, logger)

	worker.StartNotificationWorker(notificationService, dispatcher)
	worker.StartPurgeWorker(ctx, sweeper, resetRepo, cfg.Purge.SweepInterval(), logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(pg, redisConn, metrics),
		Auth:          handlers.NewAuthHandler(authService, cfg.Auth, tracker),
		Organizations: handlers.NewOrganizationsHandler(orgService),
		Departments:   handlers.NewDepartmentsHandler(deptService),
		Users:         handlers.NewUsersHandler(userService),
		Tasks:         handlers.NewTasksHandler(taskService),
		Materials:     handlers.NewMaterialsHandler(materialService),
		Vendors:       handlers.NewVendorsHandler(vendorService),
		Notifications: handlers.NewNotificationsHandler(notificationService, tracker),
		Extractor:     extractor,
		Tracker:       tracker,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	tracker.Clear()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
