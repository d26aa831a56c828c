package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Juanito040/BACK-HOSPI-DESK/internal/api/http"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/http/handlers"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/auth"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/config"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/observability"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/persistence"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/storage"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/worker"
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

	fileStorage, err := storage.NewLocalFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to init file storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	slaRepo := repository.NewSLARepository(pool)
	areaRepo := repository.NewAreaRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	auditRepo := repository.NewAuditTrailRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	bus := events.NewInMemoryBus(logger)
	metrics := observability.NewMetrics()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager, userRepo)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		UserRepo:    userRepo,
		AreaRepo:    areaRepo,
		CommentRepo: commentRepo,
		Bus:         bus,
	})
	slaService := service.NewSLAService(service.SLADependencies{
		SLARepo:    slaRepo,
		TicketRepo: ticketRepo,
		AreaRepo:   areaRepo,
		Bus:        bus,
		Cache:      redis.ClientHandle(),
		CacheTTL:   time.Duration(cfg.SLA.CacheTTLMinutes) * time.Minute,
		Logger:     logger,
	})
	areaService := service.NewAreaService(areaRepo)
	commentService := service.NewCommentService(commentRepo, ticketRepo, userRepo)
	attachmentService := service.NewAttachmentService(attachmentRepo, ticketRepo, fileStorage, cfg.Storage.MaxSizeBytes)
	auditService := service.NewAuditService(auditRepo, logger)
	notificationService := service.NewNotificationService(bus, ticketRepo, userRepo, logger, cfg.Notification)
	authService := service.NewAuthService(userRepo, resetRepo, tokenManager, cfg.Auth, logger)

	worker.StartEventWorkers(bus, auditService, notificationService)
	worker.StartSLASweep(ctx, slaService, time.Duration(cfg.SLA.BreachSweepMinutes)*time.Minute, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Audit:          handlers.NewAuditHandler(auditService),
		SLAs:           handlers.NewSLAsHandler(slaService),
		Areas:          handlers.NewAreasHandler(areaService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
