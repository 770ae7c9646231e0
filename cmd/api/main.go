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

	httptransport "github.com/spec-kit/hospital-analytics/internal/api/http"
	"github.com/spec-kit/hospital-analytics/internal/api/http/handlers"
	"github.com/spec-kit/hospital-analytics/internal/auth"
	"github.com/spec-kit/hospital-analytics/internal/config"
	"github.com/spec-kit/hospital-analytics/internal/events"
	"github.com/spec-kit/hospital-analytics/internal/observability"
	"github.com/spec-kit/hospital-analytics/internal/persistence"
	"github.com/spec-kit/hospital-analytics/internal/repository"
	"github.com/spec-kit/hospital-analytics/internal/service"
	"github.com/spec-kit/hospital-analytics/internal/worker"
)

const shutdownTimeout = 15 * time.Second

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

	loc, err := cfg.App.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoStore, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	consultationRepo := repository.NewConsultationRepository(mongoStore)
	feedbackRepo := repository.NewFeedbackRepository(mongoStore)
	doctorRepo := repository.NewDoctorRepository(mongoStore)
	departmentRepo := repository.NewDepartmentRepository(mongoStore)
	billRepo := repository.NewBillRepository(mongoStore)
	prescriptionRepo := repository.NewPrescriptionRepository(mongoStore)
	medicineRepo := repository.NewMedicineRepository(mongoStore)
	inventoryLogRepo := repository.NewInventoryLogRepository(mongoStore)
	occupancyRepo := repository.NewOccupancyRepository(mongoStore)
	roomRepo := repository.NewRoomRepository(mongoStore)

	var snapshotRepo repository.SnapshotRepository
	if pg.Enabled() {
		snapshotRepo = repository.NewSnapshotRepository(pg.Pool)
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewEventRelay(dispatcher, redis, cfg.Redis.EventsChannel, logger).RegisterHandlers()

	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		ConsultationRepo: consultationRepo,
		FeedbackRepo:     feedbackRepo,
		DoctorRepo:       doctorRepo,
		DepartmentRepo:   departmentRepo,
		BillRepo:         billRepo,
		PrescriptionRepo: prescriptionRepo,
		MedicineRepo:     medicineRepo,
		InventoryLogRepo: inventoryLogRepo,
		OccupancyRepo:    occupancyRepo,
		Location:         loc,
	})
	recordsService := service.NewRecordsService(service.RecordsDependencies{
		ConsultationRepo: consultationRepo,
		FeedbackRepo:     feedbackRepo,
		DoctorRepo:       doctorRepo,
		BillRepo:         billRepo,
		PrescriptionRepo: prescriptionRepo,
		MedicineRepo:     medicineRepo,
		InventoryLogRepo: inventoryLogRepo,
		RoomRepo:         roomRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
		Location:         loc,
	})
	occupancyService := service.NewOccupancyService(service.OccupancyDependencies{
		OccupancyRepo: occupancyRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
		Location:      loc,
	})
	snapshotService := service.NewSnapshotService(analyticsService, snapshotRepo, logger)

	if _, _, err := occupancyService.InitializeToday(ctx); err != nil {
		logger.Error("failed to initialize daily occupancy", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	scheduler := worker.NewScheduler(worker.SchedulerDependencies{
		Occupancy: occupancyService,
		Snapshots: snapshotService,
		Locker:    redis,
		LockTTL:   cfg.Jobs.LockTTL(),
		Location:  loc,
		Logger:    logger,
		Metrics:   metrics,
	})
	if cfg.Jobs.Enabled {
		if err := scheduler.Register(cfg.Jobs.OccupancySpec, cfg.Jobs.SnapshotSpec); err != nil {
			logger.Fatal("invalid job schedule", zap.Error(err))
		}
		scheduler.Start()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	dependencies := map[string]handlers.Pinger{
		"mongo": mongoStore,
		"redis": redis,
	}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService, snapshotService),
		Records:        handlers.NewRecordsHandler(recordsService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	scheduler.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	mongoStore.Close(shutdownCtx)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
