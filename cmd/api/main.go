package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/kit-service/internal/api/http"
	"github.com/spec-kit/kit-service/internal/api/http/handlers"
	"github.com/spec-kit/kit-service/internal/auth"
	"github.com/spec-kit/kit-service/internal/config"
	"github.com/spec-kit/kit-service/internal/events"
	"github.com/spec-kit/kit-service/internal/observability"
	"github.com/spec-kit/kit-service/internal/persistence"
	"github.com/spec-kit/kit-service/internal/ratelimit"
	"github.com/spec-kit/kit-service/internal/repository"
	"github.com/spec-kit/kit-service/internal/service"
	"github.com/spec-kit/kit-service/internal/validation"
	"github.com/spec-kit/kit-service/internal/worker"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	kitRepo, err := buildKitRepository(ctx, cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to load kit catalog", zap.Error(err))
	}
	kitRepo = repository.NewCachedKitItemRepository(kitRepo, redis.Client, cfg.Kit.CacheTTL(), logger)

	metrics := observability.NewMetrics("kit_service")
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAssessmentWorker(service.NewAssessmentListener(dispatcher, metrics, logger))

	kitService := service.NewKitService(kitRepo, dispatcher, logger)
	assessmentService := service.NewAssessmentService(service.AssessmentDependencies{
		Limits:     cfg.BMI.Limits(),
		Kits:       kitService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	adminService := service.NewAdminAuthService(cfg.Auth)
	if !adminService.Enabled() {
		logger.Warn("AUTH_ADMIN_EMAIL or a bcrypt AUTH_ADMIN_PASSWORD_HASH not set; catalog administration disabled")
	}

	validator, err := validation.NewAssessmentValidator()
	if err != nil {
		logger.Fatal("failed to compile assessment schema", zap.Error(err))
	}

	var submissionLimiter fiber.Handler
	if cfg.RateLimit.Enabled() {
		limiter := ratelimit.NewLimiter(redis.Client, "ratelimit:assessments", cfg.RateLimit.Requests, cfg.RateLimit.Window())
		submissionLimiter = httptransport.SubmissionRateLimit(limiter, metrics, logger)
	}

	var pgPinger handlers.Pinger
	if pg.Configured() {
		pgPinger = pg
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pgPinger, redis),
		BMI:               handlers.NewBMIHandler(assessmentService),
		Assessments:       handlers.NewAssessmentsHandler(validator, assessmentService),
		Kit:               handlers.NewKitHandler(kitService),
		Admin:             handlers.NewAdminHandler(adminService),
		AuthMiddleware:    auth.NewAuthMiddleware(adminService.TokenManager()),
		SubmissionLimiter: submissionLimiter,
		Metrics:           promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// buildKitRepository returns the Postgres catalog, seeded when empty, or the
// read-only seed catalog when no database is configured.
func buildKitRepository(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (repository.KitItemRepository, error) {
	if !pg.Configured() {
		items, err := persistence.LoadKitSeed(cfg.Kit.SeedFile)
		if err != nil {
			return nil, err
		}
		return repository.NewStaticKitItemRepository(items), nil
	}

	repo := repository.NewKitItemRepository(pg.PoolHandle())
	if cfg.Kit.SeedOnStartup {
		items, err := persistence.LoadKitSeed(cfg.Kit.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := persistence.SeedKitItems(ctx, repo, items, logger); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func hashPassword(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s hash-password <password>", os.Args[0])
	}
	hash, err := auth.HashPassword(args[0], 0)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
