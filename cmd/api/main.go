package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/config"
	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/database"
	"github.com/noah-isme/edgylearn-api/internal/handler"
	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/middleware"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/repository"
	"github.com/noah-isme/edgylearn-api/internal/router"
	"github.com/noah-isme/edgylearn-api/internal/seed"
	"github.com/noah-isme/edgylearn-api/internal/service"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if !cfg.IsProduction() {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	dataset, err := seed.Default()
	if err != nil {
		log.Fatalf("failed to load seed data: %v", err)
	}

	db, err := database.ConnectMemory("edgylearn-" + uuid.NewString())
	if err != nil {
		log.Fatalf("failed to open mock store: %v", err)
	}
	if err := repository.LoadSeed(context.Background(), db, dataset); err != nil {
		log.Fatalf("failed to seed mock store: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL, 3*time.Second)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, catalog cache and redis events disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, nats events disabled")
			natsConn = nil
		} else {
			defer natsConn.Drain()
		}
	}

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	validate := service.NewValidator()
	ids := dashboard.NewIDGenerator(time.Now)
	events := service.NewDashboardEvents(redisClient, natsConn, cfg.RealtimeChannel, logger)

	store := session.NewStore(rootCtx, func(user models.User) (dashboard.Board, error) {
		return dashboard.NewBoard(user.Role, dataset.Dashboards, ids, time.Now)
	}, session.Config{
		Intervals: map[models.Role]time.Duration{
			models.RoleAdmin:   cfg.AdminInterval,
			models.RoleTeacher: cfg.TeacherInterval,
			models.RoleStudent: cfg.StudentInterval,
		},
		Source: liveness.NewRandomSource(cfg.LivenessSeed),
		TTL:    cfg.SessionTTL,
		Hooks:  service.SessionHooks(events, logger),
		Logger: logger,
	})

	reaper, err := session.StartReaper(store, cfg.SessionReapSpec, logger)
	if err != nil {
		log.Fatalf("failed to start session reaper: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	forms := service.NewCreationService(validate, ids, logger)
	shellService := service.NewShellService(dataset, userRepo, store, forms, validate, service.ShellConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.SessionTTL,
	}, logger)
	catalogService := service.NewCatalogService(courseRepo, redisClient, cfg.CatalogCacheTTL, validate, logger)
	learningService := service.NewLearningService(dataset, progressRepo, userRepo, logger)
	adminService := service.NewAdminDashboardService(forms, events, logger)
	teacherService := service.NewTeacherDashboardService(forms, events, logger)
	studentService := service.NewStudentDashboardService(events, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:    &logger,
		AccessLog: !cfg.IsProduction(),
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:             handler.NewAuthHandler(shellService, logger),
		CatalogHandler:          handler.NewCatalogHandler(catalogService, logger),
		LearningHandler:         handler.NewLearningHandler(learningService, logger),
		AdminDashboardHandler:   handler.NewAdminDashboardHandler(adminService, logger),
		TeacherDashboardHandler: handler.NewTeacherDashboardHandler(teacherService, logger),
		StudentDashboardHandler: handler.NewStudentDashboardHandler(studentService, logger),
		StreamHandler:           handler.NewStreamHandler(events, logger, cfg.StreamKeepAlive),
		Sessions:                store,
		ActiveSessions:          store.Len,
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, func(ctx context.Context) {
		reaper.Stop(ctx)
		store.CloseAll()
		cancelRoot()
	})
}

func waitForShutdown(app *fiber.App, cleanup func(context.Context)) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Closing sessions first ends open dashboard streams.
	cleanup(ctx)

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
