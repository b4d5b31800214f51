package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/attendance"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/homework"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/schools"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/students"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/subjects"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/teachers"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/app"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/auth"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/observability"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/cache"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/db"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/shared"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Redis only serves advisory caches; the dashboard still works.
		logger.Warn("redis unavailable", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	audit := shared.NewAuditLogger(pool)

	store := authz.NewPGStore(pool)
	registry := authz.NewRegistry(store, audit, logger)
	if err := registry.Seed(ctx); err != nil {
		logger.Error("seed permission registry", slog.Any("error", err))
		os.Exit(1)
	}

	codec := auth.NewCodec(cfg.AuthSecret, cfg.AuthTokenTTL)
	resolver := authz.NewResolver(codec, store)
	gate := authz.NewGate(registry, resolver)
	mw := authz.Middleware{Gate: gate, CookieName: cfg.AuthCookie, Logger: logger}

	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, codec, resolver, registry, cfg.AuthCookie, cfg.IsProduction())
	permissionsHandler := authz.NewHandler(logger, registry, mw)

	studentsHandler := students.NewHandler(logger, students.NewService(students.NewRepository(pool)), mw)
	teachersHandler := teachers.NewHandler(logger, teachers.NewService(teachers.NewRepository(pool), audit, logger), mw)
	schoolsHandler := schools.NewHandler(logger, schools.NewRepository(pool), mw)
	subjectsHandler := subjects.NewHandler(logger, subjects.NewRepository(pool), mw)
	homeworkHandler := homework.NewHandler(logger, homework.NewService(homework.NewRepository(pool)), mw)

	attendanceCache := attendance.NewCache(redisClient, 10*time.Minute)
	attendanceService := attendance.NewService(attendance.NewRepository(pool), attendanceCache)
	attendanceHandler := attendance.NewHandler(logger, attendanceService, mw)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		PermissionsHandler: permissionsHandler,
		StudentsHandler:    studentsHandler,
		TeachersHandler:    teachersHandler,
		SchoolsHandler:     schoolsHandler,
		SubjectsHandler:    subjectsHandler,
		HomeworkHandler:    homeworkHandler,
		AttendanceHandler:  attendanceHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("http server stopped")
}
