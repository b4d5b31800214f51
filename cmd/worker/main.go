package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/attendance"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/homework"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/app"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/cache"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/db"
	"github.com/TreeNut-KR/jmedu-admin-sub000/jobs"
)

func main() {
	_ = godotenv.Load()

	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

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
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	attendanceCache := attendance.NewCache(redisClient, 10*time.Minute)
	attendanceService := attendance.NewService(attendance.NewRepository(pool), attendanceCache)
	digestJob := jobs.NewAttendanceDigestJob(attendanceService, logger)

	homeworkRepo := homework.NewRepository(pool)
	reminderJob := jobs.NewHomeworkReminderJob(homeworkRepo, logger)

	digestTask, err := jobs.NewAttendanceDigestTask(jobs.AttendanceDigestPayload{})
	if err != nil {
		logger.Error("build digest task", slog.Any("error", err))
		os.Exit(1)
	}
	reminderTask, err := jobs.NewHomeworkReminderTask(jobs.HomeworkReminderPayload{WithinDays: 3})
	if err != nil {
		logger.Error("build reminder task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAttendanceDigest, Handler: digestJob.Handle},
			{Type: jobs.TaskHomeworkReminder, Handler: reminderJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 22 * * *", Task: digestTask},
			{Spec: "0 8 * * 1-5", Task: reminderTask},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker starting")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
