package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/attendance"
)

// AttendanceDigestJob pre-computes the per-school summary for a date so the
// first dashboard request of the day hits a warm cache.
type AttendanceDigestJob struct {
	service *attendance.Service
	logger  *slog.Logger
}

// NewAttendanceDigestJob constructs the job.
func NewAttendanceDigestJob(service *attendance.Service, logger *slog.Logger) *AttendanceDigestJob {
	return &AttendanceDigestJob{service: service, logger: logger}
}

// Handle processes TaskAttendanceDigest tasks.
func (j *AttendanceDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceDigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	date := time.Now().Truncate(24 * time.Hour)
	if payload.Date != "" {
		parsed, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			j.logger.Warn("attendance digest: bad date", slog.String("date", payload.Date))
			return asynq.SkipRetry
		}
		date = parsed
	}

	rows, err := j.service.Summary(ctx, date)
	if err != nil {
		return err
	}
	j.logger.Info("attendance digest computed",
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("schools", len(rows)))
	return nil
}
