package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/homework"
)

// HomeworkReminderJob surfaces assignments coming due inside the lookahead
// window so staff can chase submissions.
type HomeworkReminderJob struct {
	repo   homework.Repository
	logger *slog.Logger
}

// NewHomeworkReminderJob constructs the job.
func NewHomeworkReminderJob(repo homework.Repository, logger *slog.Logger) *HomeworkReminderJob {
	return &HomeworkReminderJob{repo: repo, logger: logger}
}

// Handle processes TaskHomeworkReminder tasks.
func (j *HomeworkReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload HomeworkReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WithinDays <= 0 {
		payload.WithinDays = 3
	}

	now := time.Now()
	deadline := now.AddDate(0, 0, payload.WithinDays)
	assignments, total, err := j.repo.List(ctx, homework.ListAssignmentsRequest{
		DueAfter:  &now,
		DueBefore: &deadline,
		Limit:     200,
	})
	if err != nil {
		return err
	}

	for _, a := range assignments {
		j.logger.Info("homework due soon",
			slog.Int64("assignment_id", a.ID),
			slog.String("title", a.Title),
			slog.String("due", a.DueDate.Format("2006-01-02")))
	}
	j.logger.Info("homework reminder scan finished",
		slog.Int("due_soon", total),
		slog.Int("within_days", payload.WithinDays))
	return nil
}
