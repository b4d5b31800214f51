package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAttendanceDigest aggregates a day's attendance for the dashboard.
	TaskAttendanceDigest = "attendance:digest"
	// TaskHomeworkReminder flags assignments coming due.
	TaskHomeworkReminder = "homework:reminder"
)

// AttendanceDigestPayload names the date to digest, YYYY-MM-DD. Empty means
// the current day.
type AttendanceDigestPayload struct {
	Date string `json:"date"`
}

// NewAttendanceDigestTask constructs an Asynq task.
func NewAttendanceDigestTask(payload AttendanceDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAttendanceDigest, data), nil
}

// HomeworkReminderPayload bounds the lookahead window in days.
type HomeworkReminderPayload struct {
	WithinDays int `json:"within_days"`
}

// NewHomeworkReminderTask constructs an Asynq task.
func NewHomeworkReminderTask(payload HomeworkReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHomeworkReminder, data), nil
}
