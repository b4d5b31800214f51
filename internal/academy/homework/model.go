package homework

import "time"

// Assignment is a homework item posted by a teacher for a subject.
type Assignment struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subject_id"`
	TeacherID int64     `json:"teacher_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
