package homework

import "time"

type CreateAssignmentRequest struct {
	SubjectID int64     `json:"subject_id" validate:"required,gt=0"`
	Title     string    `json:"title" validate:"required,max=200"`
	Body      string    `json:"body" validate:"required"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

type UpdateAssignmentRequest struct {
	SubjectID *int64     `json:"subject_id" validate:"omitempty,gt=0"`
	Title     *string    `json:"title" validate:"omitempty,max=200"`
	Body      *string    `json:"body"`
	DueDate   *time.Time `json:"due_date"`
}

type ListAssignmentsRequest struct {
	SubjectID int64
	TeacherID int64
	DueBefore *time.Time
	DueAfter  *time.Time
	Limit     int
	Offset    int
}
