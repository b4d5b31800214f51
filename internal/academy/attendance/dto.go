package attendance

import "time"

type CreateEntryRequest struct {
	StudentID int64   `json:"student_id" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    Status  `json:"status" validate:"required,oneof=present late absent excused"`
	Note      *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type UpdateEntryRequest struct {
	Status *Status `json:"status,omitempty" validate:"omitempty,oneof=present late absent excused"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type ListEntriesRequest struct {
	StudentID int64
	From      *time.Time
	To        *time.Time
	Status    Status
	Limit     int
	Offset    int
}
