package attendance

import "time"

// Status enumerates the recognised attendance outcomes.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusExcused Status = "excused"
)

// Valid reports whether the status is one of the recognised outcomes.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusExcused:
		return true
	}
	return false
}

// Entry is one attendance record for a student on a given date.
type Entry struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	Date       time.Time `json:"date"`
	Status     Status    `json:"status"`
	Note       *string   `json:"note,omitempty"`
	RecordedBy int64     `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SummaryRow aggregates one school's attendance counts for one date.
type SummaryRow struct {
	SchoolID   *int64    `json:"school_id"`
	SchoolName string    `json:"school_name"`
	Date       time.Time `json:"date"`
	Present    int       `json:"present"`
	Late       int       `json:"late"`
	Absent     int       `json:"absent"`
	Excused    int       `json:"excused"`
}
